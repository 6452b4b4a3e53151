package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pass1word!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.Contains(hash, "$") {
		t.Fatalf("hash missing salt separator: %q", hash)
	}
	if hash == "pass1word!" {
		t.Fatal("password not hashed")
	}

	ok, err := VerifyPassword(hash, "pass1word!")
	if err != nil || !ok {
		t.Errorf("correct password rejected: %v %v", ok, err)
	}

	ok, err = VerifyPassword(hash, "wrong")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("pass1word!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("pass1word!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "anything"); err == nil {
		t.Error("malformed hash should fail verification with an error")
	}
}
