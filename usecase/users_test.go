package usecase_test

import (
	"context"
	"testing"
	"time"

	"tonotes/dto"
	"tonotes/model"
	"tonotes/usecase"

	"github.com/pquerna/otp/totp"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := openStore(t)
	svc := &usecase.UserService{UserRepo: store, NoteRepo: store}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "alice", "pass1word!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("role = %s, want user", user.Role)
	}
	if user.Avatar == "" {
		t.Error("new user should get a default avatar")
	}
	if user.Password == "pass1word!" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.Register(ctx, "alice@example.com", "other", "pass1word!"); err != usecase.ErrConflict {
		t.Errorf("duplicate email: got %v, want ErrConflict", err)
	}
	if _, err := svc.Register(ctx, "other@example.com", "alice", "pass1word!"); err != usecase.ErrConflict {
		t.Errorf("duplicate nickname: got %v, want ErrConflict", err)
	}

	if _, err := svc.Authenticate(ctx, "alice", "pass1word!", ""); err != nil {
		t.Errorf("valid login failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "wrong", ""); err != usecase.ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "pass1word!", ""); err != usecase.ErrInvalidCredentials {
		t.Errorf("unknown nickname: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateUser(t *testing.T) {
	store := openStore(t)
	svc := &usecase.UserService{UserRepo: store, NoteRepo: store}
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice@example.com", "alice", "pass1word!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "bob@example.com", "bob", "pass1word!"); err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.UpdateUser(ctx, alice.UserID, &dto.UpdateUserRequest{City: "Chengdu", Signature: "on the road"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	profile, err := svc.GetProfile(ctx, alice.UserID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.City != "Chengdu" || profile.Signature != "on the road" {
		t.Errorf("fields not applied: %+v", profile.User)
	}
	if profile.Nickname != "alice" {
		t.Errorf("untouched field changed: nickname=%s", profile.Nickname)
	}

	err = svc.UpdateUser(ctx, alice.UserID, &dto.UpdateUserRequest{Nickname: "bob"})
	if err != usecase.ErrConflict {
		t.Errorf("nickname collision: got %v, want ErrConflict", err)
	}

	err = svc.UpdateUser(ctx, alice.UserID, &dto.UpdateUserRequest{OldPassword: "wrong", NewPassword: "new2word!"})
	if err != usecase.ErrWrongPassword {
		t.Errorf("wrong old password: got %v, want ErrWrongPassword", err)
	}
	err = svc.UpdateUser(ctx, alice.UserID, &dto.UpdateUserRequest{OldPassword: "pass1word!", NewPassword: "new2word!"})
	if err != nil {
		t.Fatalf("password change: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "new2word!", ""); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestFollowGraph(t *testing.T) {
	store := openStore(t)
	svc := &usecase.UserService{UserRepo: store, NoteRepo: store}
	ctx := context.Background()

	seedUser(t, store, "user_a", "alice")
	seedUser(t, store, "user_b", "bob")

	for i := 0; i < 2; i++ {
		if err := svc.Follow(ctx, "user_a", "user_b"); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	following, err := svc.IsFollowing(ctx, "user_a", "user_b")
	if err != nil || !following {
		t.Errorf("isFollowing = %v, %v; want true", following, err)
	}

	// Edge must exist on both sides.
	bob, _ := store.FindUserByID(ctx, "user_b")
	if len(bob.Fans) != 1 || bob.Fans[0] != "user_a" {
		t.Errorf("fans side not written: %v", bob.Fans)
	}
	alice, _ := store.FindUserByID(ctx, "user_a")
	if len(alice.Follow) != 1 {
		t.Errorf("repeated follow duplicated the edge: %v", alice.Follow)
	}

	if err := svc.Unfollow(ctx, "user_a", "user_b"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if err := svc.Unfollow(ctx, "user_a", "user_b"); err != nil {
		t.Fatalf("repeated unfollow: %v", err)
	}
	following, _ = svc.IsFollowing(ctx, "user_a", "user_b")
	if following {
		t.Error("still following after unfollow")
	}

	if err := svc.Follow(ctx, "user_a", "user_missing"); err != usecase.ErrUserNotFound {
		t.Errorf("missing target: got %v, want ErrUserNotFound", err)
	}

	// Self-follow is permitted.
	if err := svc.Follow(ctx, "user_a", "user_a"); err != nil {
		t.Errorf("self-follow: %v", err)
	}
}

func TestTwoFactorLifecycle(t *testing.T) {
	store := openStore(t)
	svc := &usecase.UserService{UserRepo: store, NoteRepo: store}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "alice", "pass1word!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	secret, url, err := svc.SetupTwoFactor(ctx, user.UserID)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if secret == "" || url == "" {
		t.Fatal("setup returned empty secret or url")
	}

	// Secret stays dormant until confirmed.
	if _, err := svc.Authenticate(ctx, "alice", "pass1word!", ""); err != nil {
		t.Errorf("login before confirmation should not require a code: %v", err)
	}

	if err := svc.ConfirmTwoFactor(ctx, user.UserID, "000000"); err != usecase.ErrInvalidTwoFactor {
		t.Errorf("bad confirmation code: got %v, want ErrInvalidTwoFactor", err)
	}

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.ConfirmTwoFactor(ctx, user.UserID, code); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice", "pass1word!", ""); err != usecase.ErrTwoFactorRequired {
		t.Errorf("login without code: got %v, want ErrTwoFactorRequired", err)
	}
	code, _ = totp.GenerateCode(secret, time.Now())
	if _, err := svc.Authenticate(ctx, "alice", "pass1word!", code); err != nil {
		t.Errorf("login with code failed: %v", err)
	}

	code, _ = totp.GenerateCode(secret, time.Now())
	if err := svc.DisableTwoFactor(ctx, user.UserID, code); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "pass1word!", ""); err != nil {
		t.Errorf("login after disable failed: %v", err)
	}
}
