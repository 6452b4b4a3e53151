package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"pass1word!", true},
		{"a1!bcd", true},
		{"short", false},
		{"noNumbers!", false},
		{"nospecial1", false},
		{"", false},
		{"123456", false},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestDescribeUserAgent(t *testing.T) {
	chrome := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	if got := DescribeUserAgent(chrome); got != "Chrome on macOS (Desktop)" {
		t.Errorf("chrome desktop = %q", got)
	}

	if got := DescribeUserAgent(""); got != "Unknown Browser on Unknown OS (Desktop)" {
		t.Errorf("empty UA = %q", got)
	}
}
