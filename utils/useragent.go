package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// DescribeUserAgent turns a User-Agent header into a short session label
// like "Chrome on macOS (Desktop)".
func DescribeUserAgent(userAgent string) string {
	if userAgent == "" {
		return "Unknown Browser on Unknown OS (Desktop)"
	}

	parsed := ua.Parse(userAgent)

	browser := parsed.Name
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := parsed.OS
	if os == "" {
		os = "Unknown OS"
	}

	device := "Desktop"
	switch {
	case parsed.Mobile:
		device = "Mobile"
	case parsed.Tablet:
		device = "Tablet"
	}

	return fmt.Sprintf("%s on %s (%s)", strings.TrimSpace(browser), strings.TrimSpace(os), device)
}
