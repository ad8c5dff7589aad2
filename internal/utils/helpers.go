// Package utils provides utility functions and helpers for common operations
// used throughout the application: string normalization, data masking for logs,
// and small slice helpers.
package utils

import (
	"fmt"
	"strings"
)

// NormalizeNationalID strips every non-digit character from a national
// identifier, so that "123.456.789-01" and "12345678901" resolve to the
// same login key.
func NormalizeNationalID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatInt64 formats an int64 as a string.
func FormatInt64(i int64) string {
	return fmt.Sprintf("%d", i)
}

// TruncateString truncates a string to the given maximum length and adds
// ellipsis if truncation occurred. Useful for display or logging.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// MaskEmail masks the user part of an email address, showing only the first
// and last character, e.g. "user@example.com" becomes "u**r@example.com".
// Used when logging identifiers that double as personal data.
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + parts[1]
}

// MaskNationalID hides all but the last two digits of a national identifier.
func MaskNationalID(id string) string {
	if len(id) <= 2 {
		return strings.Repeat("*", len(id))
	}
	return strings.Repeat("*", len(id)-2) + id[len(id)-2:]
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
