package utils_test

import (
	"testing"

	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

func TestNormalizeNationalID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Already normalized",
			raw:  "12345678901",
			want: "12345678901",
		},
		{
			name: "Dots and dash",
			raw:  "123.456.789-01",
			want: "12345678901",
		},
		{
			name: "Spaces",
			raw:  " 123 456 789 01 ",
			want: "12345678901",
		},
		{
			name: "Letters stripped",
			raw:  "ID:12345678901",
			want: "12345678901",
		},
		{
			name: "Empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.NormalizeNationalID(tt.raw); got != tt.want {
				t.Errorf("NormalizeNationalID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatInt64(t *testing.T) {
	if got := utils.FormatInt64(42); got != "42" {
		t.Errorf("FormatInt64(42) = %q, want %q", got, "42")
	}
	if got := utils.FormatInt64(-7); got != "-7" {
		t.Errorf("FormatInt64(-7) = %q, want %q", got, "-7")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{
			name:   "Shorter than limit",
			s:      "short",
			maxLen: 10,
			want:   "short",
		},
		{
			name:   "Exactly at limit",
			s:      "exactly10!",
			maxLen: 10,
			want:   "exactly10!",
		},
		{
			name:   "Longer than limit",
			s:      "this is a long string",
			maxLen: 10,
			want:   "this is...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.TruncateString(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "Regular address",
			email: "user@example.com",
			want:  "u**r@example.com",
		},
		{
			name:  "Short user part unchanged",
			email: "ab@example.com",
			want:  "ab@example.com",
		},
		{
			name:  "Not an email",
			email: "not-an-email",
			want:  "not-an-email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.MaskEmail(tt.email); got != tt.want {
				t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestMaskNationalID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "Full identifier",
			id:   "12345678901",
			want: "*********01",
		},
		{
			name: "Two characters",
			id:   "12",
			want: "**",
		},
		{
			name: "Empty",
			id:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.MaskNationalID(tt.id); got != tt.want {
				t.Errorf("MaskNationalID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	slice := []string{"admin", "manager", "staff"}

	if !utils.ContainsString(slice, "manager") {
		t.Error("ContainsString() = false for a present value")
	}
	if utils.ContainsString(slice, "guest") {
		t.Error("ContainsString() = true for a missing value")
	}
	if utils.ContainsString(nil, "anything") {
		t.Error("ContainsString() = true for a nil slice")
	}
}
