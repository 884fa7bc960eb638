package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 10, 10},
		{"3", 10, 3},
		{"abc", 10, 10},
		{"0", 10, 10},
		{"-4", 1, 1},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Errorf("ParseID(42) = %d, %v", id, err)
	}
	for _, in := range []string{"", "0", "-1", "x1"} {
		if _, err := ParseID(in); err != ErrInvalidID {
			t.Errorf("ParseID(%q) error = %v, want ErrInvalidID", in, err)
		}
	}
}

func TestGenerateBookingCode(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	code := GenerateBookingCode(now)

	if !regexp.MustCompile(`^BOOK-20260102-150405-\d{4}$`).MatchString(code) {
		t.Errorf("GenerateBookingCode() = %q", code)
	}
}
