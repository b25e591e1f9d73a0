// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Covers truncation and flag validation helpers

package commands

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten.", 12, "exactly ten."},
		{"a much longer string", 10, "a much ..."},
		{"abc", 2, "ab"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("validatePositiveInt(5) = %v, want nil", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("validatePositiveInt(-1) should fail")
	}
}
