// ABOUTME: Tests for logger construction and log-safe truncation
// ABOUTME: Verifies level selection and rune-aware truncation
package logger

import "testing"

func TestNew_Builds(t *testing.T) {
	for _, tt := range []struct {
		json  bool
		debug bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	} {
		log, err := New(tt.json, tt.debug)
		if err != nil {
			t.Fatalf("New(%v, %v) failed: %v", tt.json, tt.debug, err)
		}
		if tt.debug && !log.Core().Enabled(-1) {
			t.Errorf("New(%v, true) did not enable debug level", tt.json)
		}
		if !tt.debug && log.Core().Enabled(-1) {
			t.Errorf("New(%v, false) enabled debug level", tt.json)
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"a long query string", 6, "a long..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
