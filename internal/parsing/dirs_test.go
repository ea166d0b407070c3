package parsing

import (
	"strings"
	"testing"
)

// TestSafeDirName checks replacement, truncation, reserved names and dot-only names.
func TestSafeDirName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"Best of: 2024/25?", "Best of_ 2024_25_"},
		{`a<b>c"d|e*f\g`, "a_b_c_d_e_f_g"},
		{"  spaced  ", "spaced"},
		{"", "Playlist"},
		{"   ", "Playlist"},
		{"con", "Playlist"},
		{"LPT3", "Playlist"},
		{"COM10", "COM10"},
		{".", "Playlist"},
		{"..", "Playlist"},
		{" .. ", "Playlist"},
		{"...", "Playlist"},
		{"..hidden", "..hidden"},
	}
	for _, tt := range tests {
		if got := SafeDirName(tt.in); got != tt.want {
			t.Errorf("SafeDirName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("x", 150)
	if got := SafeDirName(long); len(got) != 100 {
		t.Errorf("expected 100 runes, got %d", len(got))
	}
}
