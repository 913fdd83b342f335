package episode

import "testing"

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dotted release name", "/library/Great.Show.VOSTFR.E07.1080p.x264.mkv", "Great Show"},
		{"underscores", "great_show_E01.mkv", "Great Show"},
		{"keeps year", "Show.2004.E01.VF.mkv", "Show 2004"},
		{"empty", "", "Unknown Series"},
		{"only tokens", "VOSTFR.E07.mkv", "Unknown Series"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.input); got != tt.expected {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
