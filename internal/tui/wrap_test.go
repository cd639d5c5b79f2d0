package tui

import "testing"

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"break at space", "Stock is red.", 8, "Stock is\nred."},
		{"break at last space", "Stock is red.", 10, "Stock is\nred."},
		{"keeps newlines", "Stock is red.\nDay 127", 8, "Stock is\nred.\nDay 127"},
		{"long word", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"wide runes", "日本語", 4, "日本\n語"},
		{"no width", "Stock is red.", 0, "Stock is red."},
		{"empty", "", 10, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapText(tc.text, tc.width); got != tc.want {
				t.Fatalf("wrapText(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}
