package capture

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"collapses whitespace", "Buy   now\t\ttoday", 0, "Buy now today"},
		{"keeps single newlines", "Headline\n\n\nBody copy", 0, "Headline\nBody copy"},
		{"repairs mojibake", "Itâ€™s â€œfreeâ€", 0, "It's \"free\""},
		{"drops controls", "Start\x00\x08 here", 0, "Start here"},
		{"trims edges", "   padded   ", 0, "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeText(tc.in, tc.max); got != tc.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeText_CapRespectsRunes(t *testing.T) {
	in := strings.Repeat("é", 100)
	out := SanitizeText(in, 101)
	if len(out) > 101 {
		t.Errorf("output %d bytes, want <= 101", len(out))
	}
	// é is two bytes; the cap must land on a rune boundary.
	if len(out)%2 != 0 {
		t.Errorf("output %d bytes splits a rune", len(out))
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com/"},
		{"HTTP://Example.COM/pricing", "http://example.com/pricing"},
		{"https://shop.example.com/item?sku=4#reviews", "https://shop.example.com/item?sku=4"},
		{"  example.com/a  ", "https://example.com/a"},
	}
	for _, tc := range cases {
		got, err := NormalizeURL(tc.in)
		if err != nil {
			t.Fatalf("NormalizeURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := NormalizeURL(""); err == nil {
		t.Error("empty url should fail")
	}
}
