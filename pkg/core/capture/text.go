package capture

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// mojibakeFixes maps the common UTF-8-read-as-Latin-1 sequences back to the
// characters page authors meant.
var mojibakeFixes = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", "\"",
	"â€", "\"",
	"â€“", "-",
	"â€”", "-",
	"â€¦", "...",
	"Â ", " ",
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¼", "ü",
	"Ã¶", "ö",
	"Ã¤", "ä",
	" ", " ",
	"�", "",
)

// SanitizeText normalizes extracted page text for downstream feature
// extraction: NFC form, mojibake repaired, control characters dropped,
// whitespace runs collapsed, capped at maxBytes on a rune boundary.
func SanitizeText(s string, maxBytes int) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = mojibakeFixes.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	lastNewline := false
	for _, r := range s {
		switch {
		case r == '\n':
			// Keep single newlines as block separators.
			if !lastNewline {
				b.WriteRune('\n')
			}
			lastNewline = true
			lastSpace = true
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
			lastNewline = false
		case unicode.IsControl(r):
			// drop
		default:
			b.WriteRune(r)
			lastSpace = false
			lastNewline = false
		}
	}
	out := strings.TrimSpace(b.String())

	if maxBytes > 0 && len(out) > maxBytes {
		cut := maxBytes
		for cut > 0 && !isRuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// NormalizeURL canonicalizes a target URL for fetching and cache keying:
// a missing scheme defaults to https, host lowercases, the fragment drops.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
