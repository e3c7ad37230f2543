package publish

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	maxDescription = 500
	noDescription  = "No description"
)

// Clean strips a free-text description down to a safe subset. The text is
// compatibility-decomposed, then only characters below codepoint 256,
// alphanumerics, and a small punctuation allow-list survive. Whitespace
// runs collapse to single spaces and the result is capped at 500
// characters. Input that ends up empty yields a fixed fallback, never an
// empty field.
func Clean(text string) string {
	normalized := norm.NFKD.String(text)

	var b strings.Builder
	for _, r := range normalized {
		if r < 256 || unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(" -_.,", r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if cleaned == "" {
		return noDescription
	}
	// cap counts characters, not bytes; a byte slice could split a rune
	if utf8.RuneCountInString(cleaned) > maxDescription {
		cleaned = string([]rune(cleaned)[:maxDescription])
	}
	return cleaned
}
