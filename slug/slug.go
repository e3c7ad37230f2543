package slug

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 50

// Make derives a URL-safe directory name from a title: lowercase ASCII
// alphanumerics separated by single hyphens. A naive slug longer than 50
// characters becomes its first 30 characters plus its last 10 plus 5
// random letters, which bounds the length while keeping collisions
// unlikely. Uniqueness is not guaranteed either way.
func Make(title string) string {
	s := naive(title)
	if len(s) > maxLen {
		return s[:30] + s[len(s)-10:] + randLetters(5)
	}
	return s
}

// naive transliterates to ASCII and hyphenates everything else
func naive(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, title)
	if err != nil {
		ascii = title
	}

	var b strings.Builder
	hyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func randLetters(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
