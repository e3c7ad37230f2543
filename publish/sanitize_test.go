package publish

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func allowed(r rune) bool {
	return r < 256 || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune(" -_.,", r)
}

func TestClean_Charset(t *testing.T) {
	inputs := []string{
		"plain description",
		"Ünïcödé déscription with émphasis",
		"日本語のテキスト mixed with latin",
		"tabs\tand\nnewlines\r\nhere",
		"emoji 🎬 stripped or kept below 256 only",
	}
	for _, in := range inputs {
		out := Clean(in)
		assert.LessOrEqual(t, len(out), 500)
		assert.NotEmpty(t, out)
		for _, r := range out {
			assert.True(t, allowed(r), "input %q produced disallowed rune %q", in, r)
		}
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Clean("a   b \t\n c"))
}

func TestClean_Truncates(t *testing.T) {
	out := Clean(strings.Repeat("x", 600))
	assert.Len(t, out, 500)
}

func TestClean_TruncatesOnRuneBoundary(t *testing.T) {
	out := Clean(strings.Repeat("日", 600))
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 500, utf8.RuneCountInString(out))
	assert.Equal(t, "日", out[len(out)-len("日"):])
}

func TestClean_Fallback(t *testing.T) {
	assert.Equal(t, "No description", Clean(""))
	assert.Equal(t, "No description", Clean("   \t\n  "))
}

func TestClean_KeepsAllowedPunctuation(t *testing.T) {
	assert.Equal(t, "a-b_c.d,e", Clean("a-b_c.d,e"))
}
