package leafxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// withRune builds "a"+r+"b" without embedding r as source text, since NEL
// (U+0085) and LINE SEPARATOR (U+2028) are easy to confuse for ordinary
// whitespace when read back from a file.
func withRune(r rune) string {
	return "a" + string(r) + "b"
}

func TestNormalizeLineBreaksPkg(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a\r\nb", "a\nb"},
		{"a\r" + string(rune(0x0085)) + "b", "a\nb"},
		{"a\rb", "a\nb"},
		{withRune(0x0085), "a\nb"},
		{withRune(0x2028), "a\nb"},
		{"a\nb", "a\nb"},
		{"no breaks", "no breaks"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalizeLineBreaks(c.in), "normalizeLineBreaks(%q)", c.in)
	}
}

func TestCompressAttrWhitespace(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a b", "a b"},
		{"  a   b  ", "a b"},
		{"a\tb", "a b"},
		{"a\nb", "a b"},
		{"   ", ""},
		{"", ""},
		{"a", "a"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, compressAttrWhitespace(c.in), "compressAttrWhitespace(%q)", c.in)
	}
}

func TestNFCIdempotent(t *testing.T) {
	// "cafe" followed by a combining acute accent (U+0301) on the e,
	// spelled via rune concatenation so the combining mark isn't embedded
	// as raw source text.
	s := "cafe" + string(rune(0x0301))
	got := nfc(s)
	assert.Equal(t, got, nfc(got), "nfc not idempotent")
	assert.NotEqual(t, s, got, "expected combining sequence to compose under NFC")
}
