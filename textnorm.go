package leafxml

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	nel  = '\u0085'
	lsep = '\u2028'
)

// normalizeLineBreaks rewrites s so that every line break is a single
// U+000A, applying the longest-match rules in order: CRLF -> LF,
// CR-NEL -> LF, then any remaining CR, NEL (U+0085), or LINE SEPARATOR
// (U+2028) -> LF.
func normalizeLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\u0085\u2028") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
			b.WriteByte('\n')
			i++
		case r == '\r' && i+1 < len(runes) && runes[i+1] == nel:
			b.WriteByte('\n')
			i++
		case r == '\r' || r == nel || r == lsep:
			b.WriteByte('\n')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// compressAttrWhitespace replaces every maximal run of {TAB, LF, CR,
// SPACE} in s with a single space, then trims a single leading and
// trailing space (the attribute-value whitespace rule). It runs after
// entity decoding, so s may hold a CR or LF from a character reference
// as well as literal line breaks already folded to LF.
func compressAttrWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		if isAttrSpace(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}

	out := b.String()
	out = strings.TrimPrefix(out, " ")
	out = strings.TrimSuffix(out, " ")
	return out
}

func isAttrSpace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' || r == ' '
}

// nfc returns the NFC (Normalization Form C) normalization of s, via
// golang.org/x/text/unicode/norm per spec §4.2.
func nfc(s string) string {
	return norm.NFC.String(s)
}
