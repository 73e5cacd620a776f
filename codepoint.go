package leafxml

import "sort"

// codepointRange is an inclusive [lo, hi] range of codepoints.
type codepointRange struct {
	lo, hi rune
}

// validRanges is the valid set V from the spec: the codepoints LeafXML
// will accept anywhere in a document, sorted and non-overlapping so
// inRanges can binary-search them.
var validRanges = []codepointRange{
	{0x0009, 0x0009},
	{0x000A, 0x000A},
	{0x000D, 0x000D},
	{0x0020, 0x007E},
	{0x0085, 0x0085},
	{0x00A0, 0xD7FF},
	{0xE000, 0xFDCF},
	{0xFDF0, 0x10FFFD},
}

// nameStartExclusions is the set of codepoints excluded as a name's first
// codepoint, even though they are otherwise valid name characters.
var nameStartExclusions = []codepointRange{
	{0x002D, 0x002D},
	{0x002E, 0x002E},
	{0x0030, 0x0039},
	{0x00B7, 0x00B7},
	{0x0300, 0x036F},
	{0x203F, 0x203F},
	{0x2040, 0x2040},
}

func inRanges(ranges []codepointRange, r rune) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].hi >= r })
	return i < len(ranges) && ranges[i].lo <= r
}

// ValidCodepoint reports whether r is in the valid set V: U+0009, U+000A,
// U+000D, U+0020-U+007E, U+0085, U+00A0-U+D7FF, U+E000-U+FDCF,
// U+FDF0-U+10FFFD, excluding any codepoint whose low 16 bits are 0xFFFE
// or 0xFFFF.
func ValidCodepoint(r rune) bool {
	if r < 0 || r > 0x10FFFF {
		return false
	}
	if low := r & 0xFFFF; low == 0xFFFE || low == 0xFFFF {
		return false
	}
	return inRanges(validRanges, r)
}

// ValidString reports whether every codepoint of s is in V. The empty
// string passes.
func ValidString(s string) bool {
	for _, r := range s {
		if !ValidCodepoint(r) {
			return false
		}
	}
	return true
}

// isNameChar reports whether r may appear anywhere in a Name, per the XML
// name class as restricted by this implementation: letters, digits,
// combining marks, and the connector punctuation XML allows, plus '-',
// '_', '.', and ':'.
func isNameChar(r rune) bool {
	switch {
	case r == '-' || r == '_' || r == '.' || r == ':':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
		return true
	case r == 0xB7:
		return true
	case r >= 0xC0 && r <= 0xD6:
		return true
	case r >= 0xD8 && r <= 0xF6:
		return true
	case r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x300 && r <= 0x37D:
		return true
	case r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D:
		return true
	case r >= 0x203F && r <= 0x2040:
		return true
	case r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF:
		return true
	case r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF:
		return true
	case r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

// NameFirstAllowed reports whether r may be the first codepoint of a
// Name: it must be a name character and not one of the name-start
// exclusions {U+002D, U+002E, U+0030-U+0039, U+00B7, U+0300-U+036F,
// U+203F, U+2040}.
func NameFirstAllowed(r rune) bool {
	if !isNameChar(r) {
		return false
	}
	return !inRanges(nameStartExclusions, r)
}

// ValidName reports whether s is a non-empty Name: every codepoint is in
// the name class, and the first codepoint passes NameFirstAllowed.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	first := true
	for _, r := range s {
		if first {
			if !NameFirstAllowed(r) {
				return false
			}
			first = false
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}
