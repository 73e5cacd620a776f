package leafxml

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeBytes turns a raw byte stream into the codepoint string LeafXML's
// Parser expects (spec §4.9). It sniffs a byte-order mark to tell UTF-8
// from UTF-16BE/LE apart, strips the BOM, and transcodes to UTF-8. Bytes
// with no recognized BOM are assumed to already be UTF-8.
func DecodeBytes(b []byte) (string, error) {
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		return DecodeString(string(b[3:]))
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return decodeUTF16(b[2:], unicode.BigEndian)
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return decodeUTF16(b[2:], unicode.LittleEndian)
	default:
		return DecodeString(string(b))
	}
}

func decodeUTF16(b []byte, order unicode.Endianness) (string, error) {
	enc := unicode.UTF16(order, unicode.IgnoreBOM)
	r := transform.NewReader(bytes.NewReader(b), enc.NewDecoder())
	out, err := io.ReadAll(r)
	if err != nil {
		return "", &ParseError{Msg: "invalid UTF-16 byte stream", Err: err}
	}
	return DecodeString(string(out))
}

const byteOrderMark = '\uFEFF'

// DecodeString validates s as a sequence of Unicode codepoints suitable
// for the Parser: well-formed UTF-8 with no leading U+FEFF. A leading BOM
// surviving this far means the caller handed in a string that was never
// passed through DecodeBytes's own BOM sniffing, so it is rejected rather
// than silently stripped.
func DecodeString(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", &ParseError{Msg: "invalid UTF-8 byte stream"}
	}
	if r, _ := utf8.DecodeRuneInString(s); r == byteOrderMark {
		return "", &ParseError{Msg: "leading byte-order mark in decoded input"}
	}
	return s, nil
}
