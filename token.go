package leafxml

// tokenKind identifies the lexical category of a token produced by the
// tokenizer (spec §4.4).
type tokenKind int

const (
	tokenComment tokenKind = iota
	tokenPI
	tokenDOCTYPE
	tokenCDATA
	tokenTag
	tokenText
	tokenError
)

// token is one lexeme produced by the tokenizer: its raw text (including
// delimiters, except where noted below) and the line it starts on.
//
//   - tokenComment: text is the full "<!-- ... -->" span.
//   - tokenPI: text is the full "<? ... ?>" span.
//   - tokenDOCTYPE: text is the full "<!DOCTYPE ... >" span.
//   - tokenCDATA: text is the full "<![CDATA[ ... ]]>" span.
//   - tokenTag: text is the full "<...>" span.
//   - tokenText: text is the maximal non-"<" run, already line-break
//     normalized.
//   - tokenError: text is always "<".
type token struct {
	kind tokenKind
	text string
	line int
}

// cdataBody returns the inner content of a CDATA token, between
// "<![CDATA[" and "]]>".
func (t token) cdataBody() string {
	const prefix = "<![CDATA["
	const suffix = "]]>"
	return t.text[len(prefix) : len(t.text)-len(suffix)]
}
