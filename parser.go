// Package leafxml implements LeafXML, a pull-style decoder for a
// restricted, NFC-normalized, namespace-aware subset of XML 1.0/1.1.
package leafxml

import (
	"strings"

	"github.com/ucarion/leafxml/internal/nsstack"
)

// Parser is a pull-style LeafXML decoder (spec §3 "Parser", §5). The
// caller supplies the entire decoded codepoint string up front; there are
// no internal suspension points, so the whole input is walked into a
// buffered sequence of events the first time ReadEvent is called.
type Parser struct {
	input  string
	source string

	parsed bool
	events []event
	perr   error

	idx     int
	current *event
}

// NewParser returns a Parser over s, which must already be a valid
// sequence of Unicode codepoints (see DecodeBytes/DecodeString for
// turning a byte stream into such a string).
func NewParser(s string) *Parser {
	return &Parser{input: s}
}

// SetSourceName attaches a name (such as a file path) to this parser,
// used to annotate any *ParseError it returns.
func (p *Parser) SetSourceName(name string) {
	p.source = name
}

// GetSourceName returns the name set by SetSourceName, or "" if none was
// set.
func (p *Parser) GetSourceName() string {
	return p.source
}

func (p *Parser) ensureParsed() error {
	if p.parsed {
		return p.perr
	}
	p.parsed = true
	p.events, p.perr = parseAll(p.input)
	return p.perr
}

// ReadEvent advances to the next event. It returns false (with a nil
// error) once the document is exhausted, and an error, wrapped with this
// parser's source name, the first time the input is found not to conform
// to LeafXML's grammar.
func (p *Parser) ReadEvent() (bool, error) {
	if err := p.ensureParsed(); err != nil {
		p.current = nil
		if pe, ok := err.(*ParseError); ok {
			return false, pe.withSource(p.source)
		}
		return false, err
	}

	if p.idx >= len(p.events) {
		p.current = nil
		return false, nil
	}

	p.current = &p.events[p.idx]
	p.idx++
	return true, nil
}

func (p *Parser) require() *event {
	if p.current == nil {
		panic(&UsageError{Msg: "accessor called without a current event"})
	}
	return p.current
}

// EventKind returns the kind of the current event.
func (p *Parser) EventKind() EventKind {
	return p.require().kind
}

// LineNumber returns the 1-based line the current event started on.
func (p *Parser) LineNumber() int {
	return p.require().line
}

// ContentText returns the merged character content of a Text event. It
// panics with *UsageError if the current event is not a Text event.
func (p *Parser) ContentText() string {
	e := p.require()
	if e.kind != Text {
		panic(&UsageError{Msg: "ContentText called on a non-Text event"})
	}
	return e.text
}

// ElementName returns the local name of the current StartElement event.
// It panics with *UsageError on any other event kind; EndElement carries
// no accessible name of its own (spec §4.8) since a caller that needs it
// can retain it from the matching StartElement.
func (p *Parser) ElementName() string {
	e := p.require()
	if e.kind != StartElement {
		panic(&UsageError{Msg: "ElementName called on a non-StartElement event"})
	}
	return e.name
}

// ElementNamespace returns the resolved namespace of the current
// StartElement event, and whether it has one at all. It panics with
// *UsageError on any other event kind.
func (p *Parser) ElementNamespace() (string, bool) {
	e := p.require()
	if e.kind != StartElement {
		panic(&UsageError{Msg: "ElementNamespace called on a non-StartElement event"})
	}
	return e.namespace, e.hasNamespace
}

// Attrs returns the plain (unprefixed, non-xmlns) attributes of the
// current StartElement event.
func (p *Parser) Attrs() map[string]string {
	e := p.require()
	if e.kind != StartElement {
		panic(&UsageError{Msg: "Attrs called on a non-StartElement event"})
	}
	return e.attrs
}

// ExternalAttrs returns the namespace-prefixed attributes of the current
// StartElement event, keyed first by resolved namespace and then by
// local name. Iteration order of either map level is unspecified.
func (p *Parser) ExternalAttrs() map[string]map[string]string {
	e := p.require()
	if e.kind != StartElement {
		panic(&UsageError{Msg: "ExternalAttrs called on a non-StartElement event"})
	}
	return e.externalAttrs
}

// stackEntry tracks one open element: its verbatim (unresolved) name, so
// that the matching end tag can be checked by exact textual equality, and
// its already-resolved name/namespace so the EndElement event need not
// redo resolution.
type stackEntry struct {
	rawName      string
	name         string
	namespace    string
	hasNamespace bool
}

// parseAll tokenizes and assembles the whole of s into the final,
// already text-merged sequence of events (spec §4.6 "assembler & event
// engine"). It is the only place the tokenizer, tag parser, and
// namespace resolver are driven together.
func parseAll(s string) ([]event, error) {
	tz := newTokenizer(s)
	stack := nsstack.New(initialNamespaceFrame())

	var elements []stackEntry
	var events []event

	var textBuf strings.Builder
	textLine := 0

	appendText := func(line int, text string) {
		if textBuf.Len() == 0 {
			textLine = line
		}
		textBuf.WriteString(text)
	}

	// flush turns the pending content accumulator into a Text event (spec
	// §4.6a). Outside the root element the accumulator must be entirely
	// whitespace (dropped silently); inside, it is NFC-normalized and
	// emitted.
	flush := func() error {
		if textBuf.Len() == 0 {
			return nil
		}
		text := textBuf.String()
		textBuf.Reset()

		if len(elements) == 0 {
			if line, ok := firstNonWhitespaceLine(text, textLine); ok {
				return &ParseError{Line: line, Msg: "text content not allowed outside root element"}
			}
			return nil
		}

		events = append(events, event{kind: Text, line: textLine, text: nfc(text)})
		return nil
	}

	rootSeen := false
	rootClosed := false

	for {
		tok, ok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch tok.kind {
		case tokenComment, tokenPI, tokenDOCTYPE:
			continue

		case tokenError:
			return nil, &ParseError{Line: tok.line, Msg: "tokenization failed"}

		case tokenCDATA:
			appendText(tok.line, tok.cdataBody())

		case tokenText:
			decoded, err := decodeEntities(tok.text, tok.line)
			if err != nil {
				return nil, err
			}
			appendText(tok.line, decoded)

		case tokenTag:
			if err := flush(); err != nil {
				return nil, err
			}

			tag, err := parseTag(tok)
			if err != nil {
				return nil, err
			}

			switch tag.kind {
			case tagStart, tagEmpty:
				if len(elements) == 0 {
					if rootClosed {
						return nil, &ParseError{Line: tag.line, Msg: "multiple root elements"}
					}
					rootSeen = true
				}

				decls, err := applyDeclarations(tag.attrs)
				if err != nil {
					return nil, err
				}
				stack.Push(decls)

				local, ns, hasNS, err := resolveElementName(stack, tag.name)
				if err != nil {
					return nil, err
				}
				plain, external, err := resolveAttrs(stack, tag.attrs)
				if err != nil {
					return nil, err
				}

				events = append(events, event{
					kind:          StartElement,
					line:          tag.line,
					name:          local,
					namespace:     ns,
					hasNamespace:  hasNS,
					attrs:         plain,
					externalAttrs: external,
				})
				elements = append(elements, stackEntry{
					rawName:      tag.name,
					name:         local,
					namespace:    ns,
					hasNamespace: hasNS,
				})

				if tag.kind == tagEmpty {
					top := elements[len(elements)-1]
					elements = elements[:len(elements)-1]
					stack.Pop()
					events = append(events, event{
						kind:         EndElement,
						line:         tag.line,
						name:         top.name,
						namespace:    top.namespace,
						hasNamespace: top.hasNamespace,
					})
					if len(elements) == 0 {
						rootClosed = true
					}
				}

			case tagEnd:
				if len(elements) == 0 {
					return nil, &ParseError{Line: tag.line, Msg: "tag pairing error"}
				}
				top := elements[len(elements)-1]
				if top.rawName != tag.name {
					return nil, &ParseError{Line: tag.line, Msg: "tag pairing error"}
				}

				elements = elements[:len(elements)-1]
				stack.Pop()
				events = append(events, event{
					kind:         EndElement,
					line:         tag.line,
					name:         top.name,
					namespace:    top.namespace,
					hasNamespace: top.hasNamespace,
				})
				if len(elements) == 0 {
					rootClosed = true
				}
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	if len(elements) > 0 {
		return nil, &ParseError{Msg: "unclosed tags"}
	}
	if !rootSeen {
		return nil, &ParseError{Msg: "missing root element"}
	}

	return events, nil
}

// firstNonWhitespaceLine scans text (already line-break normalized to
// bare LF) for a codepoint outside {U+0020, U+0009, U+000A}, returning
// the line it falls on, counting from startLine. ok is false if text is
// entirely whitespace.
func firstNonWhitespaceLine(text string, startLine int) (line int, ok bool) {
	line = startLine
	for _, r := range text {
		if r == '\n' {
			line++
			continue
		}
		if r != ' ' && r != '\t' {
			return line, true
		}
	}
	return 0, false
}
