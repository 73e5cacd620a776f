package leafxml

import "fmt"

// ParseError is returned by ReadEvent when the input violates LeafXML's
// grammar. It is always returned as *ParseError (never wrapped), so
// callers that need to distinguish it from a *UsageError can use a type
// assertion or errors.As.
type ParseError struct {
	// Source is the source name set via Parser.SetSourceName, or "" if
	// none was set.
	Source string
	// Line is the 1-based line the error is attributed to, or 0 if no
	// line is known.
	Line int
	// Msg is a short, stable description of the failure (see spec §7 for
	// the full taxonomy of messages this package produces).
	Msg string
	// Err, if non-nil, is the error that caused this one.
	Err error
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Source != "" {
		prefix += fmt.Sprintf("%q", e.Source)
	}
	if e.Line >= 1 {
		if prefix != "" {
			prefix += " "
		}
		prefix += fmt.Sprintf("line %d", e.Line)
	}
	if prefix == "" {
		return e.Msg
	}
	return prefix + ": " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// withSource returns a copy of e with Source set, used by Parser to stamp
// its source name onto errors bubbling up from unexported helpers that
// don't know it.
func (e *ParseError) withSource(source string) *ParseError {
	if e == nil || e.Source != "" {
		return e
	}
	cp := *e
	cp.Source = source
	return &cp
}

// UsageError is returned (as a panic value, per spec §4.8/§7: caller
// mistakes are "a separate error category" from parse errors) when an
// accessor is called without a matching event loaded, or before the
// first call to ReadEvent.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "leafxml: " + e.Msg
}
