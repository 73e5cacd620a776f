package leafxml

import (
	"strings"

	"github.com/ucarion/leafxml/internal/nsstack"
)

// Reserved namespace values (spec §6).
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

func initialNamespaceFrame() nsstack.Frame {
	return nsstack.Frame{
		"xml":   XMLNamespace,
		"xmlns": XMLNSNamespace,
	}
}

// splitQName splits name into prefix and local parts if it has the shape
// prefix:local with exactly one colon and both sides valid Names.
// Otherwise (including the zero- or two-or-more-colon cases) it is
// treated as a bare name: ok is false and local is the whole of name.
func splitQName(name string) (prefix, local string, ok bool) {
	idx := strings.IndexByte(name, ':')
	if idx < 0 {
		return "", name, false
	}
	if strings.IndexByte(name[idx+1:], ':') >= 0 {
		return "", name, false
	}
	prefix, local = name[:idx], name[idx+1:]
	if !ValidName(prefix) || !ValidName(local) {
		return "", name, false
	}
	return prefix, local, true
}

type attrClass int

const (
	attrPlain attrClass = iota
	attrNamespaceDecl
	attrExternal
)

// classifyAttr determines how a raw attribute name participates in
// namespace processing (spec §3 "Plain attributes"/"External attributes",
// §4.7).
func classifyAttr(name string) (class attrClass, declPrefix, prefix, local string) {
	p, l, hasPrefix := splitQName(name)
	if !hasPrefix {
		if name == "xmlns" {
			return attrNamespaceDecl, "", "", name
		}
		return attrPlain, "", "", name
	}
	if p == "xmlns" {
		return attrNamespaceDecl, l, p, l
	}
	return attrExternal, "", p, l
}

// applyDeclarations validates the xmlns/xmlns:* declarations on a
// start/empty tag's raw attributes (spec §4.7) and returns the set of new
// declarations to push onto the namespace stack (empty prefix is the
// default namespace declaration).
func applyDeclarations(attrs []rawAttr) (map[string]string, error) {
	decls := make(map[string]string)
	seen := make(map[string]bool)

	for _, a := range attrs {
		class, declPrefix, _, _ := classifyAttr(a.name)
		if class != attrNamespaceDecl {
			continue
		}

		if seen[declPrefix] {
			return nil, &ParseError{Line: a.nameLine, Msg: "redefinition of prefix on element"}
		}
		seen[declPrefix] = true

		value := a.value
		if value == "" {
			return nil, &ParseError{Line: a.valueLine, Msg: "can't map namespace to empty"}
		}
		if declPrefix == "xmlns" {
			return nil, &ParseError{Line: a.nameLine, Msg: "can't map xmlns prefix"}
		}
		if declPrefix == "xml" {
			if value != XMLNamespace {
				return nil, &ParseError{
					Line: a.valueLine,
					Msg:  "can only map namespace prefix 'xml' to reserved xml value",
				}
			}
		} else if value == XMLNamespace {
			return nil, &ParseError{Line: a.valueLine, Msg: "can't map to reserved xmlns/xml value"}
		}
		if value == XMLNSNamespace {
			return nil, &ParseError{Line: a.valueLine, Msg: "can't map to reserved xmlns/xml value"}
		}

		decls[declPrefix] = value
	}

	return decls, nil
}

// resolveElementName resolves a (possibly prefixed) element name against
// the top of stack, per spec §4.6b: a prefixed name must resolve via its
// prefix; an unprefixed name picks up the default namespace if one is
// declared, else has no namespace.
func resolveElementName(stack *nsstack.Stack, name string) (local, ns string, hasNS bool, err error) {
	prefix, local, hasPrefix := splitQName(name)
	if hasPrefix {
		v, ok := stack.Lookup(prefix)
		if !ok {
			return "", "", false, &ParseError{Msg: "unmapped namespace prefix"}
		}
		return local, v, true, nil
	}

	if v, ok := stack.Lookup(""); ok {
		return name, v, true, nil
	}
	return name, "", false, nil
}

// resolveAttrs splits a tag's raw attributes into the plain-attrs map and
// the two-level external-attrs map (spec §3, §4.7), rejecting aliased
// external attributes (two prefixes resolving to the same namespace that
// both declare the same local name).
func resolveAttrs(stack *nsstack.Stack, attrs []rawAttr) (plain map[string]string, external map[string]map[string]string, err error) {
	plain = make(map[string]string)
	external = make(map[string]map[string]string)
	seenPairs := make(map[[2]string]bool)

	for _, a := range attrs {
		class, _, prefix, local := classifyAttr(a.name)
		switch class {
		case attrNamespaceDecl:
			continue
		case attrPlain:
			plain[local] = a.value
		case attrExternal:
			ns, ok := stack.Lookup(prefix)
			if !ok {
				return nil, nil, &ParseError{Line: a.nameLine, Msg: "unmapped namespace prefix"}
			}
			key := [2]string{ns, local}
			if seenPairs[key] {
				return nil, nil, &ParseError{Line: a.nameLine, Msg: "aliased external attribute"}
			}
			seenPairs[key] = true
			if external[ns] == nil {
				external[ns] = make(map[string]string)
			}
			external[ns][local] = a.value
		}
	}

	return plain, external, nil
}
