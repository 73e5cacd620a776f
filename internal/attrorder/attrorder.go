// Package attrorder gives callers that need a stable, printable view of
// leafxml's attribute maps (tests and cmd/leafxmllint) a deterministic
// ordering. The public Parser API never guarantees map iteration order
// (spec: "Order across the map is unspecified"); this package is an
// adapter around that unordered data, not part of the parsing contract.
package attrorder

import "sort"

// Plain is a flattened (name, value) pair from a Parser's Attrs map.
type Plain struct {
	Name  string
	Value string
}

// External is a flattened (namespace, local, value) triple from a
// Parser's ExternalAttrs map.
type External struct {
	Namespace string
	Local     string
	Value     string
}

// SortPlain returns attrs sorted lexicographically by name.
func SortPlain(attrs []Plain) []Plain {
	out := append([]Plain(nil), attrs...)
	sort.Sort(byPlainName(out))
	return out
}

// SortExternal returns attrs sorted lexicographically by namespace, then
// by local name, mirroring the c14n "namespace URI as primary key, local
// name as secondary key" ordering rule applied to attribute printing.
func SortExternal(attrs []External) []External {
	out := append([]External(nil), attrs...)
	sort.Sort(byExternalNamespaceThenLocal(out))
	return out
}

type byPlainName []Plain

func (a byPlainName) Len() int           { return len(a) }
func (a byPlainName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byPlainName) Less(i, j int) bool { return a[i].Name < a[j].Name }

type byExternalNamespaceThenLocal []External

func (a byExternalNamespaceThenLocal) Len() int      { return len(a) }
func (a byExternalNamespaceThenLocal) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byExternalNamespaceThenLocal) Less(i, j int) bool {
	if a[i].Namespace != a[j].Namespace {
		return a[i].Namespace < a[j].Namespace
	}
	return a[i].Local < a[j].Local
}
