package leafxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucarion/leafxml/internal/nsstack"
)

func newStack() *nsstack.Stack {
	return nsstack.New(initialNamespaceFrame())
}

func TestSplitQName(t *testing.T) {
	cases := []struct {
		name      string
		prefix    string
		local     string
		hasPrefix bool
	}{
		{"root", "", "root", false},
		{"p:root", "p", "root", true},
		{"a:b:c", "", "a:b:c", false},
		{":root", "", ":root", false},
	}
	for _, c := range cases {
		prefix, local, ok := splitQName(c.name)
		assert.Equal(t, c.hasPrefix, ok, "splitQName(%q) ok", c.name)
		assert.Equal(t, c.local, local, "splitQName(%q) local", c.name)
		if ok {
			assert.Equal(t, c.prefix, prefix, "splitQName(%q) prefix", c.name)
		}
	}
}

func TestApplyDeclarationsDefaultNamespace(t *testing.T) {
	decls, err := applyDeclarations([]rawAttr{
		{name: "xmlns", value: "http://example.com/ns"},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/ns", decls[""])
}

func TestApplyDeclarationsPrefixedNamespace(t *testing.T) {
	decls, err := applyDeclarations([]rawAttr{
		{name: "xmlns:p", value: "http://example.com/ns"},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/ns", decls["p"])
}

func TestApplyDeclarationsEmptyValueFails(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{{name: "xmlns:p", value: ""}})
	assert.Error(t, err)
}

func TestApplyDeclarationsXmlnsPrefixFails(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{{name: "xmlns:xmlns", value: "http://example.com"}})
	assert.Error(t, err)
}

func TestApplyDeclarationsReservedXmlnsValueFails(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{{name: "xmlns:p", value: XMLNSNamespace}})
	assert.Error(t, err)
}

func TestApplyDeclarationsXmlPrefixMustMapToReservedValue(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{{name: "xmlns:xml", value: "http://example.com"}})
	assert.Error(t, err)
}

func TestApplyDeclarationsXmlPrefixReservedValueOK(t *testing.T) {
	decls, err := applyDeclarations([]rawAttr{{name: "xmlns:xml", value: XMLNamespace}})
	require.NoError(t, err)
	assert.Equal(t, XMLNamespace, decls["xml"])
}

func TestApplyDeclarationsReservedXmlValueOnOtherPrefixFails(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{{name: "xmlns:p", value: XMLNamespace}})
	assert.Error(t, err)
}

func TestApplyDeclarationsDuplicatePrefixFails(t *testing.T) {
	_, err := applyDeclarations([]rawAttr{
		{name: "xmlns:p", value: "http://example.com/a"},
		{name: "xmlns:p", value: "http://example.com/b"},
	})
	assert.Error(t, err)
}

func TestApplyDeclarationsIgnoresNonDeclarations(t *testing.T) {
	decls, err := applyDeclarations([]rawAttr{{name: "p:a", value: "x"}, {name: "a", value: "y"}})
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestResolveElementNameUnprefixedNoDefault(t *testing.T) {
	local, _, hasNS, err := resolveElementName(newStack(), "root")
	require.NoError(t, err)
	assert.Equal(t, "root", local)
	assert.False(t, hasNS)
}

func TestResolveElementNameUnprefixedWithDefault(t *testing.T) {
	stack := newStack()
	stack.Push(map[string]string{"": "http://example.com/ns"})
	local, ns, hasNS, err := resolveElementName(stack, "root")
	require.NoError(t, err)
	assert.Equal(t, "root", local)
	assert.True(t, hasNS)
	assert.Equal(t, "http://example.com/ns", ns)
}

func TestResolveElementNamePrefixed(t *testing.T) {
	stack := newStack()
	stack.Push(map[string]string{"p": "http://example.com/ns"})
	local, ns, hasNS, err := resolveElementName(stack, "p:root")
	require.NoError(t, err)
	assert.Equal(t, "root", local)
	assert.True(t, hasNS)
	assert.Equal(t, "http://example.com/ns", ns)
}

func TestResolveElementNameUnmappedPrefixFails(t *testing.T) {
	_, _, _, err := resolveElementName(newStack(), "p:root")
	assert.Error(t, err)
}

func TestResolveElementNameReservedXmlPrefix(t *testing.T) {
	local, ns, hasNS, err := resolveElementName(newStack(), "xml:lang")
	require.NoError(t, err)
	assert.Equal(t, "lang", local)
	assert.True(t, hasNS)
	assert.Equal(t, XMLNamespace, ns)
}

func TestResolveAttrsPlainAndExternal(t *testing.T) {
	stack := newStack()
	stack.Push(map[string]string{"p": "http://example.com/ns"})

	plain, external, err := resolveAttrs(stack, []rawAttr{
		{name: "a", value: "1"},
		{name: "p:b", value: "2"},
		{name: "xmlns:p", value: "http://example.com/ns"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", plain["a"])
	assert.Equal(t, "2", external["http://example.com/ns"]["b"])
	_, ok := plain["xmlns:p"]
	assert.False(t, ok, "namespace declaration leaked into plain attrs: %+v", plain)
}

func TestResolveAttrsAliasedExternalFails(t *testing.T) {
	stack := newStack()
	stack.Push(map[string]string{"p": "http://example.com/ns", "q": "http://example.com/ns"})

	_, _, err := resolveAttrs(stack, []rawAttr{
		{name: "p:a", value: "1"},
		{name: "q:a", value: "2"},
	})
	assert.Error(t, err)
}

func TestResolveAttrsUnmappedPrefixFails(t *testing.T) {
	_, _, err := resolveAttrs(newStack(), []rawAttr{{name: "p:a", value: "1"}})
	assert.Error(t, err)
}
