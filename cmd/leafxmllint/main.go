package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ucarion/leafxml"
	"github.com/ucarion/leafxml/internal/attrorder"
)

func main() {
	var b []byte
	var err error
	var sourceName string

	if len(os.Args) > 1 {
		sourceName = os.Args[1]
		b, err = os.ReadFile(sourceName)
	} else {
		sourceName = "<stdin>"
		b, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	codepoints, err := leafxml.DecodeBytes(b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := leafxml.NewParser(codepoints)
	p.SetSourceName(sourceName)

	for {
		ok, err := p.ReadEvent()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !ok {
			break
		}

		switch p.EventKind() {
		case leafxml.StartElement:
			fmt.Printf("%d start %s\n", p.LineNumber(), qualifiedName(p))
			printAttrs(p)
		case leafxml.EndElement:
			fmt.Printf("%d end\n", p.LineNumber())
		case leafxml.Text:
			fmt.Printf("%d text %q\n", p.LineNumber(), p.ContentText())
		}
	}
}

func qualifiedName(p *leafxml.Parser) string {
	if ns, ok := p.ElementNamespace(); ok {
		return fmt.Sprintf("{%s}%s", ns, p.ElementName())
	}
	return p.ElementName()
}

func printAttrs(p *leafxml.Parser) {
	var plain []attrorder.Plain
	for name, value := range p.Attrs() {
		plain = append(plain, attrorder.Plain{Name: name, Value: value})
	}
	for _, a := range attrorder.SortPlain(plain) {
		fmt.Printf("    @%s=%q\n", a.Name, a.Value)
	}

	var external []attrorder.External
	for ns, byLocal := range p.ExternalAttrs() {
		for local, value := range byLocal {
			external = append(external, attrorder.External{Namespace: ns, Local: local, Value: value})
		}
	}
	for _, a := range attrorder.SortExternal(external) {
		fmt.Printf("    @{%s}%s=%q\n", a.Namespace, a.Local, a.Value)
	}
}
