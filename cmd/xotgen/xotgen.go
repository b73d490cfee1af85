// The xotgen command regenerates the HTML5 element classification
// tables used by the serializer's HTML5 mode.
//
// Usage:
//
//	xotgen -o htmltables.go
//
// The element lists follow the HTML living standard: void elements,
// raw text elements, and phrasing ("inline") content.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/faassen/xot/internal/gen"
)

var output = flag.String("o", "htmltables.go", "output file")

var voidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

var rawTextElements = []string{"script", "style"}

var inlineElements = []string{
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "dfn",
	"em", "i", "img", "kbd", "label", "mark", "q", "rp", "rt",
	"ruby", "s", "samp", "small", "span", "strong", "sub", "sup",
	"time", "u", "var", "wbr",
}

const fileTmpl = `// Code generated by go run ./cmd/xotgen. DO NOT EDIT.

package xot

import "golang.org/x/net/html/atom"

var voidElements = map[atom.Atom]bool{
{{- range .Void}}
	atom.{{.}}: true,
{{- end}}
}

var rawTextElements = map[atom.Atom]bool{
{{- range .RawText}}
	atom.{{.}}: true,
{{- end}}
}

var inlineElements = map[atom.Atom]bool{
{{- range .Inline}}
	atom.{{.}}: true,
{{- end}}
}
`

// atomNames maps element names to the identifiers of their atom
// constants: br -> Br, script -> Script.
func atomNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.ToUpper(name[:1]) + name[1:]
	}
	return out
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	src, err := gen.File(*output, fileTmpl, struct {
		Void, RawText, Inline []string
	}{atomNames(voidElements), atomNames(rawTextElements), atomNames(inlineElements)})
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*output, src, 0666); err != nil {
		log.Fatal(err)
	}
}
