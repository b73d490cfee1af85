// Package gen renders Go source files from templates.
//
// The gen package is a thin wrapper that combines text/template with
// goimports-style formatting, so generators only describe their output
// and never worry about gofmt or import lists.
package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

// File renders tmpl with dot as template data and returns it formatted
// as Go source. The filename is used for error messages and for
// imports resolution; missing imports are added and unused ones
// removed.
func File(filename, tmpl string, dot interface{}) ([]byte, error) {
	t, err := template.New(filename).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing template for %s: %v", filename, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, dot); err != nil {
		return nil, fmt.Errorf("rendering %s: %v", filename, err)
	}
	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %v", filename, err)
	}
	return src, nil
}
