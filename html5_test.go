package xot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func html5Opts() *SerializeOptions {
	return &SerializeOptions{Mode: ModeHTML5}
}

func TestHTML5VoidElements(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<div><br/><img src="x.png"/></div>`)

	assert.Equal(t, `<div><br><img src="x.png"></div>`,
		mustSerialize(t, a, doc, html5Opts()))
	// XML mode keeps the self-closing form.
	assert.Equal(t, `<div><br/><img src="x.png"/></div>`,
		mustSerialize(t, a, doc, nil))
}

func TestHTML5EmptyNonVoid(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<div><span/></div>`)
	assert.Equal(t, `<div><span></span></div>`, mustSerialize(t, a, doc, html5Opts()))
}

func TestHTML5RawText(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<html><script>x</script></html>`)
	root := docElem(t, a, doc)
	script := a.Children(root).Collect()[0]
	assert.NoError(t, a.SetTextContent(script, "if (a < b && c > d) { f(); }"))

	assert.Equal(t, `<html><script>if (a < b && c > d) { f(); }</script></html>`,
		mustSerialize(t, a, doc, html5Opts()))
}

func TestHTML5BooleanAttributes(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<form><input type="checkbox" checked=""/></form>`)
	assert.Equal(t, `<form><input type="checkbox" checked></form>`,
		mustSerialize(t, a, doc, html5Opts()))
}

func TestHTML5Doctype(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<html><body/></html>`)
	opts := html5Opts()
	opts.Doctype = Doctype{Kind: DoctypeHTML5}
	assert.Equal(t, "<!DOCTYPE html>\n<html><body></body></html>",
		mustSerialize(t, a, doc, opts))
}

func TestHTML5PrettyInline(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<div><p><span/><em/></p><ul><li/></ul></div>`)
	opts := html5Opts()
	opts.Pretty = true
	// Block children indent; inline runs do not.
	want := "<div>\n  <p><span></span><em></em></p>\n  <ul>\n    <li></li>\n  </ul>\n</div>"
	assert.Equal(t, want, mustSerialize(t, a, doc, opts))
}

func TestHTML5NamespaceDeclarationsDropped(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<html xmlns="http://www.w3.org/1999/xhtml"><body/></html>`)
	assert.Equal(t, `<html><body></body></html>`, mustSerialize(t, a, doc, html5Opts()))
}
