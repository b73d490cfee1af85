package xot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStructure(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<a><b k="1">text</b><!--note--><?pi data?></a>`)
	root := docElem(t, a, doc)

	children := a.Children(root).Collect()
	assert.Len(t, children, 3)
	assert.Equal(t, KindElement, a.Kind(children[0]))
	assert.Equal(t, KindComment, a.Kind(children[1]))
	assert.Equal(t, KindProcessingInstruction, a.Kind(children[2]))

	b := children[0]
	value, ok := a.AttributeValue(b, a.NameString("k"))
	assert.True(t, ok)
	assert.Equal(t, "1", value)
	text, err := a.TextContent(b)
	assert.NoError(t, err)
	assert.Equal(t, "text", text)

	comment, err := a.Comment(children[1])
	assert.NoError(t, err)
	assert.Equal(t, "note", comment.Data)

	pi, err := a.ProcessingInstruction(children[2])
	assert.NoError(t, err)
	assert.Equal(t, "pi", a.LocalName(pi.Target))
	assert.Equal(t, "data", pi.Data)
}

func TestParseEntities(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<a>a &amp; b &lt; c</a>`)
	text, err := a.TextContent(docElem(t, a, doc))
	assert.NoError(t, err)
	assert.Equal(t, "a & b < c", text)
	// Consolidation leaves a single text node even when the lexer
	// splits character data around entities.
	assert.Len(t, a.Children(docElem(t, a, doc)).Collect(), 1)
}

func TestParseCDATAVerbatim(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<r><![CDATA[a & b > c]]></r>`)
	text, err := a.TextContent(docElem(t, a, doc))
	assert.NoError(t, err)
	assert.Equal(t, "a & b > c", text)
}

func TestParseRawCDATAEndMarker(t *testing.T) {
	a := New()
	doc, err := a.ParseString(`<a>]]></a>`)
	if err != nil {
		t.Skipf("lexer rejects a raw ]]>: %v", err)
	}
	out := mustSerialize(t, a, doc, &SerializeOptions{UnescapeGT: true})
	assert.Equal(t, `<a>]]&gt;</a>`, out)
}

func TestParseNamespaces(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<x:a xmlns:x="u" xmlns="d"><b x:k="1"/></x:a>`)
	root := docElem(t, a, doc)

	e, err := a.Element(root)
	assert.NoError(t, err)
	assert.Equal(t, "a", a.LocalName(e.Name))
	assert.Equal(t, "u", a.NamespaceURI(a.NameNamespace(e.Name)))

	b := a.Children(root).Collect()[0]
	be, err := a.Element(b)
	assert.NoError(t, err)
	assert.Equal(t, "d", a.NamespaceURI(a.NameNamespace(be.Name)))

	attr, err := a.Attribute(a.Attributes(b).Collect()[0])
	assert.NoError(t, err)
	assert.Equal(t, "u", a.NamespaceURI(a.NameNamespace(attr.Name)))
}

func TestParseUnknownPrefix(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<x:a/>`)
	var unknown *UnknownPrefixError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "x", unknown.Prefix)

	_, err = a.ParseString(`<a y:k="1"/>`)
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "y", unknown.Prefix)
}

func TestParseDuplicateAttributes(t *testing.T) {
	a := New()
	var dup *DuplicateAttributeError
	_, err := a.ParseString(`<a k="1" k="2"/>`)
	assert.ErrorAs(t, err, &dup)

	// Different prefixes for the same namespace still collide.
	_, err = a.ParseString(`<a xmlns:x="u" xmlns:y="u" x:k="1" y:k="2"/>`)
	assert.ErrorAs(t, err, &dup)
}

func TestParseMismatchedTags(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<a><b></a></b>`)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Offset, int64(0))
}

func TestParseUnclosedElement(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<a><b>`)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseMultipleRoots(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<a/><b/>`)
	assert.Error(t, err)
}

func TestParseTextOutsideRoot(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<a/>stray`)
	assert.Error(t, err)

	// Whitespace around the document element is fine.
	_, err = a.ParseString("\n<a/>\n")
	assert.NoError(t, err)
}

func TestParseEncodings(t *testing.T) {
	a := New()
	_, err := a.ParseString(`<?xml version="1.0" encoding="UTF-8"?><a/>`)
	assert.NoError(t, err)
	_, err = a.ParseString(`<?xml version="1.0" encoding="US-ASCII"?><a/>`)
	assert.NoError(t, err)

	_, err = a.ParseString(`<?xml version="1.0" encoding="ISO-8859-1"?><a/>`)
	var unsupported *UnsupportedEncodingError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ISO-8859-1", unsupported.Encoding)
}

func TestParseConsolidation(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<a>one<![CDATA[two]]>three</a>`)
	children := a.Children(docElem(t, a, doc)).Collect()
	assert.Len(t, children, 1)
	text, err := a.Text(children[0])
	assert.NoError(t, err)
	assert.Equal(t, "onetwothree", text.Data)

	b := New()
	b.SetTextConsolidation(false)
	doc2 := mustParse(t, b, `<a>one<![CDATA[two]]>three</a>`)
	assert.Greater(t, len(b.Children(docElem(t, b, doc2)).Collect()), 1)
}

func TestParseWithSpans(t *testing.T) {
	a := New()
	input := []byte(`<a><b>xy</b></a>`)
	doc, spans, err := a.ParseWithSpans(input)
	assert.NoError(t, err)

	root := docElem(t, a, doc)
	b := a.Children(root).Collect()[0]
	text := a.Children(b).Collect()[0]

	assert.Equal(t, Span{Start: 0, End: 16}, spans[root])
	assert.Equal(t, Span{Start: 3, End: 12}, spans[b])
	assert.Equal(t, Span{Start: 6, End: 8}, spans[text])
	assert.Equal(t, "<b>xy</b>", string(input[spans[b].Start:spans[b].End]))
}

func TestParseIntoSharedArena(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a/>`)
	doc2 := mustParse(t, a, `<b/>`)

	// Both trees coexist; a subtree can move between them.
	el := a.NewElement(a.NameString("moved"))
	mustAppend(t, a, docElem(t, a, doc1), el)
	mustAppend(t, a, docElem(t, a, doc2), el)
	assert.Equal(t, `<a/>`, mustSerialize(t, a, doc1, nil))
	assert.Equal(t, `<b><moved/></b>`, mustSerialize(t, a, doc2, nil))
}
