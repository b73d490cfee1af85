package xot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// A Span is the byte range a node was parsed from.
type Span struct {
	Start int64
	End   int64
}

// SpanInfo maps nodes to their source byte ranges. It is a parse-time
// snapshot: any mutation of the tree invalidates the whole map.
type SpanInfo map[Node]Span

// Parse builds a tree from an XML document and returns its Document
// node. The tree is added to the Arena alongside any existing trees.
func (a *Arena) Parse(data []byte) (Node, error) {
	return a.ParseReader(bytes.NewReader(data))
}

// ParseString is Parse for string input.
func (a *Arena) ParseString(doc string) (Node, error) {
	return a.ParseReader(strings.NewReader(doc))
}

// ParseReader builds a tree from UTF-8 XML text read from r.
func (a *Arena) ParseReader(r io.Reader) (Node, error) {
	return a.parse(r, nil)
}

// ParseWithSpans is Parse, and additionally reports the byte range
// every node was read from.
func (a *Arena) ParseWithSpans(data []byte) (Node, SpanInfo, error) {
	spans := make(SpanInfo)
	doc, err := a.parse(bytes.NewReader(data), spans)
	if err != nil {
		return Node{}, nil, err
	}
	return doc, spans, nil
}

// checkEncoding accepts only UTF-8 and US-ASCII input. Other labels are
// looked up in the WHATWG charset tables so that aliases of UTF-8 are
// accepted too; anything else is rejected, and the error carries the
// label as written in the document.
func checkEncoding(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "us-ascii", "ascii", "iso646-us":
		return input, nil
	}
	if _, name := charset.Lookup(label); name == "utf-8" {
		return input, nil
	}
	return nil, &UnsupportedEncodingError{Encoding: label}
}

// openElement is one entry of the parser's element stack.
type openElement struct {
	node  Node
	name  xml.Name // prefix and local as written, for end-tag matching
	scope map[string]string
}

type parser struct {
	arena *Arena
	d     *xml.Decoder
	doc   Node
	stack []openElement
	spans SpanInfo
}

func (a *Arena) parse(r io.Reader, spans SpanInfo) (Node, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = checkEncoding
	p := &parser{arena: a, d: d, doc: a.NewDocument(), spans: spans}
	for {
		start := d.InputOffset()
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			var unsupported *UnsupportedEncodingError
			if errors.As(err, &unsupported) {
				return Node{}, unsupported
			}
			return Node{}, &ParseError{Offset: d.InputOffset(), Err: err}
		}
		if err := p.token(tok, start); err != nil {
			return Node{}, err
		}
	}
	if len(p.stack) > 0 {
		open := p.stack[len(p.stack)-1]
		return Node{}, &ParseError{
			Offset: d.InputOffset(),
			Err:    fmt.Errorf("unexpected EOF: <%s> is not closed", rawName(open.name)),
		}
	}
	if _, err := a.DocumentElement(p.doc); err != nil {
		return Node{}, &ParseError{
			Offset: d.InputOffset(),
			Err:    errors.New("document has no document element"),
		}
	}
	return p.doc, nil
}

// rawName renders an unresolved token name as written in the source.
func rawName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func (p *parser) parent() Node {
	if len(p.stack) == 0 {
		return p.doc
	}
	return p.stack[len(p.stack)-1].node
}

func (p *parser) scope() map[string]string {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1].scope
}

// resolve maps a prefix as written to a namespace URI using the
// current scope. The empty prefix resolves to the default namespace
// for elements; attributes handle it separately.
func resolve(scope map[string]string, prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespaceURI, true
	}
	uri, ok := scope[prefix]
	if !ok && prefix == "" {
		return "", true
	}
	return uri, ok
}

func (p *parser) token(tok xml.Token, start int64) error {
	switch tok := tok.(type) {
	case xml.StartElement:
		return p.startElement(tok, start)
	case xml.EndElement:
		return p.endElement(tok)
	case xml.CharData:
		return p.text(string(tok), start)
	case xml.Comment:
		node, err := p.arena.NewComment(string(tok))
		if err != nil {
			return &ParseError{Offset: start, Err: err}
		}
		if err := p.arena.Append(p.parent(), node); err != nil {
			return &ParseError{Offset: start, Err: err}
		}
		p.recordSpan(node, start)
		return nil
	case xml.ProcInst:
		if strings.EqualFold(tok.Target, "xml") && len(p.stack) == 0 {
			// The XML declaration; the decoder has already applied its
			// encoding through CharsetReader.
			return nil
		}
		node, err := p.arena.NewProcessingInstruction(
			p.arena.NameString(tok.Target), string(tok.Inst))
		if err != nil {
			return &ParseError{Offset: start, Err: err}
		}
		if err := p.arena.Append(p.parent(), node); err != nil {
			return &ParseError{Offset: start, Err: err}
		}
		p.recordSpan(node, start)
		return nil
	case xml.Directive:
		// DOCTYPE and other directives are out of scope.
		return nil
	}
	return nil
}

func (p *parser) startElement(tok xml.StartElement, start int64) error {
	// Split namespace declarations from ordinary attributes. RawToken
	// leaves prefixes as written: xmlns:p has Space "xmlns", a bare
	// xmlns has the local name "xmlns".
	type decl struct{ prefix, uri string }
	var decls []decl
	attrs := tok.Attr[:0:0]
	for _, attr := range tok.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			decls = append(decls, decl{prefix: attr.Name.Local, uri: attr.Value})
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			decls = append(decls, decl{prefix: "", uri: attr.Value})
		default:
			attrs = append(attrs, attr)
		}
	}

	scope := p.scope()
	if len(decls) > 0 {
		inner := make(map[string]string, len(scope)+len(decls))
		for prefix, uri := range scope {
			inner[prefix] = uri
		}
		for _, d := range decls {
			inner[d.prefix] = d.uri
		}
		scope = inner
	}

	uri, ok := resolve(scope, tok.Name.Space)
	if !ok {
		return &ParseError{Offset: start, Err: &UnknownPrefixError{Prefix: tok.Name.Space}}
	}
	arena := p.arena
	el := arena.NewElement(arena.AddName(tok.Name.Local, arena.AddNamespace(uri)))
	for _, d := range decls {
		if _, err := arena.AppendNamespaceDecl(el, arena.AddPrefix(d.prefix), arena.AddNamespace(d.uri)); err != nil {
			return &ParseError{Offset: start, Err: err}
		}
	}
	for _, attr := range attrs {
		// An attribute without a prefix is in no namespace, regardless
		// of the default namespace.
		attrURI := ""
		if attr.Name.Space != "" {
			attrURI, ok = resolve(scope, attr.Name.Space)
			if !ok {
				return &ParseError{Offset: start, Err: &UnknownPrefixError{Prefix: attr.Name.Space}}
			}
		}
		name := arena.AddName(attr.Name.Local, arena.AddNamespace(attrURI))
		if _, err := arena.AppendAttribute(el, name, attr.Value); err != nil {
			return &ParseError{Offset: start, Err: err}
		}
	}
	if err := arena.Append(p.parent(), el); err != nil {
		return &ParseError{Offset: start, Err: err}
	}
	p.recordSpan(el, start)
	p.stack = append(p.stack, openElement{node: el, name: tok.Name, scope: scope})
	return nil
}

func (p *parser) endElement(tok xml.EndElement) error {
	if len(p.stack) == 0 {
		return &ParseError{
			Offset: p.d.InputOffset(),
			Err:    fmt.Errorf("unexpected </%s>", rawName(tok.Name)),
		}
	}
	open := p.stack[len(p.stack)-1]
	if tok.Name != open.name {
		return &ParseError{
			Offset: p.d.InputOffset(),
			Err:    fmt.Errorf("expected </%s>, got </%s>", rawName(open.name), rawName(tok.Name)),
		}
	}
	p.stack = p.stack[:len(p.stack)-1]
	if p.spans != nil {
		span := p.spans[open.node]
		span.End = p.d.InputOffset()
		p.spans[open.node] = span
	}
	return nil
}

func (p *parser) text(data string, start int64) error {
	parent := p.parent()
	if parent == p.doc {
		if strings.TrimSpace(data) == "" {
			return nil
		}
		return &ParseError{
			Offset: start,
			Err:    errors.New("text outside the document element"),
		}
	}
	node := p.arena.NewText(data)
	if err := p.arena.Append(parent, node); err != nil {
		return &ParseError{Offset: start, Err: err}
	}
	if p.spans == nil {
		return nil
	}
	if p.arena.IsRemoved(node) {
		// Consolidated into the preceding text node; extend its span.
		if last := p.arena.lastContentChild(parent.index); last != none {
			merged := p.arena.handle(last)
			span := p.spans[merged]
			span.End = p.d.InputOffset()
			p.spans[merged] = span
		}
		return nil
	}
	p.recordSpan(node, start)
	return nil
}

func (p *parser) recordSpan(node Node, start int64) {
	if p.spans == nil {
		return
	}
	p.spans[node] = Span{Start: start, End: p.d.InputOffset()}
}
