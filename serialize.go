package xot

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/transform"
)

// Mode selects the serialization dialect.
type Mode int

const (
	// ModeXML produces well-formed XML.
	ModeXML Mode = iota
	// ModeHTML5 produces HTML5: void elements without a closing slash,
	// raw script/style contents, minimal boolean attributes.
	ModeHTML5
)

// DoctypeKind selects the document type declaration to emit.
type DoctypeKind int

const (
	DoctypeNone DoctypeKind = iota
	DoctypeSystem
	DoctypePublic
	DoctypeHTML5
)

// A Doctype describes the document type declaration. Public and System
// carry the identifiers for DoctypePublic and DoctypeSystem.
type Doctype struct {
	Kind   DoctypeKind
	Public string
	System string
}

// SerializeOptions control serialization. The zero value produces
// compact XML without a declaration.
type SerializeOptions struct {
	// XMLDeclaration emits <?xml version="1.0" encoding="UTF-8"?>.
	XMLDeclaration bool
	// Doctype emits a document type declaration after the XML
	// declaration.
	Doctype Doctype
	// CDATAElements lists element names whose text children are
	// emitted as CDATA sections instead of escaped character data.
	CDATAElements map[NameID]bool
	// SuppressIndentation lists element names whose content is never
	// reindented by pretty printing.
	SuppressIndentation map[NameID]bool
	// Pretty inserts newlines and indentation between sibling nodes,
	// except inside mixed content, xml:space="preserve" scopes,
	// suppressed elements and CDATA sections.
	Pretty bool
	// Indent is the per-level indentation for Pretty; two spaces when
	// empty.
	Indent string
	// UnescapeGT leaves ">" unescaped in character data, except within
	// "]]>", which is always broken up.
	UnescapeGT bool
	// Normalizer, when set, is applied to every emitted text and
	// attribute value; norm.NFC is the usual choice.
	Normalizer transform.Transformer
	// Mode selects XML or HTML5 output.
	Mode Mode
}

func (opts *SerializeOptions) indent() string {
	if opts.Indent == "" {
		return "  "
	}
	return opts.Indent
}

// Serialize writes the subtree at n to w. Namespaces used by names in
// the subtree must have in-scope prefixes; run CreateMissingPrefixes
// first or Serialize fails with a MissingPrefixError.
func (a *Arena) Serialize(w io.Writer, n Node, opts *SerializeOptions) error {
	if opts == nil {
		opts = &SerializeOptions{}
	}
	s := &serializer{a: a, w: bufio.NewWriter(w), opts: opts}
	if err := s.root(n); err != nil {
		return err
	}
	return s.w.Flush()
}

// SerializeString renders the subtree at n as a string.
func (a *Arena) SerializeString(n Node, opts *SerializeOptions) (string, error) {
	var b strings.Builder
	if err := a.Serialize(&b, n, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// String renders the subtree at n with default options.
func (a *Arena) String(n Node) (string, error) {
	return a.SerializeString(n, nil)
}

type serializer struct {
	a    *Arena
	w    *bufio.Writer
	opts *SerializeOptions
}

func (s *serializer) normalize(text string) (string, error) {
	if s.opts.Normalizer == nil {
		return text, nil
	}
	out, _, err := transform.String(s.opts.Normalizer, text)
	return out, err
}

func (s *serializer) root(n Node) error {
	v, err := s.a.Value(n)
	if err != nil {
		return err
	}
	switch v.Kind() {
	case KindDocument:
		if err := s.prolog(n); err != nil {
			return err
		}
		first := true
		children := s.a.Children(n)
		for {
			child, ok := children.Next()
			if !ok {
				return nil
			}
			if !first && s.opts.Pretty {
				if err := s.write("\n"); err != nil {
					return err
				}
			}
			first = false
			if err := s.content(child, 0, false); err != nil {
				return err
			}
		}
	case KindElement:
		if err := s.prolog(n); err != nil {
			return err
		}
		return s.content(n, 0, false)
	case KindText, KindComment, KindProcessingInstruction:
		return s.content(n, 0, false)
	}
	return &InvalidOperationError{Reason: "cannot serialize a " + v.Kind().String() + " node"}
}

// prolog emits the XML declaration and document type declaration.
func (s *serializer) prolog(n Node) error {
	if s.opts.XMLDeclaration && s.opts.Mode == ModeXML {
		if err := s.write(`<?xml version="1.0" encoding="UTF-8"?>` + "\n"); err != nil {
			return err
		}
	}
	if s.opts.Doctype.Kind == DoctypeNone {
		return nil
	}
	name, err := s.rootElementName(n)
	if err != nil {
		return err
	}
	switch s.opts.Doctype.Kind {
	case DoctypeHTML5:
		return s.write("<!DOCTYPE html>\n")
	case DoctypeSystem:
		return s.write("<!DOCTYPE " + name + " SYSTEM \"" + s.opts.Doctype.System + "\">\n")
	case DoctypePublic:
		return s.write("<!DOCTYPE " + name + " PUBLIC \"" + s.opts.Doctype.Public + "\" \"" + s.opts.Doctype.System + "\">\n")
	}
	return nil
}

func (s *serializer) rootElementName(n Node) (string, error) {
	el := n
	if s.a.Kind(n) == KindDocument {
		found, err := s.a.DocumentElement(n)
		if err != nil {
			return "", err
		}
		el = found
	}
	e, err := s.a.Element(el)
	if err != nil {
		return "", err
	}
	return s.a.FullName(el, e.Name)
}

func (s *serializer) write(text string) error {
	_, err := s.w.WriteString(text)
	return err
}

// content serializes one content node at the given depth. preserve is
// true inside an xml:space="preserve" scope.
func (s *serializer) content(n Node, depth int, preserve bool) error {
	switch v := s.a.slots[n.index].value.(type) {
	case *Element:
		return s.element(n, v, depth, preserve)
	case *Text:
		data, err := s.normalize(v.Data)
		if err != nil {
			return err
		}
		return s.write(escapeText(data, s.opts.UnescapeGT))
	case *Comment:
		return s.write("<!--" + v.Data + "-->")
	case *ProcessingInstruction:
		target, _ := s.a.Name(v.Target)
		if v.Data == "" {
			return s.write("<?" + target + "?>")
		}
		return s.write("<?" + target + " " + v.Data + "?>")
	}
	return &InvalidOperationError{Reason: "cannot serialize a " + s.a.Kind(n).String() + " node as content"}
}

func (s *serializer) element(n Node, el *Element, depth int, preserve bool) error {
	html := s.opts.Mode == ModeHTML5
	name, err := s.a.FullName(n, el.Name)
	if err != nil {
		return err
	}
	if err := s.write("<" + name); err != nil {
		return err
	}
	if err := s.startTagContents(n); err != nil {
		return err
	}

	local, _ := s.a.Name(el.Name)
	void := html && isVoidElement(local)
	first := s.a.firstContentChild(n.index)
	if first == none {
		switch {
		case void:
			return s.write(">")
		case html:
			return s.write("></" + name + ">")
		default:
			return s.write("/>")
		}
	}
	if err := s.write(">"); err != nil {
		return err
	}

	preserve = s.xmlSpace(n, preserve)
	cdata := s.opts.CDATAElements[el.Name] && !html
	raw := html && isRawTextElement(local)
	indent := s.indentChildren(n, el, preserve)

	children := s.a.Children(n)
	for {
		child, ok := children.Next()
		if !ok {
			break
		}
		if indent {
			if err := s.write("\n" + strings.Repeat(s.opts.indent(), depth+1)); err != nil {
				return err
			}
		}
		if t, isText := s.a.slots[child.index].value.(*Text); isText && (cdata || raw) {
			data, err := s.normalize(t.Data)
			if err != nil {
				return err
			}
			if raw {
				if err := s.write(data); err != nil {
					return err
				}
			} else if err := s.writeCDATA(data); err != nil {
				return err
			}
			continue
		}
		if err := s.content(child, depth+1, preserve); err != nil {
			return err
		}
	}
	if indent {
		if err := s.write("\n" + strings.Repeat(s.opts.indent(), depth)); err != nil {
			return err
		}
	}
	return s.write("</" + name + ">")
}

// startTagContents emits the namespace declarations and attributes of
// an element, in child-list order.
func (s *serializer) startTagContents(n Node) error {
	html := s.opts.Mode == ModeHTML5
	for child := s.a.slots[n.index].firstChild; child != none; child = s.a.slots[child].nextSibling {
		switch v := s.a.slots[child].value.(type) {
		case *Namespace:
			if html {
				continue
			}
			uri := escapeAttr(s.a.NamespaceURI(v.Namespace))
			if v.Prefix == EmptyPrefix {
				if err := s.write(` xmlns="` + uri + `"`); err != nil {
					return err
				}
			} else if err := s.write(" xmlns:" + s.a.PrefixString(v.Prefix) + `="` + uri + `"`); err != nil {
				return err
			}
		case *Attribute:
			name, err := s.a.attributeFullName(n, v.Name)
			if err != nil {
				return err
			}
			value, err := s.normalize(v.Value)
			if err != nil {
				return err
			}
			if html && value == "" {
				if err := s.write(" " + name); err != nil {
					return err
				}
				continue
			}
			if err := s.write(" " + name + `="` + escapeAttr(value) + `"`); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// xmlSpace folds an element's xml:space attribute into the inherited
// preserve state.
func (s *serializer) xmlSpace(n Node, preserve bool) bool {
	name := s.a.AddName("space", XMLNamespace)
	if value, ok := s.a.AttributeValue(n, name); ok {
		switch value {
		case "preserve":
			return true
		case "default":
			return false
		}
	}
	return preserve
}

// indentChildren decides whether pretty printing may reformat the
// content of n: never inside preserved space, suppressed or
// CDATA-section elements, mixed content, or around HTML inline
// elements.
func (s *serializer) indentChildren(n Node, el *Element, preserve bool) bool {
	if !s.opts.Pretty || preserve {
		return false
	}
	if s.opts.SuppressIndentation[el.Name] || s.opts.CDATAElements[el.Name] {
		return false
	}
	if s.hasTextChild(n.index) {
		return false
	}
	if s.opts.Mode == ModeHTML5 {
		local, _ := s.a.Name(el.Name)
		if isInlineElement(local) {
			return false
		}
		for child := s.a.firstContentChild(n.index); child != none; child = s.a.nextContentSibling(child) {
			if cv, ok := s.a.slots[child].value.(*Element); ok {
				childLocal, _ := s.a.Name(cv.Name)
				if isInlineElement(childLocal) {
					return false
				}
			}
		}
	}
	return true
}

// hasTextChild reports whether index has a direct Text child. Mixed
// content keeps its original whitespace.
func (s *serializer) hasTextChild(index int32) bool {
	for child := s.a.firstContentChild(index); child != none; child = s.a.nextContentSibling(child) {
		if s.a.slots[child].value.Kind() == KindText {
			return true
		}
	}
	return false
}

// writeCDATA emits text as one or more CDATA sections; a literal "]]>"
// is split across two sections.
func (s *serializer) writeCDATA(data string) error {
	return s.write("<![CDATA[" + strings.ReplaceAll(data, "]]>", "]]]]><![CDATA[>") + "]]>")
}

// escapeText escapes character data. "<" and "&" always become
// entities. ">" becomes an entity too, unless unescapeGT is set, in
// which case only the ">" of a literal "]]>" is escaped.
func escapeText(data string, unescapeGT bool) string {
	var b strings.Builder
	for i := 0; i < len(data); i++ {
		switch c := data[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '&':
			b.WriteString("&amp;")
		case '>':
			if !unescapeGT || (i >= 2 && data[i-1] == ']' && data[i-2] == ']') {
				b.WriteString("&gt;")
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapeAttr escapes an attribute value for double-quoted output.
func escapeAttr(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
