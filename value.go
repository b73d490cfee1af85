package xot

import "fmt"

// A NodeKind discriminates the Value variants.
type NodeKind int

const (
	// KindInvalid is reported for handles that no longer refer to a
	// live node.
	KindInvalid NodeKind = iota - 1

	KindDocument
	KindElement
	KindText
	KindComment
	KindProcessingInstruction
	KindAttribute
	KindNamespace
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindProcessingInstruction:
		return "processing instruction"
	case KindAttribute:
		return "attribute"
	case KindNamespace:
		return "namespace"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// A Value is the payload of a node. Exactly one of the concrete types
// below is stored per node; use the Arena's typed accessors to obtain
// the concrete pointer and mutate it in place.
type Value interface {
	Kind() NodeKind
}

// Document is the payload of the synthetic root of a tree. It has at
// most one Element child (the document element) plus any number of
// Comment and ProcessingInstruction children; never Text or attributes.
type Document struct{}

// Element is an element node. Its attributes and namespace declarations
// are not stored here: they are Attribute and Namespace child nodes,
// ordered before any content children.
type Element struct {
	Name NameID
}

// Text is a text node.
type Text struct {
	Data string
}

// Comment is a comment node. The payload must not contain "--" or end
// with "-".
type Comment struct {
	Data string
}

// ProcessingInstruction is a processing instruction node. Data is empty
// when the instruction has no value.
type ProcessingInstruction struct {
	Target NameID
	Data   string
}

// Attribute is an attribute node. Its parent is always an Element.
type Attribute struct {
	Name  NameID
	Value string
}

// Namespace is a namespace declaration node binding Prefix to
// Namespace. Its parent is always an Element.
type Namespace struct {
	Prefix    PrefixID
	Namespace NamespaceID
}

func (*Document) Kind() NodeKind              { return KindDocument }
func (*Element) Kind() NodeKind               { return KindElement }
func (*Text) Kind() NodeKind                  { return KindText }
func (*Comment) Kind() NodeKind               { return KindComment }
func (*ProcessingInstruction) Kind() NodeKind { return KindProcessingInstruction }
func (*Attribute) Kind() NodeKind             { return KindAttribute }
func (*Namespace) Kind() NodeKind             { return KindNamespace }

// Value returns the payload of n. The returned value is a pointer into
// the Arena; mutating it mutates the tree.
func (a *Arena) Value(n Node) (Value, error) {
	s := a.slot(n)
	if s == nil {
		return nil, ErrStaleHandle
	}
	return s.value, nil
}

// Kind returns the kind of n, or KindInvalid for a stale handle.
func (a *Arena) Kind(n Node) NodeKind {
	s := a.slot(n)
	if s == nil {
		return KindInvalid
	}
	return s.value.Kind()
}

// Element returns the Element payload of n, or a WrongKindError.
func (a *Arena) Element(n Node) (*Element, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(*Element); ok {
		return e, nil
	}
	return nil, &WrongKindError{Want: KindElement, Got: v.Kind()}
}

// Text returns the Text payload of n, or a WrongKindError.
func (a *Arena) Text(n Node) (*Text, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if t, ok := v.(*Text); ok {
		return t, nil
	}
	return nil, &WrongKindError{Want: KindText, Got: v.Kind()}
}

// Comment returns the Comment payload of n, or a WrongKindError.
func (a *Arena) Comment(n Node) (*Comment, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if c, ok := v.(*Comment); ok {
		return c, nil
	}
	return nil, &WrongKindError{Want: KindComment, Got: v.Kind()}
}

// ProcessingInstruction returns the ProcessingInstruction payload of n,
// or a WrongKindError.
func (a *Arena) ProcessingInstruction(n Node) (*ProcessingInstruction, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if pi, ok := v.(*ProcessingInstruction); ok {
		return pi, nil
	}
	return nil, &WrongKindError{Want: KindProcessingInstruction, Got: v.Kind()}
}

// Attribute returns the Attribute payload of n, or a WrongKindError.
func (a *Arena) Attribute(n Node) (*Attribute, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if at, ok := v.(*Attribute); ok {
		return at, nil
	}
	return nil, &WrongKindError{Want: KindAttribute, Got: v.Kind()}
}

// Namespace returns the Namespace payload of n, or a WrongKindError.
func (a *Arena) Namespace(n Node) (*Namespace, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if ns, ok := v.(*Namespace); ok {
		return ns, nil
	}
	return nil, &WrongKindError{Want: KindNamespace, Got: v.Kind()}
}

// IsElement reports whether n is a live Element node.
func (a *Arena) IsElement(n Node) bool { return a.Kind(n) == KindElement }

// IsText reports whether n is a live Text node.
func (a *Arena) IsText(n Node) bool { return a.Kind(n) == KindText }

// IsDocument reports whether n is a live Document node.
func (a *Arena) IsDocument(n Node) bool { return a.Kind(n) == KindDocument }

// isContent reports whether v may appear in the content region of an
// element or under a document.
func isContent(v Value) bool {
	switch v.Kind() {
	case KindElement, KindText, KindComment, KindProcessingInstruction:
		return true
	}
	return false
}
