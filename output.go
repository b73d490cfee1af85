package xot

// An Output is one token of the serialization stream. Consuming the
// token stream directly allows external serializers; Serialize renders
// the same stream as XML or HTML5 bytes.
type Output interface {
	outputToken()
}

// OutputDocumentStart opens a Document.
type OutputDocumentStart struct{}

// OutputDocumentEnd closes a Document.
type OutputDocumentEnd struct{}

// OutputStartTagOpen opens an element's start tag.
type OutputStartTagOpen struct {
	Element Node
	Name    NameID
}

// OutputNamespace is one namespace declaration inside a start tag.
type OutputNamespace struct {
	Prefix    PrefixID
	Namespace NamespaceID
}

// OutputAttribute is one attribute inside a start tag.
type OutputAttribute struct {
	Name  NameID
	Value string
}

// OutputStartTagClose closes an element's start tag. SelfClosing is set
// when the element has no content children.
type OutputStartTagClose struct {
	Element     Node
	SelfClosing bool
}

// OutputEndTag is an element's end tag. It is not produced for
// self-closing elements.
type OutputEndTag struct {
	Element Node
	Name    NameID
}

// OutputText is character data.
type OutputText struct {
	Data string
}

// OutputComment is a comment.
type OutputComment struct {
	Data string
}

// OutputProcessingInstruction is a processing instruction; Data is
// empty when the instruction has no value.
type OutputProcessingInstruction struct {
	Target NameID
	Data   string
}

func (OutputDocumentStart) outputToken()         {}
func (OutputDocumentEnd) outputToken()           {}
func (OutputStartTagOpen) outputToken()          {}
func (OutputNamespace) outputToken()             {}
func (OutputAttribute) outputToken()             {}
func (OutputStartTagClose) outputToken()         {}
func (OutputEndTag) outputToken()                {}
func (OutputText) outputToken()                  {}
func (OutputComment) outputToken()               {}
func (OutputProcessingInstruction) outputToken() {}

// Outputs is a lazy sequence of serialization tokens.
type Outputs struct {
	next func() (Output, bool)
}

// Next returns the next token.
func (it *Outputs) Next() (Output, bool) {
	return it.next()
}

// Outputs produces the serialization token stream for the subtree at
// root, lazily, in document order. For each element the namespace
// declarations come first, then the attributes, then the content.
func (a *Arena) Outputs(root Node) *Outputs {
	edges := a.EdgeWalk(root)
	var queue []Output
	return &Outputs{next: func() (Output, bool) {
		for len(queue) == 0 {
			edge, ok := edges.Next()
			if !ok {
				return nil, false
			}
			queue = a.edgeOutputs(queue, edge)
		}
		token := queue[0]
		queue = queue[1:]
		return token, true
	}}
}

func (a *Arena) edgeOutputs(queue []Output, edge Edge) []Output {
	index := edge.Node.index
	switch v := a.slots[index].value.(type) {
	case *Document:
		if edge.Kind == EdgeEnter {
			return append(queue, OutputDocumentStart{})
		}
		return append(queue, OutputDocumentEnd{})
	case *Element:
		selfClosing := a.firstContentChild(index) == none
		if edge.Kind == EdgeLeave {
			if selfClosing {
				return queue
			}
			return append(queue, OutputEndTag{Element: edge.Node, Name: v.Name})
		}
		queue = append(queue, OutputStartTagOpen{Element: edge.Node, Name: v.Name})
	regions:
		for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
			switch cv := a.slots[child].value.(type) {
			case *Namespace:
				queue = append(queue, OutputNamespace{Prefix: cv.Prefix, Namespace: cv.Namespace})
			case *Attribute:
				queue = append(queue, OutputAttribute{Name: cv.Name, Value: cv.Value})
			default:
				break regions
			}
		}
		return append(queue, OutputStartTagClose{Element: edge.Node, SelfClosing: selfClosing})
	case *Text:
		if edge.Kind == EdgeEnter {
			return append(queue, OutputText{Data: v.Data})
		}
	case *Comment:
		if edge.Kind == EdgeEnter {
			return append(queue, OutputComment{Data: v.Data})
		}
	case *ProcessingInstruction:
		if edge.Kind == EdgeEnter {
			return append(queue, OutputProcessingInstruction{Target: v.Target, Data: v.Data})
		}
	}
	return queue
}
