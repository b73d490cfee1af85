package xot

import "strings"

// Constructors. New nodes begin unattached; attach them with Append,
// Prepend, InsertBefore or InsertAfter.

// NewDocument creates an empty Document node.
func (a *Arena) NewDocument() Node {
	return a.alloc(&Document{})
}

// NewElement creates an unattached element with the given name.
func (a *Arena) NewElement(name NameID) Node {
	return a.alloc(&Element{Name: name})
}

// NewText creates an unattached text node.
func (a *Arena) NewText(data string) Node {
	return a.alloc(&Text{Data: data})
}

// checkComment enforces the XML comment grammar: no "--" inside, no
// trailing "-".
func checkComment(data string) error {
	if strings.Contains(data, "--") || strings.HasSuffix(data, "-") {
		return &InvalidCommentError{Comment: data}
	}
	return nil
}

// NewComment creates an unattached comment node.
func (a *Arena) NewComment(data string) (Node, error) {
	if err := checkComment(data); err != nil {
		return Node{}, err
	}
	return a.alloc(&Comment{Data: data}), nil
}

// checkPI enforces the processing instruction grammar for an interned
// target and value.
func (a *Arena) checkPI(target NameID, data string) error {
	local, ns := a.Name(target)
	if ns != NoNamespace {
		return &InvalidPIError{Reason: "target must not be in a namespace"}
	}
	if strings.EqualFold(local, "xml") {
		return &InvalidPIError{Reason: `target must not be "xml"`}
	}
	if strings.Contains(data, "?>") {
		return &InvalidPIError{Reason: `value must not contain "?>"`}
	}
	return nil
}

// NewProcessingInstruction creates an unattached processing instruction
// node. An empty data string means the instruction has no value.
func (a *Arena) NewProcessingInstruction(target NameID, data string) (Node, error) {
	if err := a.checkPI(target, data); err != nil {
		return Node{}, err
	}
	return a.alloc(&ProcessingInstruction{Target: target, Data: data}), nil
}

// checkAttach validates one attach of child under parent: live handles,
// content-only child, parent able to hold children, no cycles, and the
// one-document-element rule.
func (a *Arena) checkAttach(parent, child Node) error {
	ps := a.slot(parent)
	cs := a.slot(child)
	if ps == nil || cs == nil {
		return ErrStaleHandle
	}
	if !isContent(cs.value) {
		return &InvalidOperationError{Reason: cs.value.Kind().String() + " nodes cannot be inserted as content"}
	}
	switch ps.value.Kind() {
	case KindElement:
	case KindDocument:
		switch cs.value.Kind() {
		case KindText:
			return &InvalidOperationError{Reason: "text is not allowed under a document"}
		case KindElement:
			// The child may already be the document element; moving it
			// within the same document is fine.
			if cs.parent != parent.index && a.elementChildCount(parent.index) > 0 {
				return &InvalidOperationError{Reason: "document already has a document element"}
			}
		}
	default:
		return &InvalidOperationError{Reason: "cannot add children to a " + ps.value.Kind().String() + " node"}
	}
	if a.isAncestorOrSelf(child.index, parent.index) {
		return ErrWouldCycle
	}
	return nil
}

// mergeInto folds data into the Text node at index, at the front or
// the back, and frees the donor node.
func (a *Arena) mergeInto(index int32, front bool, data string, donor int32) {
	t := a.slots[index].value.(*Text)
	if front {
		t.Data = data + t.Data
	} else {
		t.Data += data
	}
	if donor != none {
		a.freeSlot(donor)
	}
}

func (a *Arena) textData(index int32) (string, bool) {
	if index == none {
		return "", false
	}
	if t, ok := a.slots[index].value.(*Text); ok {
		return t.Data, true
	}
	return "", false
}

// Append attaches child as the last content child of parent, detaching
// it from its current position first. When text consolidation is
// enabled and both child and the current last content child are Text
// nodes, their strings are merged and child's handle is freed.
func (a *Arena) Append(parent, child Node) error {
	if err := a.checkAttach(parent, child); err != nil {
		return err
	}
	a.unlink(child.index)
	if data, ok := a.textData(child.index); ok && a.consolidate {
		if last := a.lastContentChild(parent.index); last != none {
			if _, isText := a.textData(last); isText {
				a.mergeInto(last, false, data, child.index)
				return nil
			}
		}
	}
	a.appendRaw(parent.index, child.index)
	return nil
}

// AppendText appends text content to parent, merging with a trailing
// Text sibling when consolidation is enabled.
func (a *Arena) AppendText(parent Node, data string) error {
	return a.Append(parent, a.NewText(data))
}

// Prepend attaches child as the first content child of parent, after
// any namespace and attribute nodes.
func (a *Arena) Prepend(parent, child Node) error {
	if err := a.checkAttach(parent, child); err != nil {
		return err
	}
	a.unlink(child.index)
	first := a.firstContentChild(parent.index)
	if first == none {
		a.appendRaw(parent.index, child.index)
		return nil
	}
	if data, ok := a.textData(child.index); ok && a.consolidate {
		if _, isText := a.textData(first); isText {
			a.mergeInto(first, true, data, child.index)
			return nil
		}
	}
	a.insertBeforeRaw(first, child.index)
	return nil
}

// checkSibling validates ref for InsertBefore/InsertAfter: it must be
// an attached content node.
func (a *Arena) checkSibling(ref Node) (*slot, error) {
	rs := a.slot(ref)
	if rs == nil {
		return nil, ErrStaleHandle
	}
	if !isContent(rs.value) {
		return nil, &InvalidOperationError{Reason: "reference node is a " + rs.value.Kind().String() + " node"}
	}
	if rs.parent == none {
		return nil, &InvalidOperationError{Reason: "reference node has no parent"}
	}
	return rs, nil
}

// InsertBefore attaches node immediately before ref, detaching it from
// its current position first. Text consolidation considers both ref and
// the sibling before it.
func (a *Arena) InsertBefore(ref, node Node) error {
	rs, err := a.checkSibling(ref)
	if err != nil {
		return err
	}
	if ref == node {
		return nil
	}
	parent := a.handle(rs.parent)
	if err := a.checkAttach(parent, node); err != nil {
		return err
	}
	a.unlink(node.index)
	if data, ok := a.textData(node.index); ok && a.consolidate {
		if prev := a.prevContentSibling(ref.index); prev != none {
			if _, isText := a.textData(prev); isText {
				a.mergeInto(prev, false, data, node.index)
				return nil
			}
		}
		if _, isText := a.textData(ref.index); isText {
			a.mergeInto(ref.index, true, data, node.index)
			return nil
		}
	}
	a.insertBeforeRaw(ref.index, node.index)
	return nil
}

// InsertAfter attaches node immediately after ref, detaching it from
// its current position first. Text consolidation considers both ref and
// the sibling after it.
func (a *Arena) InsertAfter(ref, node Node) error {
	rs, err := a.checkSibling(ref)
	if err != nil {
		return err
	}
	if ref == node {
		return nil
	}
	parent := a.handle(rs.parent)
	if err := a.checkAttach(parent, node); err != nil {
		return err
	}
	a.unlink(node.index)
	if data, ok := a.textData(node.index); ok && a.consolidate {
		if _, isText := a.textData(ref.index); isText {
			a.mergeInto(ref.index, false, data, node.index)
			return nil
		}
		if next := a.nextContentSibling(ref.index); next != none {
			if _, isText := a.textData(next); isText {
				a.mergeInto(next, true, data, node.index)
				return nil
			}
		}
	}
	a.insertAfterRaw(ref.index, node.index)
	return nil
}

// namespaceRegionEnd returns the first child of el past the namespace
// region, or none.
func (a *Arena) namespaceRegionEnd(el int32) int32 {
	for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
		if a.slots[child].value.Kind() != KindNamespace {
			return child
		}
	}
	return none
}

// attributeRegionEnd returns the first content child of el, which ends
// the attribute region, or none.
func (a *Arena) attributeRegionEnd(el int32) int32 {
	for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
		k := a.slots[child].value.Kind()
		if k != KindNamespace && k != KindAttribute {
			return child
		}
	}
	return none
}

// AppendAttribute creates an attribute node on element and returns its
// handle. The node is placed at the end of the attribute region. A
// second attribute with the same name is rejected.
func (a *Arena) AppendAttribute(element Node, name NameID, value string) (Node, error) {
	if _, err := a.Element(element); err != nil {
		return Node{}, err
	}
	for child := a.slots[element.index].firstChild; child != none; child = a.slots[child].nextSibling {
		if attr, ok := a.slots[child].value.(*Attribute); ok && attr.Name == name {
			return Node{}, &DuplicateAttributeError{Name: a.LocalName(name)}
		}
	}
	attr := a.alloc(&Attribute{Name: name, Value: value})
	if end := a.attributeRegionEnd(element.index); end != none {
		a.insertBeforeRaw(end, attr.index)
	} else {
		a.appendRaw(element.index, attr.index)
	}
	return attr, nil
}

// AttributeValue looks up the value of the named attribute on element.
func (a *Arena) AttributeValue(element Node, name NameID) (string, bool) {
	if a.slot(element) == nil {
		return "", false
	}
	for child := a.slots[element.index].firstChild; child != none; child = a.slots[child].nextSibling {
		if attr, ok := a.slots[child].value.(*Attribute); ok && attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// AppendNamespaceDecl creates a namespace declaration node on element
// binding prefix to ns, and returns its handle. Redeclaring a prefix on
// the same element or rebinding the reserved xml prefix is rejected.
func (a *Arena) AppendNamespaceDecl(element Node, prefix PrefixID, ns NamespaceID) (Node, error) {
	if _, err := a.Element(element); err != nil {
		return Node{}, err
	}
	if prefix == XMLPrefix && ns != XMLNamespace {
		return Node{}, &InvalidOperationError{Reason: `the "xml" prefix cannot be rebound`}
	}
	for child := a.slots[element.index].firstChild; child != none; child = a.slots[child].nextSibling {
		decl, ok := a.slots[child].value.(*Namespace)
		if !ok {
			break
		}
		if decl.Prefix == prefix {
			return Node{}, &InvalidOperationError{Reason: "prefix " + a.PrefixString(prefix) + " is already declared on this element"}
		}
	}
	node := a.alloc(&Namespace{Prefix: prefix, Namespace: ns})
	if end := a.namespaceRegionEnd(element.index); end != none {
		a.insertBeforeRaw(end, node.index)
	} else {
		a.appendRaw(element.index, node.index)
	}
	return node, nil
}

// Remove detaches n and frees it together with its entire subtree.
// Every handle into the removed subtree becomes stale.
func (a *Arena) Remove(n Node) error {
	if a.slot(n) == nil {
		return ErrStaleHandle
	}
	a.unlink(n.index)
	a.freeSubtree(n.index)
	return nil
}

// Replace puts node in old's position and detaches old. The old node
// stays in the Arena as an unattached subtree. Replacing the document
// element is legal only when node is itself an element.
func (a *Arena) Replace(old, node Node) error {
	os, err := a.checkSibling(old)
	if err != nil {
		return err
	}
	ns := a.slot(node)
	if ns == nil {
		return ErrStaleHandle
	}
	if old == node {
		return nil
	}
	if !isContent(ns.value) {
		return &InvalidOperationError{Reason: ns.value.Kind().String() + " nodes cannot be inserted as content"}
	}
	// Validate everything before touching links, so a failed Replace
	// leaves the tree untouched.
	parent := os.parent
	if a.slots[parent].value.Kind() == KindDocument {
		switch ns.value.Kind() {
		case KindText:
			return &InvalidOperationError{Reason: "text is not allowed under a document"}
		case KindElement:
			for child := a.slots[parent].firstChild; child != none; child = a.slots[child].nextSibling {
				if a.slots[child].value.Kind() == KindElement &&
					child != old.index && child != node.index {
					return &InvalidOperationError{Reason: "document already has a document element"}
				}
			}
		default:
			if os.value.Kind() == KindElement {
				return &InvalidOperationError{Reason: "the document element can only be replaced by an element"}
			}
		}
	}
	if a.isAncestorOrSelf(node.index, parent) {
		return ErrWouldCycle
	}
	prev := os.prevSibling
	a.unlink(old.index)
	if prev != none {
		return a.insertAfterNode(a.handle(prev), node)
	}
	return a.Prepend(a.handle(parent), node)
}

// insertAfterNode is InsertAfter that tolerates a reference in the
// attribute or namespace region, which can occur when replacing the
// first content child.
func (a *Arena) insertAfterNode(ref, node Node) error {
	rs := a.slot(ref)
	if rs == nil {
		return ErrStaleHandle
	}
	if isContent(rs.value) {
		return a.InsertAfter(ref, node)
	}
	parent := a.handle(rs.parent)
	return a.Prepend(parent, node)
}

// ElementWrap creates a new element with the given name that takes
// node's position in the tree and adopts node as its only child. The
// wrapper is returned. Wrapping the document element is legal; the
// wrapper becomes the new document element.
func (a *Arena) ElementWrap(node Node, wrapperName NameID) (Node, error) {
	s := a.slot(node)
	if s == nil {
		return Node{}, ErrStaleHandle
	}
	if !isContent(s.value) {
		return Node{}, &InvalidOperationError{Reason: "cannot wrap a " + s.value.Kind().String() + " node"}
	}
	attached := s.parent != none
	// alloc may grow the slot array; s is dead past this point.
	wrapper := a.NewElement(wrapperName)
	if attached {
		a.insertBeforeRaw(node.index, wrapper.index)
		a.unlink(node.index)
	}
	a.appendRaw(wrapper.index, node.index)
	return wrapper, nil
}

// ElementUnwrap replaces element with its content children. Attribute
// and namespace nodes of the removed element are freed with it.
// Unwrapping the document element is illegal unless it has exactly one
// child which is itself an element; that child then becomes the new
// document element.
func (a *Arena) ElementUnwrap(element Node) error {
	if _, err := a.Element(element); err != nil {
		return err
	}
	s := &a.slots[element.index]
	if s.parent == none {
		return &InvalidOperationError{Reason: "cannot unwrap an unattached element"}
	}
	if a.slots[s.parent].value.Kind() == KindDocument {
		only := a.firstContentChild(element.index)
		if only == none || a.nextContentSibling(only) != none ||
			a.slots[only].value.Kind() != KindElement {
			return &InvalidOperationError{Reason: "cannot unwrap the document element unless it has a single element child"}
		}
		parent := s.parent
		prev := s.prevSibling
		a.unlink(only)
		a.unlink(element.index)
		if prev != none {
			a.insertAfterRaw(prev, only)
		} else {
			a.prependRaw(parent, only)
		}
		a.freeSubtree(element.index)
		return nil
	}
	for {
		child := a.firstContentChild(element.index)
		if child == none {
			break
		}
		a.unlink(child)
		if err := a.InsertBefore(element, a.handle(child)); err != nil {
			return err
		}
	}
	prev := a.prevContentSibling(element.index)
	next := a.nextContentSibling(element.index)
	a.unlink(element.index)
	a.freeSubtree(element.index)
	// Removing the element can leave two Text nodes adjacent.
	if a.consolidate && prev != none && next != none {
		if data, ok := a.textData(next); ok {
			if _, isText := a.textData(prev); isText {
				a.unlink(next)
				a.mergeInto(prev, false, data, next)
			}
		}
	}
	return nil
}

// cloneValue deep-copies a payload.
func cloneValue(v Value) Value {
	switch v := v.(type) {
	case *Document:
		return &Document{}
	case *Element:
		c := *v
		return &c
	case *Text:
		c := *v
		return &c
	case *Comment:
		c := *v
		return &c
	case *ProcessingInstruction:
		c := *v
		return &c
	case *Attribute:
		c := *v
		return &c
	case *Namespace:
		c := *v
		return &c
	}
	return nil
}

// Clone deep-copies the subtree rooted at n within the same Arena. The
// copy is unattached and shares no handles with the original. Adjacent
// Text children are merged during the copy when consolidation is
// enabled, even if the source predates enabling it.
func (a *Arena) Clone(n Node) (Node, error) {
	s := a.slot(n)
	if s == nil {
		return Node{}, ErrStaleHandle
	}
	return a.cloneSubtree(n.index), nil
}

func (a *Arena) cloneSubtree(index int32) Node {
	copied := a.alloc(cloneValue(a.slots[index].value))
	for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
		if data, ok := a.textData(child); ok && a.consolidate {
			last := a.slots[copied.index].lastChild
			if last != none {
				if _, isText := a.textData(last); isText {
					a.mergeInto(last, false, data, none)
					continue
				}
			}
		}
		childCopy := a.cloneSubtree(child)
		a.appendRaw(copied.index, childCopy.index)
	}
	return copied
}

// CloneWithPrefixes clones the subtree rooted at n and, when n is an
// element, adds namespace declarations on the clone's root for every
// namespace used within the subtree whose declaration would be left
// behind at n's original location. For other node kinds it behaves like
// Clone.
func (a *Arena) CloneWithPrefixes(n Node) (Node, error) {
	clone, err := a.Clone(n)
	if err != nil {
		return Node{}, err
	}
	if a.Kind(clone) != KindElement {
		return clone, nil
	}
	for _, ns := range a.undeclaredNamespaces(clone) {
		prefix, ok := a.PrefixForNamespace(n, ns)
		if !ok {
			continue
		}
		if _, err := a.AppendNamespaceDecl(clone, prefix, ns); err != nil {
			return Node{}, err
		}
	}
	return clone, nil
}

// TextContent returns the text of an element that holds character data
// only: the data of its single Text child, or "" for an empty element.
// Mixed or element content is an error.
func (a *Arena) TextContent(element Node) (string, error) {
	if _, err := a.Element(element); err != nil {
		return "", err
	}
	child := a.firstContentChild(element.index)
	if child == none {
		return "", nil
	}
	if a.nextContentSibling(child) != none {
		return "", &InvalidOperationError{Reason: "element does not have simple text content"}
	}
	data, ok := a.textData(child)
	if !ok {
		return "", &InvalidOperationError{Reason: "element does not have simple text content"}
	}
	return data, nil
}

// SetTextContent removes the content children of element and replaces
// them with a single Text child carrying data. An empty string leaves
// the element without content children.
func (a *Arena) SetTextContent(element Node, data string) error {
	if _, err := a.Element(element); err != nil {
		return err
	}
	for {
		child := a.firstContentChild(element.index)
		if child == none {
			break
		}
		a.unlink(child)
		a.freeSubtree(child)
	}
	if data == "" {
		return nil
	}
	a.appendRaw(element.index, a.NewText(data).index)
	return nil
}
