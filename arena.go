package xot

// Navigation. Every method returns the related node and true, or the
// zero Node and false when the relative does not exist. A stale handle
// reports no relatives; use Validate to distinguish a removed node from
// an unattached one.

// Parent returns the parent of n.
func (a *Arena) Parent(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil || s.parent == none {
		return Node{}, false
	}
	return a.handle(s.parent), true
}

// FirstChild returns the first child of n. For elements this includes
// the namespace and attribute regions; use Children for content nodes
// only.
func (a *Arena) FirstChild(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil || s.firstChild == none {
		return Node{}, false
	}
	return a.handle(s.firstChild), true
}

// LastChild returns the last child of n.
func (a *Arena) LastChild(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil || s.lastChild == none {
		return Node{}, false
	}
	return a.handle(s.lastChild), true
}

// PreviousSibling returns the sibling before n.
func (a *Arena) PreviousSibling(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil || s.prevSibling == none {
		return Node{}, false
	}
	return a.handle(s.prevSibling), true
}

// NextSibling returns the sibling after n.
func (a *Arena) NextSibling(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil || s.nextSibling == none {
		return Node{}, false
	}
	return a.handle(s.nextSibling), true
}

// DocumentOf walks up from n and returns the owning Document node.
// It returns false for nodes in an unattached subtree.
func (a *Arena) DocumentOf(n Node) (Node, bool) {
	s := a.slot(n)
	if s == nil {
		return Node{}, false
	}
	index := n.index
	for a.slots[index].parent != none {
		index = a.slots[index].parent
	}
	if a.slots[index].value.Kind() != KindDocument {
		return Node{}, false
	}
	return a.handle(index), true
}

// Root returns the root of the subtree containing n, which is either a
// Document or an unattached subtree root.
func (a *Arena) Root(n Node) (Node, bool) {
	if a.slot(n) == nil {
		return Node{}, false
	}
	index := n.index
	for a.slots[index].parent != none {
		index = a.slots[index].parent
	}
	return a.handle(index), true
}

// DocumentElement returns the single Element child of a Document node.
func (a *Arena) DocumentElement(doc Node) (Node, error) {
	v, err := a.Value(doc)
	if err != nil {
		return Node{}, err
	}
	if v.Kind() != KindDocument {
		return Node{}, &WrongKindError{Want: KindDocument, Got: v.Kind()}
	}
	for child := a.slots[doc.index].firstChild; child != none; child = a.slots[child].nextSibling {
		if a.slots[child].value.Kind() == KindElement {
			return a.handle(child), nil
		}
	}
	return Node{}, &InvalidOperationError{Reason: "document has no document element"}
}

// isAncestorOrSelf reports whether anc is target or one of target's
// ancestors.
func (a *Arena) isAncestorOrSelf(anc, target int32) bool {
	for index := target; index != none; index = a.slots[index].parent {
		if index == anc {
			return true
		}
	}
	return false
}

// Raw link surgery. These helpers keep the sibling list and the
// first/last child pointers consistent; all editing funnels through
// them.

// unlink removes index from its parent's child list. The subtree below
// index stays intact.
func (a *Arena) unlink(index int32) {
	s := &a.slots[index]
	if s.parent != none {
		p := &a.slots[s.parent]
		if p.firstChild == index {
			p.firstChild = s.nextSibling
		}
		if p.lastChild == index {
			p.lastChild = s.prevSibling
		}
	}
	if s.prevSibling != none {
		a.slots[s.prevSibling].nextSibling = s.nextSibling
	}
	if s.nextSibling != none {
		a.slots[s.nextSibling].prevSibling = s.prevSibling
	}
	s.parent, s.prevSibling, s.nextSibling = none, none, none
}

// appendRaw links child as the last child of parent. The child must be
// detached.
func (a *Arena) appendRaw(parent, child int32) {
	p := &a.slots[parent]
	c := &a.slots[child]
	c.parent = parent
	c.prevSibling = p.lastChild
	c.nextSibling = none
	if p.lastChild != none {
		a.slots[p.lastChild].nextSibling = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
}

// prependRaw links child as the first child of parent. The child must
// be detached.
func (a *Arena) prependRaw(parent, child int32) {
	p := &a.slots[parent]
	c := &a.slots[child]
	c.parent = parent
	c.nextSibling = p.firstChild
	c.prevSibling = none
	if p.firstChild != none {
		a.slots[p.firstChild].prevSibling = child
	} else {
		p.lastChild = child
	}
	p.firstChild = child
}

// insertBeforeRaw links child immediately before ref. The child must be
// detached; ref must be attached.
func (a *Arena) insertBeforeRaw(ref, child int32) {
	r := &a.slots[ref]
	c := &a.slots[child]
	c.parent = r.parent
	c.prevSibling = r.prevSibling
	c.nextSibling = ref
	if r.prevSibling != none {
		a.slots[r.prevSibling].nextSibling = child
	} else if r.parent != none {
		a.slots[r.parent].firstChild = child
	}
	r.prevSibling = child
}

// insertAfterRaw links child immediately after ref. The child must be
// detached; ref must be attached.
func (a *Arena) insertAfterRaw(ref, child int32) {
	r := &a.slots[ref]
	c := &a.slots[child]
	c.parent = r.parent
	c.nextSibling = r.nextSibling
	c.prevSibling = ref
	if r.nextSibling != none {
		a.slots[r.nextSibling].prevSibling = child
	} else if r.parent != none {
		a.slots[r.parent].lastChild = child
	}
	r.nextSibling = child
}

// Detach unlinks n from its parent. The node and its subtree stay in
// the Arena as a valid unattached tree; use Remove to free it.
func (a *Arena) Detach(n Node) error {
	if a.slot(n) == nil {
		return ErrStaleHandle
	}
	a.unlink(n.index)
	return nil
}

// AnyAppend links child as the last child of parent without enforcing
// the editor's placement rules. It is the escape hatch used to attach
// Attribute and Namespace nodes at a specific position; callers are
// responsible for keeping the namespace/attribute/content ordering
// intact. Cycle prevention still applies.
func (a *Arena) AnyAppend(parent, child Node) error {
	if a.slot(parent) == nil || a.slot(child) == nil {
		return ErrStaleHandle
	}
	if a.isAncestorOrSelf(child.index, parent.index) {
		return ErrWouldCycle
	}
	a.unlink(child.index)
	a.appendRaw(parent.index, child.index)
	return nil
}

// firstContentChild returns the first child of index that is a content
// node, skipping the namespace and attribute regions.
func (a *Arena) firstContentChild(index int32) int32 {
	for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
		if isContent(a.slots[child].value) {
			return child
		}
	}
	return none
}

// nextContentSibling returns the next sibling of index that is a
// content node.
func (a *Arena) nextContentSibling(index int32) int32 {
	for sib := a.slots[index].nextSibling; sib != none; sib = a.slots[sib].nextSibling {
		if isContent(a.slots[sib].value) {
			return sib
		}
	}
	return none
}

// prevContentSibling returns the previous sibling of index that is a
// content node.
func (a *Arena) prevContentSibling(index int32) int32 {
	for sib := a.slots[index].prevSibling; sib != none; sib = a.slots[sib].prevSibling {
		if isContent(a.slots[sib].value) {
			return sib
		}
	}
	return none
}

// lastContentChild returns the last content child of index.
func (a *Arena) lastContentChild(index int32) int32 {
	child := a.slots[index].lastChild
	if child == none || isContent(a.slots[child].value) {
		return child
	}
	return a.prevContentSibling(child)
}

// elementChildCount returns the number of Element children of index.
func (a *Arena) elementChildCount(index int32) int {
	count := 0
	for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
		if a.slots[child].value.Kind() == KindElement {
			count++
		}
	}
	return count
}
