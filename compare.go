package xot

// attributeMap collects an element's attributes keyed by name id.
func (a *Arena) attributeMap(el int32) map[NameID]string {
	attrs := make(map[NameID]string)
	for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
		switch v := a.slots[child].value.(type) {
		case *Namespace:
			continue
		case *Attribute:
			attrs[v.Name] = v.Value
		default:
			return attrs
		}
	}
	return attrs
}

// namespaceMap collects an element's namespace declarations keyed by
// prefix id.
func (a *Arena) namespaceMap(el int32) map[PrefixID]NamespaceID {
	decls := make(map[PrefixID]NamespaceID)
	for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
		decl, ok := a.slots[child].value.(*Namespace)
		if !ok {
			return decls
		}
		decls[decl.Prefix] = decl.Namespace
	}
	return decls
}

func equalAttributeMaps(x, y map[NameID]string) bool {
	if len(x) != len(y) {
		return false
	}
	for name, value := range x {
		if other, ok := y[name]; !ok || other != value {
			return false
		}
	}
	return true
}

func equalNamespaceMaps(x, y map[PrefixID]NamespaceID) bool {
	if len(x) != len(y) {
		return false
	}
	for prefix, ns := range x {
		if other, ok := y[prefix]; !ok || other != ns {
			return false
		}
	}
	return true
}

// shallowEqual compares payloads without recursing. For elements it
// also compares the attribute and namespace declaration sets unless
// ignoreAttributes is set.
func (a *Arena) shallowEqual(x, y int32, ignoreAttributes bool) bool {
	vx, vy := a.slots[x].value, a.slots[y].value
	if vx.Kind() != vy.Kind() {
		return false
	}
	switch vx := vx.(type) {
	case *Document:
		return true
	case *Element:
		if vx.Name != vy.(*Element).Name {
			return false
		}
		if ignoreAttributes {
			return true
		}
		return equalAttributeMaps(a.attributeMap(x), a.attributeMap(y)) &&
			equalNamespaceMaps(a.namespaceMap(x), a.namespaceMap(y))
	case *Text:
		return vx.Data == vy.(*Text).Data
	case *Comment:
		return vx.Data == vy.(*Comment).Data
	case *ProcessingInstruction:
		other := vy.(*ProcessingInstruction)
		return vx.Target == other.Target && vx.Data == other.Data
	case *Attribute:
		other := vy.(*Attribute)
		return vx.Name == other.Name && vx.Value == other.Value
	case *Namespace:
		other := vy.(*Namespace)
		return vx.Prefix == other.Prefix && vx.Namespace == other.Namespace
	}
	return false
}

// ShallowEqual reports whether x and y carry equal payloads: the same
// kind, and kind-wise the same name, text, target or value. Elements
// also compare their attribute and namespace declaration sets; child
// content is not compared.
func (a *Arena) ShallowEqual(x, y Node) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	return a.shallowEqual(x.index, y.index, false)
}

// ShallowEqualIgnoreAttributes is ShallowEqual except that two elements
// compare by name only.
func (a *Arena) ShallowEqualIgnoreAttributes(x, y Node) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	return a.shallowEqual(x.index, y.index, true)
}

func (a *Arena) deepEqual(x, y int32) bool {
	if !a.shallowEqual(x, y, false) {
		return false
	}
	return a.deepEqualChildren(x, y)
}

func (a *Arena) deepEqualChildren(x, y int32) bool {
	cx, cy := a.firstContentChild(x), a.firstContentChild(y)
	for cx != none && cy != none {
		if !a.deepEqual(cx, cy) {
			return false
		}
		cx, cy = a.nextContentSibling(cx), a.nextContentSibling(cy)
	}
	return cx == none && cy == none
}

// DeepEqual reports whether the subtrees at x and y are structurally
// equal: equal payloads, equal attribute and namespace declaration
// sets, and pairwise deep-equal content children.
func (a *Arena) DeepEqual(x, y Node) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	return a.deepEqual(x.index, y.index)
}

// DeepEqualChildren compares the content children of x and y pairwise,
// ignoring x and y themselves.
func (a *Arena) DeepEqualChildren(x, y Node) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	return a.deepEqualChildren(x.index, y.index)
}

// xpathChildren returns the children of index that are significant to
// XPath deep-equal: comments are dropped and runs of adjacent text are
// concatenated into single entries.
type xpathChild struct {
	node   int32 // none for a concatenated text run
	isText bool
	text   string
}

func (a *Arena) xpathChildren(index int32) []xpathChild {
	var children []xpathChild
	for child := a.firstContentChild(index); child != none; child = a.nextContentSibling(child) {
		switch v := a.slots[child].value.(type) {
		case *Comment:
			continue
		case *Text:
			if n := len(children); n > 0 && children[n-1].isText {
				children[n-1].text += v.Data
				continue
			}
			children = append(children, xpathChild{node: child, isText: true, text: v.Data})
		default:
			children = append(children, xpathChild{node: child})
		}
	}
	return children
}

func (a *Arena) deepEqualXPath(x, y int32) bool {
	vx, vy := a.slots[x].value, a.slots[y].value
	if vx.Kind() != vy.Kind() {
		return false
	}
	switch vx := vx.(type) {
	case *Element:
		if vx.Name != vy.(*Element).Name {
			return false
		}
		if !equalAttributeMaps(a.attributeMap(x), a.attributeMap(y)) {
			return false
		}
	case *Text:
		// Handled by the caller via concatenated runs; direct
		// comparison covers top-level calls.
		return vx.Data == vy.(*Text).Data
	case *ProcessingInstruction:
		other := vy.(*ProcessingInstruction)
		if vx.Target != other.Target || vx.Data != other.Data {
			return false
		}
	case *Attribute:
		other := vy.(*Attribute)
		return vx.Name == other.Name && vx.Value == other.Value
	}
	cx, cy := a.xpathChildren(x), a.xpathChildren(y)
	if len(cx) != len(cy) {
		return false
	}
	for i := range cx {
		if cx[i].isText != cy[i].isText {
			return false
		}
		if cx[i].isText {
			if cx[i].text != cy[i].text {
				return false
			}
			continue
		}
		if !a.deepEqualXPath(cx[i].node, cy[i].node) {
			return false
		}
	}
	return true
}

// DeepEqualXPath compares x and y with XPath deep-equal semantics:
// element names and attribute values are compared (attribute order is
// irrelevant), adjacent text is compared as one concatenated string,
// and comments and namespace declarations are ignored.
func (a *Arena) DeepEqualXPath(x, y Node) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	return a.deepEqualXPath(x.index, y.index)
}

// A NodeFilter selects the nodes AdvancedDeepEqual compares; nodes it
// rejects are skipped on both sides.
type NodeFilter func(Node) bool

// A TextComparer compares two string values, allowing comparisons such
// as case folding or whitespace normalization.
type TextComparer func(x, y string) bool

// AdvancedDeepEqual is DeepEqual with two hooks: filter decides which
// child nodes take part in the comparison, and textCmp compares text
// data and attribute values. Nil hooks mean no filtering and exact
// string comparison.
func (a *Arena) AdvancedDeepEqual(x, y Node, filter NodeFilter, textCmp TextComparer) bool {
	if a.slot(x) == nil || a.slot(y) == nil {
		return false
	}
	if filter == nil {
		filter = func(Node) bool { return true }
	}
	if textCmp == nil {
		textCmp = func(s, t string) bool { return s == t }
	}
	return a.advancedDeepEqual(x.index, y.index, filter, textCmp)
}

func (a *Arena) advancedFilteredAttrs(el int32, filter NodeFilter) map[NameID]string {
	attrs := make(map[NameID]string)
	for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
		switch v := a.slots[child].value.(type) {
		case *Namespace:
			continue
		case *Attribute:
			if filter(a.handle(child)) {
				attrs[v.Name] = v.Value
			}
		default:
			return attrs
		}
	}
	return attrs
}

func (a *Arena) advancedDeepEqual(x, y int32, filter NodeFilter, textCmp TextComparer) bool {
	vx, vy := a.slots[x].value, a.slots[y].value
	if vx.Kind() != vy.Kind() {
		return false
	}
	switch vx := vx.(type) {
	case *Element:
		if vx.Name != vy.(*Element).Name {
			return false
		}
		ax, ay := a.advancedFilteredAttrs(x, filter), a.advancedFilteredAttrs(y, filter)
		if len(ax) != len(ay) {
			return false
		}
		for name, value := range ax {
			other, ok := ay[name]
			if !ok || !textCmp(value, other) {
				return false
			}
		}
	case *Text:
		return textCmp(vx.Data, vy.(*Text).Data)
	case *Comment:
		return vx.Data == vy.(*Comment).Data
	case *ProcessingInstruction:
		other := vy.(*ProcessingInstruction)
		return vx.Target == other.Target && vx.Data == other.Data
	case *Attribute:
		other := vy.(*Attribute)
		return vx.Name == other.Name && textCmp(vx.Value, other.Value)
	case *Namespace:
		other := vy.(*Namespace)
		return vx.Prefix == other.Prefix && vx.Namespace == other.Namespace
	}
	cx := a.filteredChildren(x, filter)
	cy := a.filteredChildren(y, filter)
	if len(cx) != len(cy) {
		return false
	}
	for i := range cx {
		if !a.advancedDeepEqual(cx[i], cy[i], filter, textCmp) {
			return false
		}
	}
	return true
}

func (a *Arena) filteredChildren(index int32, filter NodeFilter) []int32 {
	var children []int32
	for child := a.firstContentChild(index); child != none; child = a.nextContentSibling(child) {
		if filter(a.handle(child)) {
			children = append(children, child)
		}
	}
	return children
}
