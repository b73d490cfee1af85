package xot

import (
	"strings"
	"testing"
)

func TestShallowEqual(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<r><a k="1"><x/></a><a k="1"><y/></a><a k="2"/><b k="1"/></r>`)
	root := docElem(t, a, doc)
	children := a.Children(root).Collect()

	if !a.ShallowEqual(children[0], children[1]) {
		t.Error("same name and attributes but different children compare unequal")
	}
	if a.ShallowEqual(children[0], children[2]) {
		t.Error("different attribute values compare equal")
	}
	if a.ShallowEqual(children[0], children[3]) {
		t.Error("different names compare equal")
	}
	if !a.ShallowEqualIgnoreAttributes(children[0], children[2]) {
		t.Error("ignore-attributes still compares attributes")
	}
	if a.ShallowEqualIgnoreAttributes(children[0], children[3]) {
		t.Error("ignore-attributes ignores the element name")
	}
}

func TestShallowEqualTextAndComment(t *testing.T) {
	a := New()
	doc := mustParse(t, a, `<r>dup<!--c-->dup<!--d--></r>`)
	root := docElem(t, a, doc)
	children := a.Children(root).Collect()

	if !a.ShallowEqual(children[0], children[2]) {
		t.Error("equal text nodes compare unequal")
	}
	if a.ShallowEqual(children[1], children[3]) {
		t.Error("different comments compare equal")
	}
	if a.ShallowEqual(children[0], children[1]) {
		t.Error("text equals comment")
	}
}

func TestDeepEqual(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a k="1" l="2"><b>text</b></a>`)
	doc2 := mustParse(t, a, `<a l="2" k="1"><b>text</b></a>`)
	doc3 := mustParse(t, a, `<a k="1" l="2"><b>other</b></a>`)

	if !a.DeepEqual(docElem(t, a, doc1), docElem(t, a, doc2)) {
		t.Error("attribute order affects deep equality")
	}
	if a.DeepEqual(docElem(t, a, doc1), docElem(t, a, doc3)) {
		t.Error("different text compares deep-equal")
	}
}

func TestDeepEqualNamespaceDecls(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a xmlns:x="u"/>`)
	doc2 := mustParse(t, a, `<a xmlns:x="u"/>`)
	doc3 := mustParse(t, a, `<a xmlns:y="u"/>`)

	if !a.DeepEqual(docElem(t, a, doc1), docElem(t, a, doc2)) {
		t.Error("identical declarations compare unequal")
	}
	if a.DeepEqual(docElem(t, a, doc1), docElem(t, a, doc3)) {
		t.Error("different prefixes compare deep-equal")
	}
	// XPath semantics ignore namespace declarations entirely.
	if !a.DeepEqualXPath(docElem(t, a, doc1), docElem(t, a, doc3)) {
		t.Error("XPath deep-equal considers namespace declarations")
	}
}

func TestDeepEqualChildren(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a><x/><y/></a>`)
	doc2 := mustParse(t, a, `<b><x/><y/></b>`)

	if !a.DeepEqualChildren(docElem(t, a, doc1), docElem(t, a, doc2)) {
		t.Error("equal children under different parents compare unequal")
	}
}

func TestDeepEqualXPathIgnoresComments(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a>x<!--c-->y</a>`)
	doc2 := mustParse(t, a, `<a>xy</a>`)

	x, y := docElem(t, a, doc1), docElem(t, a, doc2)
	if !a.DeepEqualXPath(x, y) {
		t.Error("comments are not ignored or text runs not concatenated")
	}
	if a.DeepEqual(x, y) {
		t.Error("strict deep-equal ignores comments")
	}
}

func TestAdvancedDeepEqual(t *testing.T) {
	a := New()
	doc1 := mustParse(t, a, `<a><b>TEXT</b><!--one--></a>`)
	doc2 := mustParse(t, a, `<a><b>text</b><!--two--></a>`)
	x, y := docElem(t, a, doc1), docElem(t, a, doc2)

	if a.AdvancedDeepEqual(x, y, nil, nil) {
		t.Error("hookless comparison is not strict")
	}
	skipComments := func(n Node) bool { return a.Kind(n) != KindComment }
	foldCase := strings.EqualFold
	if !a.AdvancedDeepEqual(x, y, skipComments, foldCase) {
		t.Error("filter and text comparer are not applied")
	}
	// Filtering comments alone still leaves the case difference.
	if a.AdvancedDeepEqual(x, y, skipComments, nil) {
		t.Error("case-different text compared equal with the exact comparer")
	}
}
