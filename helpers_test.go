package xot

import "testing"

func mustParse(t *testing.T, a *Arena, doc string) Node {
	t.Helper()
	root, err := a.ParseString(doc)
	if err != nil {
		t.Fatalf("parsing %s: %v", doc, err)
	}
	return root
}

func docElem(t *testing.T, a *Arena, doc Node) Node {
	t.Helper()
	el, err := a.DocumentElement(doc)
	if err != nil {
		t.Fatalf("document element: %v", err)
	}
	return el
}

func mustSerialize(t *testing.T, a *Arena, n Node, opts *SerializeOptions) string {
	t.Helper()
	out, err := a.SerializeString(n, opts)
	if err != nil {
		t.Fatalf("serializing: %v", err)
	}
	return out
}

func mustAppend(t *testing.T, a *Arena, parent, child Node) {
	t.Helper()
	if err := a.Append(parent, child); err != nil {
		t.Fatalf("append: %v", err)
	}
}
