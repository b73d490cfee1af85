package xot

import (
	"strconv"

	"github.com/faassen/xot/internal/ordered"
)

// A PrefixDecl is one prefix binding, as reported by the resolver.
type PrefixDecl struct {
	Prefix    PrefixID
	Namespace NamespaceID
}

// scopeElement returns the element whose scope governs n: n itself for
// elements, otherwise the nearest ancestor element.
func (a *Arena) scopeElement(n Node) (int32, bool) {
	s := a.slot(n)
	if s == nil {
		return none, false
	}
	for index := n.index; index != none; index = a.slots[index].parent {
		if a.slots[index].value.Kind() == KindElement {
			return index, true
		}
	}
	return none, false
}

// inScope computes the prefix bindings visible at n. Walking from the
// nearest element outward and keeping the first binding per prefix
// makes nearer declarations override farther ones, while preserving
// declaration order within each element. The reserved xml prefix and
// the implicit empty default are always present.
func (a *Arena) inScope(n Node) *ordered.Map[PrefixID, NamespaceID] {
	scope := ordered.New[PrefixID, NamespaceID]()
	el, ok := a.scopeElement(n)
	for ok {
		for child := a.slots[el].firstChild; child != none; child = a.slots[child].nextSibling {
			decl, isNS := a.slots[child].value.(*Namespace)
			if !isNS {
				break
			}
			scope.SetIfAbsent(decl.Prefix, decl.Namespace)
		}
		el = a.slots[el].parent
		ok = el != none && a.slots[el].value.Kind() == KindElement
	}
	scope.SetIfAbsent(XMLPrefix, XMLNamespace)
	scope.SetIfAbsent(EmptyPrefix, NoNamespace)
	return scope
}

// NamespaceForPrefix resolves prefix at n, honoring nearer declarations
// over farther ones. The xml prefix always resolves.
func (a *Arena) NamespaceForPrefix(n Node, prefix PrefixID) (NamespaceID, bool) {
	if a.slot(n) == nil {
		return NoNamespace, false
	}
	return a.inScope(n).Get(prefix)
}

// PrefixForNamespace returns a prefix in scope at n that binds ns. When
// several do, the nearest wins; declaration order breaks ties.
func (a *Arena) PrefixForNamespace(n Node, ns NamespaceID) (PrefixID, bool) {
	if a.slot(n) == nil {
		return EmptyPrefix, false
	}
	var found PrefixID
	ok := false
	a.inScope(n).Range(func(prefix PrefixID, bound NamespaceID) bool {
		if bound == ns {
			found, ok = prefix, true
			return false
		}
		return true
	})
	return found, ok
}

// InheritedPrefixes returns the bindings in scope at n that are not
// declared on n itself, nearest first.
func (a *Arena) InheritedPrefixes(n Node) []PrefixDecl {
	if a.slot(n) == nil {
		return nil
	}
	local := make(map[PrefixID]bool)
	if a.Kind(n) == KindElement {
		for child := a.slots[n.index].firstChild; child != none; child = a.slots[child].nextSibling {
			decl, isNS := a.slots[child].value.(*Namespace)
			if !isNS {
				break
			}
			local[decl.Prefix] = true
		}
	}
	var decls []PrefixDecl
	a.inScope(n).Range(func(prefix PrefixID, ns NamespaceID) bool {
		if !local[prefix] {
			decls = append(decls, PrefixDecl{Prefix: prefix, Namespace: ns})
		}
		return true
	})
	return decls
}

// namespacesUsed calls visit, in document order, for every namespace
// used by an element or attribute name within the subtree at root.
// NoNamespace and the reserved xml namespace are skipped.
func (a *Arena) namespacesUsed(root int32, visit func(node int32, ns NamespaceID)) {
	use := func(node int32, ns NamespaceID) {
		if ns != NoNamespace && ns != XMLNamespace {
			visit(node, ns)
		}
	}
	var walk func(index int32)
	walk = func(index int32) {
		switch v := a.slots[index].value.(type) {
		case *Element:
			use(index, a.NameNamespace(v.Name))
		case *Attribute:
			use(index, a.NameNamespace(v.Name))
		}
		for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
			walk(child)
		}
	}
	walk(root)
}

// UnresolvedNamespaces returns the namespaces used by element and
// attribute names within the subtree at n that have no in-scope prefix
// at their point of use, deduplicated in encounter order.
func (a *Arena) UnresolvedNamespaces(n Node) []NamespaceID {
	if a.slot(n) == nil {
		return nil
	}
	seen := make(map[NamespaceID]bool)
	var unresolved []NamespaceID
	a.namespacesUsed(n.index, func(node int32, ns NamespaceID) {
		if seen[ns] {
			return
		}
		if _, ok := a.PrefixForNamespace(a.handle(node), ns); !ok {
			seen[ns] = true
			unresolved = append(unresolved, ns)
		}
	})
	return unresolved
}

// undeclaredNamespaces returns the namespaces used within the subtree
// at root that no Namespace node within the subtree declares. These are
// the bindings a detached copy of the subtree loses.
func (a *Arena) undeclaredNamespaces(root Node) []NamespaceID {
	declared := make(map[NamespaceID]bool)
	var collect func(index int32)
	collect = func(index int32) {
		for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
			if decl, ok := a.slots[child].value.(*Namespace); ok {
				declared[decl.Namespace] = true
			}
			collect(child)
		}
	}
	collect(root.index)
	seen := make(map[NamespaceID]bool)
	var missing []NamespaceID
	a.namespacesUsed(root.index, func(_ int32, ns NamespaceID) {
		if !declared[ns] && !seen[ns] {
			seen[ns] = true
			missing = append(missing, ns)
		}
	})
	return missing
}

// CreateMissingPrefixes adds a namespace declaration on the subtree
// root for every unresolved namespace within it, using synthetic
// prefixes n0, n1, … that avoid collision with in-scope prefixes. When
// n is a Document the declarations go on the document element.
func (a *Arena) CreateMissingPrefixes(n Node) error {
	if a.slot(n) == nil {
		return ErrStaleHandle
	}
	target := n
	if a.Kind(n) == KindDocument {
		el, err := a.DocumentElement(n)
		if err != nil {
			return err
		}
		target = el
	}
	unresolved := a.UnresolvedNamespaces(target)
	if len(unresolved) == 0 {
		return nil
	}
	if _, err := a.Element(target); err != nil {
		return err
	}
	counter := 0
	for _, ns := range unresolved {
		var prefix PrefixID
		for {
			candidate := "n" + strconv.Itoa(counter)
			counter++
			prefix = a.AddPrefix(candidate)
			if _, inUse := a.NamespaceForPrefix(target, prefix); !inUse {
				break
			}
		}
		if _, err := a.AppendNamespaceDecl(target, prefix, ns); err != nil {
			return err
		}
	}
	return nil
}

// DeduplicateNamespaces removes namespace declarations within the
// subtree at n whose prefix/namespace pair is already in scope from an
// ancestor. A default-namespace declaration is removable like any
// other: attributes never resolve through the default namespace, so an
// identical ancestor binding keeps every name resolvable.
func (a *Arena) DeduplicateNamespaces(n Node) {
	if a.slot(n) == nil {
		return
	}
	var walk func(index int32)
	walk = func(index int32) {
		if a.slots[index].value.Kind() == KindElement {
			parent := a.slots[index].parent
			child := a.slots[index].firstChild
			for child != none {
				next := a.slots[child].nextSibling
				decl, isNS := a.slots[child].value.(*Namespace)
				if !isNS {
					break
				}
				if parent != none {
					if bound, ok := a.NamespaceForPrefix(a.handle(parent), decl.Prefix); ok && bound == decl.Namespace {
						a.unlink(child)
						a.freeSlot(child)
					}
				}
				child = next
			}
		}
		for child := a.slots[index].firstChild; child != none; child = a.slots[child].nextSibling {
			walk(child)
		}
	}
	walk(n.index)
}

// FullName renders an interned name as it would appear in a start tag
// at n's position: prefix:local, or the bare local name when the
// namespace is bound to the default or empty prefix. It fails with a
// MissingPrefixError when the namespace has no in-scope prefix.
func (a *Arena) FullName(n Node, name NameID) (string, error) {
	local, ns := a.Name(name)
	if ns == NoNamespace {
		return local, nil
	}
	prefix, ok := a.PrefixForNamespace(n, ns)
	if !ok {
		return "", &MissingPrefixError{Namespace: a.NamespaceURI(ns)}
	}
	if prefix == EmptyPrefix {
		return local, nil
	}
	return a.PrefixString(prefix) + ":" + local, nil
}

// attributeFullName is FullName for attribute names: an attribute
// without a prefix is in no namespace, so the default prefix never
// applies and a namespaced attribute requires a real prefix.
func (a *Arena) attributeFullName(n Node, name NameID) (string, error) {
	local, ns := a.Name(name)
	if ns == NoNamespace {
		return local, nil
	}
	var found PrefixID
	ok := false
	a.inScope(n).Range(func(prefix PrefixID, bound NamespaceID) bool {
		if bound == ns && prefix != EmptyPrefix {
			found, ok = prefix, true
			return false
		}
		return true
	})
	if !ok {
		return "", &MissingPrefixError{Namespace: a.NamespaceURI(ns)}
	}
	return a.PrefixString(found) + ":" + local, nil
}
