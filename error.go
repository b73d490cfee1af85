package xot

import (
	"errors"
	"fmt"
)

var (
	// ErrWouldCycle is returned by attach operations that would make a
	// node its own ancestor.
	ErrWouldCycle = errors.New("xot: move would create a cycle")

	// ErrStaleHandle is returned when a Node handle refers to a node
	// that has been removed.
	ErrStaleHandle = errors.New("xot: node has been removed")
)

// A WrongKindError is returned by a typed accessor or editing operation
// applied to a node of the wrong kind.
type WrongKindError struct {
	Want NodeKind
	Got  NodeKind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("xot: node is a %s, not a %s", e.Got, e.Want)
}

// An UnknownPrefixError is returned when a qualified name uses a
// prefix with no in-scope declaration.
type UnknownPrefixError struct {
	Prefix string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("xot: unknown namespace prefix %q", e.Prefix)
}

// A MissingPrefixError is returned by the serializer when a name's
// namespace has no in-scope prefix. Call CreateMissingPrefixes before
// serializing; the serializer never invents prefixes on its own.
type MissingPrefixError struct {
	Namespace string
}

func (e *MissingPrefixError) Error() string {
	return fmt.Sprintf("xot: no prefix in scope for namespace %q", e.Namespace)
}

// A DuplicateAttributeError is returned when two attributes with the
// same name would end up on one element.
type DuplicateAttributeError struct {
	Name string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("xot: duplicate attribute %q", e.Name)
}

// An InvalidOperationError is returned by structurally illegal edits,
// such as adding a second document element or unwrapping a document
// element that does not have a single element child.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return "xot: invalid operation: " + e.Reason
}

// An InvalidCommentError is returned for comment payloads that violate
// the XML grammar.
type InvalidCommentError struct {
	Comment string
}

func (e *InvalidCommentError) Error() string {
	return fmt.Sprintf("xot: invalid comment %q", e.Comment)
}

// An InvalidPIError is returned for processing instructions whose
// target or value violates the XML grammar.
type InvalidPIError struct {
	Reason string
}

func (e *InvalidPIError) Error() string {
	return "xot: invalid processing instruction: " + e.Reason
}

// An UnsupportedEncodingError is returned when a document declares an
// encoding other than UTF-8 or US-ASCII.
type UnsupportedEncodingError struct {
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("xot: unsupported encoding %q", e.Encoding)
}

// A ParseError wraps an error encountered while building a tree from
// XML input, with the byte offset at which it was detected.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xot: parse error at byte %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
