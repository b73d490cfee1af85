package xot

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// HTML5 element classification. Matching is by lowercased local name;
// names outside the HTML5 vocabulary fall into none of the classes.

func lookupAtom(local string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(local)))
}

// isVoidElement reports whether an element never has content and is
// written without a closing tag in HTML5.
func isVoidElement(local string) bool {
	return voidElements[lookupAtom(local)]
}

// isRawTextElement reports whether an element's text content is
// written without entity escaping in HTML5.
func isRawTextElement(local string) bool {
	return rawTextElements[lookupAtom(local)]
}

// isInlineElement reports whether an element is phrasing content,
// which pretty printing must not surround with whitespace.
func isInlineElement(local string) bool {
	return inlineElements[lookupAtom(local)]
}
