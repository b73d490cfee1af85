// Package testutil contains common utility functions for unit tests.
package testutil

import "github.com/kylelemons/godebug/diff"

// Diff returns a line diff between want and got, or "" when they are
// equal. Use it to make serializer test failures readable.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	return diff.Diff(want, got)
}
