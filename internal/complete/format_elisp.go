package complete

import (
	"fmt"
	"strings"
)

// formatElisp emits a parenthesized list of records, one per candidate,
// with strings doubled-backslash escaped the way
// original_source/src/CompletionThread.h escapes its elisp output
// (spec.md §4.3, §12).
func formatElisp(candidates []Candidate) []byte {
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range candidates {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s %s %s %s %s %d %d)",
			elispString(c.Completion),
			elispString(c.Signature),
			elispString(c.Annotation),
			elispString(c.Parent),
			elispString(c.Brief),
			c.Priority,
			c.Distance,
		)
	}
	b.WriteByte(')')
	return []byte(b.String())
}

// elispString quotes s as an elisp string literal, doubling backslashes
// and escaping embedded quotes.
func elispString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
