package complete

import (
	"fmt"
	"strings"
)

// formatPlain emits one line per candidate: completion signature kind
// parent brief (spec.md §4.3, default encoding).
func formatPlain(candidates []Candidate) []byte {
	var b strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&b, "%s %s %s %s %s\n", c.Completion, c.Signature, c.CursorKind, c.Parent, c.Brief)
	}
	return []byte(b.String())
}
