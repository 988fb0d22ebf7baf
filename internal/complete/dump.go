package complete

import (
	"fmt"
	"strings"
)

// dumpFuture is the DumpSnapshot of spec.md §3: a one-shot handoff
// carrying the worker's textual cache report back to the caller of
// Dump. done is buffered so the worker never blocks delivering it.
type dumpFuture struct {
	done chan string
}

func newDumpFuture() *dumpFuture {
	return &dumpFuture{done: make(chan string, 1)}
}

// formatDumpLocked renders the free-form multi-line cache report of
// spec.md §6: per cached file, its path, cumulative parse/reparse/
// complete time, completions served, and the ordered list of cached
// locations walked most- to least-recently-used (spec.md §9 design
// note on dump ordering). Called from the worker goroutine, which is
// the sole owner of tuCache, so it needs no lock of its own despite the
// name matching its sibling cachedSet accessors.
func (e *Engine) formatDumpLocked() string {
	ids := e.tuCache.Keys()
	if len(ids) == 0 {
		return "cxcomplete: no cached translation units\n"
	}

	var b strings.Builder
	// Keys() walks front-to-back, i.e. most- to least-recently-used.
	for _, id := range ids {
		sf, ok := e.tuCache.Peek(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s\n", sf.source.Path)
		fmt.Fprintf(&b, "  parse=%dms reparse=%dms complete=%dms served=%d\n",
			sf.parseMs, sf.reparseMs, sf.completeMs, sf.completionsServed)
		locs := sf.completions.Keys()
		if len(locs) == 0 {
			b.WriteString("  locations: (none)\n")
			continue
		}
		b.WriteString("  locations:\n")
		for _, loc := range locs {
			fmt.Fprintf(&b, "    %s:%d:%d\n", loc.Path, loc.Line, loc.Column)
		}
	}
	return b.String()
}
