package complete

import (
	"context"
	"os"
	"time"

	"github.com/standardbeagle/cxcomplete/internal/debug"
	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// process handles one dequeued request exactly as spec.md §4.2
// describes: look up the translation-unit entry, decide parse / reparse
// / reuse, move the entry to MRU position and evict overflow, invoke the
// completion primitive (unless served straight from cache), rank, cache,
// format, and reply.
func (e *Engine) process(req *Request) {
	ctx := context.Background()
	id := req.Source.ID

	sf, existed := e.tuCache.Peek(id)

	if !existed {
		sf = e.parseFresh(ctx, req, nil)
	} else if !sf.source.Equal(req.Source) || req.Flags.Has(Refresh) {
		sf = e.parseFresh(ctx, req, sf)
	} else {
		unchanged := sf.matchesUnsaved(req.Unsaved) && sf.diskModTime.Equal(statModTime(req.Source.Path))
		if unchanged && !req.IsWarmUp() {
			if entry, ok := sf.completions.Get(req.Location); ok {
				e.promoteTU(id, sf)
				e.replyFromCache(req, entry.candidates)
				return
			}
			// Unchanged content but a location not yet in the
			// completion cache: spec.md §4.2 step 2 bullet 4 is an
			// explicit "otherwise -> reparse" catch-all, not just the
			// content-changed case.
			sf = e.reparse(ctx, req, sf)
		} else if !unchanged {
			sf = e.reparse(ctx, req, sf)
		}
		// else: unchanged WarmUp — nothing to reparse and nothing to
		// complete; fall through just promotes the entry's recency.
	}

	if sf == nil {
		// ParseFailed: entry discarded, empty reply already sent by
		// parseFresh/reparse.
		return
	}

	e.promoteTU(id, sf)

	if req.IsWarmUp() {
		finalizeEmpty(req.Conn)
		return
	}

	e.completeAndReply(ctx, req, sf)
}

// parseFresh obtains a new translation unit from the semantic library
// (spec.md §4.2 "Parse-fresh"). prior is the existing cache slot being
// replaced, if any; its unit is released first.
func (e *Engine) parseFresh(ctx context.Context, req *Request, prior *sourceFile) *sourceFile {
	if prior != nil {
		e.lib.Dispose(prior.unit)
	}

	start := time.Now()
	unit, err := e.lib.Parse(ctx, req.Source, req.Unsaved)
	elapsed := time.Since(start).Milliseconds()
	if err != nil || unit == nil {
		debug.LogParse("parse failed for %s: %v", req.Source.Path, err)
		e.tuCache.Remove(req.Source.ID)
		e.clearCached(req.Source.ID)
		if !req.IsWarmUp() {
			reply(req, nil)
		} else {
			finalizeEmpty(req.Conn)
		}
		return nil
	}

	sf := newSourceFile(e.cfg, req.Source.ID, req.Source)
	sf.unit = unit
	sf.unsavedHash = hashUnsaved(req.Unsaved)
	sf.diskModTime = statModTime(req.Source.Path)
	sf.parseMs = elapsed
	return sf
}

// reparse feeds the semantic library the new unsaved buffer and requests
// a reparse with completion-friendly options. A reparse failure degrades
// to parse-fresh once (spec.md §4.2, §7 ReparseFailed).
func (e *Engine) reparse(ctx context.Context, req *Request, sf *sourceFile) *sourceFile {
	start := time.Now()
	err := e.lib.Reparse(ctx, sf.unit, req.Unsaved)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		debug.LogParse("reparse failed for %s, falling back to parse-fresh: %v", req.Source.Path, err)
		return e.parseFresh(ctx, req, sf)
	}

	sf.unsavedHash = hashUnsaved(req.Unsaved)
	sf.diskModTime = statModTime(req.Source.Path)
	sf.reparseMs += elapsed
	sf.clearCompletions(e.cfg)
	return sf
}

// promoteTU moves sf to the front of the translation-unit LRU, inserting
// it if new, and evicts overflow from the tail, cascading the release of
// each evicted unit and its completion entries (spec.md §4.2 step 3,
// §4.4).
func (e *Engine) promoteTU(id fileid.ID, sf *sourceFile) {
	// Put on an existing key moves it to the front and stores sf, which
	// replaces the slot's old entry after a parse-fresh of a cached file.
	evictedID, evictedSF, evicted := e.tuCache.Put(id, sf)
	e.setCached(id)
	if evicted {
		debug.LogCache("evicting translation unit for file id %d", evictedID)
		e.lib.Dispose(evictedSF.unit)
		e.clearCached(evictedID)
	}
}

// completeAndReply invokes the completion primitive, ranks the results,
// caches the answer, and writes the formatted reply (spec.md §4.2 steps
// 4-6).
func (e *Engine) completeAndReply(ctx context.Context, req *Request, sf *sourceFile) {
	start := time.Now()
	results, err := e.lib.CodeCompleteAt(ctx, sf.unit, req.Location, req.Unsaved, req.Flags.Has(IncludeMacros))
	elapsed := time.Since(start).Milliseconds()
	sf.completeMs += elapsed
	sf.completionsServed++

	var candidates []Candidate
	if err == nil && results != nil {
		tokens := buildTokenIndex(req.Unsaved)
		point := locationByteOffset(req.Unsaved, req.Location)
		candidates = buildCandidates(results.Results, tokens, point)
		sortCandidates(candidates)
	}

	sf.completions.Put(req.Location, &completionEntry{location: req.Location, candidates: candidates})

	reply(req, candidates)
}

// replyFromCache answers a request whose (file, location) pair was
// already computed, without touching the semantic library (spec.md §4.2
// "serve from cache").
func (e *Engine) replyFromCache(req *Request, candidates []Candidate) {
	reply(req, candidates)
}

// reply formats candidates per req's flags and writes them to the
// request's connection, then finalizes it exactly once (spec.md §4.2
// step 6, §5 "finalized exactly once").
func reply(req *Request, candidates []Candidate) {
	if req.Conn == nil {
		return
	}
	enc := req.Flags.Encoding()
	_ = req.Conn.Write(format(enc, candidates))
	_ = req.Conn.Finish()
}

// statModTime returns the on-disk modification time of path, or the zero
// time if it cannot be stat'd (e.g. a not-yet-saved new file).
func statModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// locationByteOffset converts a 1-based (line, column) location into a
// byte offset within buf, used as the completion point for distance
// assignment (spec.md §4.3).
func locationByteOffset(buf []byte, loc Location) int {
	line := 1
	col := 1
	for i, b := range buf {
		if line == loc.Line && col == loc.Column {
			return i
		}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return len(buf)
}
