package complete

import (
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// sourceFile is the translation-unit cache entry of spec.md §3: one per
// cached file, owning a parsed unit, the source it was parsed from, a
// fingerprint of the last unsaved buffer fed into it, and a nested
// per-file completion cache. It is touched only by the worker goroutine,
// so it carries no lock of its own.
type sourceFile struct {
	id     fileid.ID
	source Source
	unit   Unit

	unsavedHash uint64
	diskModTime time.Time

	parseMs, reparseMs, completeMs int64
	completionsServed              int64

	completions *lru[Location, *completionEntry]
}

// completionEntry is the Completions cache entry of spec.md §3: one per
// (file, location) already answered.
type completionEntry struct {
	location   Location
	candidates []Candidate
}

func newSourceFile(cfg Config, id fileid.ID, source Source) *sourceFile {
	return &sourceFile{
		id:          id,
		source:      source,
		completions: newLRU[Location, *completionEntry](cfg.Cache.CompletionsPerFile),
	}
}

// hashUnsaved fingerprints an unsaved buffer. Any 64-bit hash with
// process-lifetime stability suffices (spec.md §9); xxhash is already a
// dependency of the pack this module draws its domain stack from.
func hashUnsaved(buf []byte) uint64 {
	return xxhash.Sum64(buf)
}

// matchesUnsaved reports whether buf is the same content last fed into
// this entry, comparing by fingerprint only (spec.md §4.2 "the unsaved
// buffer hash matches the stored hash").
func (sf *sourceFile) matchesUnsaved(buf []byte) bool {
	return sf.unsavedHash == hashUnsaved(buf)
}

// clearCompletions invalidates every cached completion for this file,
// done on every reparse (spec.md §3 invariant). A Refresh goes through
// parseFresh instead, whose new entry starts with an empty cache.
func (sf *sourceFile) clearCompletions(cfg Config) {
	sf.completions = newLRU[Location, *completionEntry](cfg.Cache.CompletionsPerFile)
}
