// Package complete implements the asynchronous code-completion engine:
// a background worker that owns all semantic-library state, a bounded
// LRU of parsed translation units and per-location completion results,
// a priority-ordered pending queue, and the ranking/formatting of
// completion candidates.
package complete

import (
	"context"

	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// Source identifies a translation unit: an absolute path plus the ordered
// compiler arguments used to parse it. Two Sources are equal iff their
// Path and Args are equal (ID is not compared); this equality is what
// the worker uses to decide
// between reuse and re-parse (spec.md §4.2).
type Source struct {
	Path string
	ID   fileid.ID
	Args []string
}

// Equal reports whether src and other describe the same parse.
func (src Source) Equal(other Source) bool {
	if src.Path != other.Path || len(src.Args) != len(other.Args) {
		return false
	}
	for i := range src.Args {
		if src.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// Location is a 1-based source position: path, line, column.
type Location struct {
	Path   string
	Line   int
	Column int
}

// Flags is the bitmask of request modifiers spec.md §3/§6 describes.
type Flags uint8

const (
	// Refresh forces re-parsing even if the cache holds a matching entry.
	Refresh Flags = 1 << iota
	// Elisp selects the Elisp encoding.
	Elisp
	// XML selects the XML encoding.
	XML
	// JSON selects the JSON encoding.
	JSON
	// IncludeMacros asks the semantic library to include macro completions.
	IncludeMacros
	// WarmUp marks a pure cache-fill request: no location, no reply.
	WarmUp
)

// encodingMask is the subset of Flags that select an output encoding;
// Elisp, XML, and JSON are mutually exclusive (spec.md §6).
const encodingMask = Elisp | XML | JSON

// Encoding resolves the mutually-exclusive encoding selector, defaulting
// to the plain encoding when none of Elisp/XML/JSON is set.
func (f Flags) Encoding() Encoding {
	switch f & encodingMask {
	case Elisp:
		return EncodingElisp
	case XML:
		return EncodingXML
	case JSON:
		return EncodingJSON
	default:
		return EncodingPlain
	}
}

// Has reports whether all bits in want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Encoding is the resolved output format for a reply.
type Encoding int

const (
	EncodingPlain Encoding = iota
	EncodingElisp
	EncodingXML
	EncodingJSON
)

// Connection is the consumed interface to the outbound reply channel.
// Finish must be idempotent at the core's level of use: the core calls
// it at most once per connection (spec.md §6).
type Connection interface {
	Write(data []byte) error
	Finish() error
}

// Candidate is one completion suggestion, ranked and ready to format
// (spec.md §3).
type Candidate struct {
	Completion string
	Signature  string
	Annotation string
	Parent     string
	Brief      string
	Priority   int
	Distance   int
	CursorKind string
}

// Request is an immutable job record (spec.md §3). WarmUp requests carry
// no Location and no Conn.
type Request struct {
	Source   Source
	Location Location
	Flags    Flags
	Unsaved  []byte
	Conn     Connection
}

// IsWarmUp reports whether r is a pure cache-fill request.
func (r *Request) IsWarmUp() bool { return r.Flags.Has(WarmUp) }

// RawResult is one completion candidate as reported by the semantic
// library, before ranking. Available is false for results the library
// marks "not available"; the ranking step (§4.3) skips those.
type RawResult struct {
	Completion string
	Signature  string
	Annotation string
	Parent     string
	Brief      string
	Priority   int
	CursorKind string
	Available  bool
}

// CompletionResults is the raw completion result set the semantic
// library returns for one codeCompleteAt call.
type CompletionResults struct {
	Results []RawResult
}

// Unit is an opaque translation-unit handle owned exclusively by the
// semantic library implementation; the core never inspects it.
type Unit interface{}

// SemanticLibrary is the interface the worker calls into the underlying
// semantic-analysis library through (spec.md §6.1); the only concrete
// implementation in this module is internal/clangidx.Index, wrapping
// libclang. Every method may block. The worker passes
// context.Background(), so Stop does not cancel a call in progress.
type SemanticLibrary interface {
	// Parse produces a new translation unit for src, optionally
	// overlaying unsaved buffer content. Returns an error (and a nil
	// Unit) on ParseFailed.
	Parse(ctx context.Context, src Source, unsaved []byte) (Unit, error)

	// Reparse re-parses an existing unit with a new unsaved buffer,
	// using completion-friendly reparse options. A failure here
	// degrades to Parse at the call site (spec.md §4.2).
	Reparse(ctx context.Context, unit Unit, unsaved []byte) error

	// CodeCompleteAt invokes the completion primitive at loc.
	CodeCompleteAt(ctx context.Context, unit Unit, loc Location, unsaved []byte, includeMacros bool) (*CompletionResults, error)

	// Dispose releases a translation unit. Safe to call once per Unit
	// returned by Parse.
	Dispose(unit Unit)
}
