package clangidx

import (
	"github.com/go-clang/v3.9/clang"

	"github.com/standardbeagle/cxcomplete/internal/complete"
)

// translateResults walks a libclang completion result set into the
// library-agnostic complete.CompletionResults, extracting exactly the
// fields §4.3's build step names: typed text, full signature, the
// current-parameter annotation, parent context, brief comment, priority,
// availability, and cursor kind.
func translateResults(results clang.CodeCompleteResults) *complete.CompletionResults {
	n := int(results.NumResults())
	out := make([]complete.RawResult, 0, n)
	for i := 0; i < n; i++ {
		result := results.Result(i)
		out = append(out, translateResult(result))
	}
	return &complete.CompletionResults{Results: out}
}

func translateResult(result clang.CompletionResult) complete.RawResult {
	cs := result.CompletionString()
	return complete.RawResult{
		Completion: typedText(cs),
		Signature:  signature(cs),
		Annotation: currentParameter(cs),
		Parent:     cs.Parent(),
		Brief:      cs.BriefComment(),
		Priority:   int(cs.Priority()),
		CursorKind: cursorKindName(result.CursorKind()),
		// spec.md §4.3 skips only results that are not available; a
		// Deprecated or NotAccessible completion is still a real,
		// usable candidate and must not be filtered out here.
		Available: cs.Availability() != clang.Availability_NotAvailable,
	}
}

// typedText is the chunk the completion inserts verbatim: the chunk
// libclang marks CompletionChunk_TypedText.
func typedText(cs clang.CompletionString) string {
	for i := uint32(0); i < cs.NumChunks(); i++ {
		if cs.ChunkKind(i) == clang.CompletionChunk_TypedText {
			return cs.ChunkText(i)
		}
	}
	return ""
}

// signature concatenates every chunk's text in order, giving the full
// completion signature (e.g. "foo(int x, int y)").
func signature(cs clang.CompletionString) string {
	var sig string
	for i := uint32(0); i < cs.NumChunks(); i++ {
		sig += cs.ChunkText(i)
	}
	return sig
}

// currentParameter is the chunk libclang marks as the parameter the
// cursor currently sits in while completing a call, when present.
func currentParameter(cs clang.CompletionString) string {
	for i := uint32(0); i < cs.NumChunks(); i++ {
		if cs.ChunkKind(i) == clang.CompletionChunk_CurrentParameter {
			return cs.ChunkText(i)
		}
	}
	return ""
}
