// Package clangidx adapts github.com/go-clang/v3.9/clang, a cgo binding
// over libclang, to the complete.SemanticLibrary interface. It is the
// only package in this module that touches libclang directly; keeping
// it isolated here is what lets internal/complete stay portable and
// testable against a fake library (grounded on the same Index/
// TranslationUnit shape github.com/abduld/clang-server's parser package
// drives).
package clangidx

import (
	"context"
	"fmt"

	"github.com/go-clang/v3.9/clang"
	"github.com/pkg/errors"

	"github.com/standardbeagle/cxcomplete/internal/complete"
	"github.com/standardbeagle/cxcomplete/internal/debug"
)

// parseOptions mirrors the flag combination clang-server's parser sets:
// editing-friendly defaults plus KeepGoing, so a single malformed
// declaration doesn't abort the whole parse.
var parseOptions = clang.DefaultEditingTranslationUnitOptions() | uint32(clang.TranslationUnit_KeepGoing)

// completeOptions adds brief-comment extraction, since §4.3's candidate
// Brief field needs it populated.
var completeOptions = clang.DefaultCodeCompleteOptions() | uint32(clang.CodeComplete_IncludeBriefComments)

// Index wraps a single libclang CXIndex. One Index is shared by every
// translation unit the worker parses; libclang indexes are not safe for
// concurrent use, which is exactly why complete.Engine confines all
// calls to its single worker goroutine.
type Index struct {
	idx clang.Index
}

// New creates a libclang index with declarations from precompiled
// headers excluded and diagnostic display disabled (the worker surfaces
// its own diagnostics-derived errors instead).
func New() *Index {
	return &Index{idx: clang.NewIndex(1, 0)}
}

// unit pairs the cgo TranslationUnit handle with the file it was parsed
// for, since ReparseTranslationUnit and CodeCompleteAt both need the
// original unsaved-file overlay.
type unit struct {
	tu   clang.TranslationUnit
	path string
}

// Parse implements complete.SemanticLibrary.
func (x *Index) Parse(ctx context.Context, src complete.Source, unsaved []byte) (complete.Unit, error) {
	tu, err := x.idx.ParseTranslationUnit(src.Path, src.Args, unsavedFiles(src.Path, unsaved), parseOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", src.Path)
	}
	debug.LogParse("parsed %s with %d diagnostics", src.Path, tu.NumDiagnostics())
	return &unit{tu: tu, path: src.Path}, nil
}

// Reparse implements complete.SemanticLibrary.
func (x *Index) Reparse(ctx context.Context, u complete.Unit, unsaved []byte) error {
	un, ok := u.(*unit)
	if !ok {
		return fmt.Errorf("clangidx: not a libclang unit")
	}
	if code := un.tu.ReparseTranslationUnit(unsavedFiles(un.path, unsaved), parseOptions); code != clang.Error_Success {
		return fmt.Errorf("clangidx: reparse %s: %s", un.path, code.Spelling())
	}
	return nil
}

// CodeCompleteAt implements complete.SemanticLibrary.
func (x *Index) CodeCompleteAt(ctx context.Context, u complete.Unit, loc complete.Location, unsaved []byte, includeMacros bool) (*complete.CompletionResults, error) {
	un, ok := u.(*unit)
	if !ok {
		return nil, fmt.Errorf("clangidx: not a libclang unit")
	}

	opts := completeOptions
	if includeMacros {
		opts |= uint32(clang.CodeComplete_IncludeMacros)
	}

	results := un.tu.CodeCompleteAt(un.path, uint32(loc.Line), uint32(loc.Column), unsavedFiles(un.path, unsaved), opts)
	defer results.Dispose()

	return translateResults(results), nil
}

// Dispose implements complete.SemanticLibrary.
func (x *Index) Dispose(u complete.Unit) {
	if un, ok := u.(*unit); ok {
		un.tu.Dispose()
	}
}

// unsavedFiles builds the single-entry unsaved-buffer overlay libclang
// expects; an empty buffer means "read from disk".
func unsavedFiles(path string, unsaved []byte) []clang.UnsavedFile {
	if len(unsaved) == 0 {
		return nil
	}
	return []clang.UnsavedFile{clang.NewUnsavedFile(path, string(unsaved))}
}
