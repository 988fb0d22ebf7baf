package clangidx

import (
	"testing"

	"github.com/go-clang/v3.9/clang"
	"github.com/stretchr/testify/require"
)

func TestCursorKindNameUsesShortTagWhenKnown(t *testing.T) {
	require.Equal(t, "Function", cursorKindName(clang.Cursor_FunctionDecl))
	require.Equal(t, "Struct", cursorKindName(clang.Cursor_StructDecl))
}

func TestCursorKindNameFallsBackToLibclangSpelling(t *testing.T) {
	require.Equal(t, clang.Cursor_LabelStmt.Spelling(), cursorKindName(clang.Cursor_LabelStmt))
}
