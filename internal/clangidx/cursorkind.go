package clangidx

import "github.com/go-clang/v3.9/clang"

// cursorKindNames gives a short, stable string for the cursor kinds that
// actually show up as completion results, mirroring the spelling style
// the rtags CompletionThread reports (a terse tag rather than libclang's
// full "CXCursor_..." constant name). Kinds this table doesn't list fall
// back to libclang's own spelling.
var cursorKindNames = map[clang.CursorKind]string{
	clang.Cursor_FunctionDecl:      "Function",
	clang.Cursor_CXXMethod:         "Method",
	clang.Cursor_Constructor:       "Constructor",
	clang.Cursor_Destructor:        "Destructor",
	clang.Cursor_StructDecl:        "Struct",
	clang.Cursor_ClassDecl:         "Class",
	clang.Cursor_UnionDecl:         "Union",
	clang.Cursor_EnumDecl:          "Enum",
	clang.Cursor_EnumConstantDecl:  "EnumConstant",
	clang.Cursor_FieldDecl:         "Field",
	clang.Cursor_VarDecl:           "Variable",
	clang.Cursor_ParmDecl:          "Parameter",
	clang.Cursor_TypedefDecl:       "Typedef",
	clang.Cursor_Namespace:         "Namespace",
	clang.Cursor_MacroDefinition:   "Macro",
	clang.Cursor_NotImplemented:    "Keyword",
}

// cursorKindName resolves kind to its short tag, falling back to
// libclang's own spelling for kinds not worth a dedicated entry.
func cursorKindName(kind clang.CursorKind) string {
	if name, ok := cursorKindNames[kind]; ok {
		return name
	}
	return kind.Spelling()
}
