package fileid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIsStable(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("/src/a.cpp")
	b := tbl.Intern("/src/b.cpp")
	require.NotEqual(t, a, b)
	require.Equal(t, a, tbl.Intern("/src/a.cpp"))
}

func TestPathRoundTrip(t *testing.T) {
	tbl := NewTable()
	id := tbl.Intern("/src/a.cpp")
	path, ok := tbl.Path(id)
	require.True(t, ok)
	require.Equal(t, "/src/a.cpp", path)

	_, ok = tbl.Path(ID(999))
	require.False(t, ok)
}

func TestLookupDoesNotIntern(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup("/src/missing.cpp")
	require.False(t, ok)

	id := tbl.Intern("/src/missing.cpp")
	found, ok := tbl.Lookup("/src/missing.cpp")
	require.True(t, ok)
	require.Equal(t, id, found)
}
