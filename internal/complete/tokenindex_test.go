package complete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTokenIndexFirstOccurrence(t *testing.T) {
	idx := buildTokenIndex([]byte("int foo; foo = foo + 1;"))
	require.Equal(t, 4, idx["foo"])
	require.Equal(t, 0, idx["int"])
}

func TestBuildTokenIndexSingleToken(t *testing.T) {
	idx := buildTokenIndex([]byte("identifier"))
	require.Equal(t, 0, idx["identifier"])
}

func TestBuildTokenIndexEmptyBuffer(t *testing.T) {
	idx := buildTokenIndex(nil)
	require.Empty(t, idx)
}
