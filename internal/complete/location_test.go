package complete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("/src/main.cpp:10:5")
	require.NoError(t, err)
	require.Equal(t, Location{Path: "/src/main.cpp", Line: 10, Column: 5}, loc)
}

func TestParseLocationWindowsPathWithColons(t *testing.T) {
	loc, err := ParseLocation(`C:\foo\bar.cpp:10:5`)
	require.NoError(t, err)
	require.Equal(t, `C:\foo\bar.cpp`, loc.Path)
	require.Equal(t, 10, loc.Line)
	require.Equal(t, 5, loc.Column)
}

func TestParseLocationRejectsZeroLineOrColumn(t *testing.T) {
	_, err := ParseLocation("/src/main.cpp:0:5")
	require.ErrorIs(t, err, ErrBadLocation)

	_, err = ParseLocation("/src/main.cpp:10:0")
	require.ErrorIs(t, err, ErrBadLocation)
}

func TestParseLocationRejectsMalformedText(t *testing.T) {
	_, err := ParseLocation("not-a-location")
	require.ErrorIs(t, err, ErrBadLocation)

	_, err = ParseLocation("/src/main.cpp:10")
	require.ErrorIs(t, err, ErrBadLocation)
}
