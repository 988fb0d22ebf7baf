package complete

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

func TestFormatDumpLockedReportsNoCachedFiles(t *testing.T) {
	e := newQueueTestEngine()
	report := e.formatDumpLocked()
	require.Contains(t, report, "no cached translation units")
}

func TestFormatDumpLockedListsFileAndLocations(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	id := ids.Intern("/dump.cpp")
	sf := newSourceFile(e.cfg, id, Source{Path: "/dump.cpp", ID: id})
	sf.parseMs = 12
	sf.completionsServed = 3
	sf.completions.Put(Location{Path: "/dump.cpp", Line: 4, Column: 2}, &completionEntry{})
	e.tuCache.Put(id, sf)

	report := e.formatDumpLocked()
	require.True(t, strings.Contains(report, "/dump.cpp"))
	require.True(t, strings.Contains(report, "served=3"))
	require.True(t, strings.Contains(report, "/dump.cpp:4:2"))
}

func TestDumpThroughEngineReturnsReport(t *testing.T) {
	lib := newFakeLibrary()
	e := newTestEngine(t, lib, 10)
	ids := fileid.NewTable()
	src := testSource(t, ids, "/h.cpp")
	conn := &fakeConn{}
	require.NoError(t, e.CompleteAt(src, Location{Path: src.Path, Line: 1, Column: 1}, 0, nil, conn))
	conn.waitFinished(t)

	report, err := e.Dump(context.Background())
	require.NoError(t, err)
	require.Contains(t, report, "/h.cpp")
}
