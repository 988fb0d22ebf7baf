package complete

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// newQueueTestEngine builds an Engine without starting its worker
// goroutine; tests here call enqueue/dequeue directly, and nothing drains
// the queue mid-assertion.
func newQueueTestEngine() *Engine {
	e := &Engine{
		cfg:       DefaultConfig(),
		lib:       newFakeLibrary(),
		cachedSet: make(map[fileid.ID]struct{}),
		tuCache:   newLRU[fileid.ID, *sourceFile](10),
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

func TestEnqueueAppendsUncachedToTail(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	a := Request{Source: Source{Path: "/a.cpp", ID: ids.Intern("/a.cpp")}}
	b := Request{Source: Source{Path: "/b.cpp", ID: ids.Intern("/b.cpp")}}

	e.enqueue(&a)
	e.enqueue(&b)

	require.Len(t, e.queue, 2)
	require.Equal(t, a.Source.ID, e.queue[0].Source.ID)
	require.Equal(t, b.Source.ID, e.queue[1].Source.ID)
}

func TestEnqueueInsertsCachedBeforeUncachedRegion(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	uncached := Request{Source: Source{Path: "/u.cpp", ID: ids.Intern("/u.cpp")}}
	cached := Request{Source: Source{Path: "/c.cpp", ID: ids.Intern("/c.cpp")}}
	e.cachedSet[cached.Source.ID] = struct{}{}

	e.enqueue(&uncached)
	e.enqueue(&cached)

	require.Len(t, e.queue, 2)
	require.Equal(t, cached.Source.ID, e.queue[0].Source.ID, "cached-file request must jump ahead of the uncached region")
	require.Equal(t, uncached.Source.ID, e.queue[1].Source.ID)
}

func TestEnqueueSupersedesIdenticalTuple(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	id := ids.Intern("/a.cpp")
	conn := &fakeConn{}
	stale := Request{Source: Source{Path: "/a.cpp", ID: id}, Flags: 0, Conn: conn}
	fresh := Request{Source: Source{Path: "/a.cpp", ID: id}, Flags: 0}

	e.enqueue(&stale)
	e.enqueue(&fresh)

	require.Len(t, e.queue, 1, "identical (file id, flags) tuples must supersede, not coexist")
	require.Equal(t, 1, conn.finishes, "superseded request's connection must be finalized")
	require.Len(t, conn.written, 0, "superseded request must receive no reply")
}

func TestEnqueueDoesNotSupersedeDifferentFlags(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	id := ids.Intern("/a.cpp")
	plain := Request{Source: Source{Path: "/a.cpp", ID: id}, Flags: 0}
	refresh := Request{Source: Source{Path: "/a.cpp", ID: id}, Flags: Refresh}

	e.enqueue(&plain)
	e.enqueue(&refresh)

	require.Len(t, e.queue, 2)
}

func TestDequeuePopsHeadInOrder(t *testing.T) {
	e := newQueueTestEngine()
	ids := fileid.NewTable()
	a := Request{Source: Source{Path: "/a.cpp", ID: ids.Intern("/a.cpp")}}
	b := Request{Source: Source{Path: "/b.cpp", ID: ids.Intern("/b.cpp")}}
	e.queue = []*Request{&a, &b}

	first, ok := e.dequeue()
	require.True(t, ok)
	require.Equal(t, a.Source.ID, first.Source.ID)

	second, ok := e.dequeue()
	require.True(t, ok)
	require.Equal(t, b.Source.ID, second.Source.ID)

	_, ok = e.dequeue()
	require.False(t, ok)
}
