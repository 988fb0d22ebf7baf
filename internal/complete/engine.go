package complete

import (
	"context"
	"sync"

	"github.com/standardbeagle/cxcomplete/internal/debug"
	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// Engine is the control surface of spec.md §4.1: completeAt, prepare,
// isCached, dump, and stop, backed by a single background worker
// goroutine that owns all semantic-library state.
//
// mu/cond guard exactly the shared state spec.md §5 lists: the pending
// queue, the shutdown flag, the optional dump handoff, and the cachedSet
// watchset for isCached. The worker's own translation-unit cache
// (tuCache) is touched only from the worker goroutine and needs no lock
// of its own (spec.md §5: "no other thread ever touches translation
// units... or the caches' structural links").
type Engine struct {
	cfg Config
	lib SemanticLibrary

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []*Request
	cachedSet map[fileid.ID]struct{}
	shutdown  bool
	dump      *dumpFuture

	wg sync.WaitGroup

	tuCache *lru[fileid.ID, *sourceFile]
}

// New creates an Engine and starts its worker goroutine. lib is the
// semantic-library adapter (internal/clangidx.Index in production, a
// fake in tests).
func New(cfg Config, lib SemanticLibrary) *Engine {
	e := &Engine{
		cfg:       cfg,
		lib:       lib,
		cachedSet: make(map[fileid.ID]struct{}),
		tuCache:   newLRU[fileid.ID, *sourceFile](cfg.Cache.TranslationUnitSize),
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(1)
	go e.run()
	return e
}

// CompleteAt enqueues a completion request (spec.md §4.1). It never
// blocks the caller on the answer; the reply, if any, arrives through
// conn.
func (e *Engine) CompleteAt(src Source, loc Location, flags Flags, unsaved []byte, conn Connection) error {
	if loc.Line <= 0 || loc.Column <= 0 {
		finalizeEmpty(conn)
		return ErrBadLocation
	}
	return e.submit(&Request{Source: src, Location: loc, Flags: flags, Unsaved: unsaved, Conn: conn})
}

// Prepare is syntactic sugar for a WarmUp request: no location, no
// connection, pure cache-fill (spec.md §4.1).
func (e *Engine) Prepare(src Source, unsaved []byte) error {
	return e.submit(&Request{Source: src, Flags: WarmUp, Unsaved: unsaved})
}

// IsCached reports whether the translation-unit cache currently holds an
// entry for fileID (spec.md §4.1, lock-protected read).
func (e *Engine) IsCached(id fileid.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isCachedLocked(id)
}

func (e *Engine) isCachedLocked(id fileid.ID) bool {
	_, ok := e.cachedSet[id]
	return ok
}

// submit hands req to enqueue, which atomically checks shutdown state
// and inserts under the same lock acquisition so Stop can never observe
// an empty queue and return between the check and the insert (spec.md
// §4.1 "after stop, further completeAt calls are rejected").
func (e *Engine) submit(req *Request) error {
	if !e.enqueue(req) {
		finalizeEmpty(req.Conn)
		return ErrShutdown
	}
	return nil
}

// Dump submits a synchronous request for a textual cache report and
// blocks until the worker produces it or ctx is done (spec.md §4.1). At
// most one outstanding dump may exist.
func (e *Engine) Dump(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.dump != nil {
		e.mu.Unlock()
		return "", ErrDumpBusy
	}
	df := newDumpFuture()
	e.dump = df
	e.cond.Signal()
	e.mu.Unlock()

	select {
	case report := <-df.done:
		return report, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop sets the shutdown flag, signals the worker, and joins it. After
// Stop returns, further CompleteAt/Prepare calls are rejected (spec.md
// §4.1).
func (e *Engine) Stop() {
	e.mu.Lock()
	e.shutdown = true
	e.cond.Signal()
	e.mu.Unlock()
	e.wg.Wait()
}

// run is the worker's main loop (spec.md §4.2).
func (e *Engine) run() {
	defer e.wg.Done()
	for {
		e.mu.Lock()
		for {
			if e.dump != nil {
				df := e.dump
				e.dump = nil
				report := e.formatDumpLocked()
				e.mu.Unlock()
				df.done <- report
				e.mu.Lock()
				continue
			}
			if e.shutdown && len(e.queue) == 0 {
				e.drainLocked()
				e.mu.Unlock()
				return
			}
			if len(e.queue) > 0 {
				break
			}
			e.cond.Wait()
		}
		req, ok := e.dequeue()
		e.mu.Unlock()
		if !ok {
			continue
		}
		debug.LogWorker("processing %s flags=%d", req.Source.Path, req.Flags)
		e.process(req)
	}
}

// drainLocked finalizes every still-pending request without a reply,
// the Shutdown error kind of spec.md §7. Called with e.mu held.
func (e *Engine) drainLocked() {
	for _, req := range e.queue {
		finalizeEmpty(req.Conn)
	}
	e.queue = nil
}

// setCached records that id now has a translation-unit cache entry.
func (e *Engine) setCached(id fileid.ID) {
	e.mu.Lock()
	e.cachedSet[id] = struct{}{}
	e.mu.Unlock()
}

// clearCached records that id no longer has a translation-unit cache
// entry (eviction, parse failure, or source-changed discard).
func (e *Engine) clearCached(id fileid.ID) {
	e.mu.Lock()
	delete(e.cachedSet, id)
	e.mu.Unlock()
}
