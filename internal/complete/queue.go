package complete

// enqueue applies the supersession and priority-insertion rules of
// spec.md §4.1 under the engine's queue lock, then wakes the worker. It
// checks the shutdown flag under the same lock acquisition it inserts
// under, so a concurrent Stop can never observe an empty queue and
// return in the window between a caller's shutdown check and its
// insert: reports false (and inserts nothing) once shut down.
//
// Supersession: a pending request with the same (file id, flags) tuple is
// removed first and its connection finalized without a reply, so a
// superseded keystroke never produces a stale answer (spec.md §5,
// testable property "at no point does the queue contain two requests
// with identical (file id, flags) tuples").
//
// Priority insertion: requests for an already-cached file are inserted
// just before the first request targeting an uncached file ("the head
// region"); requests for an uncached file go to the tail. Insertion
// order is preserved within each region.
func (e *Engine) enqueue(req *Request) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return false
	}

	for i, pending := range e.queue {
		if pending.Source.ID == req.Source.ID && pending.Flags == req.Flags {
			finalizeEmpty(pending.Conn)
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			break
		}
	}

	if e.isCachedLocked(req.Source.ID) {
		insertAt := len(e.queue)
		for i, pending := range e.queue {
			if !e.isCachedLocked(pending.Source.ID) {
				insertAt = i
				break
			}
		}
		e.queue = append(e.queue, nil)
		copy(e.queue[insertAt+1:], e.queue[insertAt:])
		e.queue[insertAt] = req
	} else {
		e.queue = append(e.queue, req)
	}

	e.cond.Signal()
	return true
}

// dequeue pops the head of the queue, if any, for the worker to process.
func (e *Engine) dequeue() (*Request, bool) {
	if len(e.queue) == 0 {
		return nil, false
	}
	req := e.queue[0]
	e.queue = e.queue[1:]
	return req, true
}

// finalizeEmpty finalizes a connection with no reply, the outcome for
// superseded and shutdown-drained requests alike (spec.md §7).
func finalizeEmpty(conn Connection) {
	if conn != nil {
		_ = conn.Finish()
	}
}
