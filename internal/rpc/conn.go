package rpc

import (
	"net/http"
	"sync"
)

// httpConn adapts an in-flight HTTP response writer to
// complete.Connection: Write streams formatted candidate bytes as they
// arrive, Finish signals the handler goroutine that the worker is done
// so the HTTP response can complete. Finish is idempotent, matching the
// "finalized exactly once" contract the engine actually relies on
// (spec.md §5) plus defense against a doubled call from drain+process
// races.
type httpConn struct {
	w  http.ResponseWriter
	f  http.Flusher
	mu sync.Mutex

	wrote    bool
	finished chan struct{}
	once     sync.Once
}

func newHTTPConn(w http.ResponseWriter) *httpConn {
	f, _ := w.(http.Flusher)
	return &httpConn{w: w, f: f, finished: make(chan struct{})}
}

// Write implements complete.Connection.
func (c *httpConn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.wrote {
		c.w.Header().Set("Content-Type", "application/octet-stream")
		c.wrote = true
	}
	_, err := c.w.Write(data)
	if c.f != nil {
		c.f.Flush()
	}
	return err
}

// Finish implements complete.Connection.
func (c *httpConn) Finish() error {
	c.once.Do(func() { close(c.finished) })
	return nil
}
