package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/standardbeagle/cxcomplete/internal/complete"
	"github.com/standardbeagle/cxcomplete/internal/debug"
	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// ArgsResolver supplies the compiler arguments a source file should be
// parsed with, normally backed by internal/flagsdb's compilation
// database lookup.
type ArgsResolver interface {
	Args(path string) []string
}

// Server exposes a complete.Engine over a Unix domain socket (grounded
// on the teacher's internal/server.IndexServer: net.Listener over
// "unix" plus an http.ServeMux of handlers).
type Server struct {
	engine *complete.Engine
	ids    *fileid.Table
	args   ArgsResolver

	socketPath string
	listener   net.Listener
	httpServer *http.Server

	mu      sync.Mutex
	running bool
}

// NewServer creates a Server bound to socketPath; no socket is created
// until Start is called.
func NewServer(engine *complete.Engine, ids *fileid.Table, args ArgsResolver, socketPath string) *Server {
	return &Server{engine: engine, ids: ids, args: args, socketPath: socketPath}
}

// Start creates the Unix socket listener and begins serving in the
// background.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("rpc: server already running")
	}
	s.running = true
	s.mu.Unlock()

	os.Remove(s.socketPath)
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("rpc: create socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		debug.LogRPC("chmod socket: %v", err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/complete", s.handleComplete)
	mux.HandleFunc("/prepare", s.handlePrepare)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/dump", s.handleDump)
	mux.HandleFunc("/shutdown", s.handleShutdown)
	mux.HandleFunc("/ping", s.handlePing)

	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			debug.LogRPC("serve error: %v", err)
		}
	}()

	debug.LogRPC("listening on %s (pid %d)", s.socketPath, os.Getpid())
	return nil
}

// Shutdown stops accepting connections, joins in-flight handlers, stops
// the engine, and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("rpc: shutdown: %w", err)
		}
	}
	s.engine.Stop()
	os.Remove(s.socketPath)
	return nil
}

// handleComplete parses a completion request, submits it to the engine,
// and streams the formatted reply back as the response body.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	src, loc, flags, unsaved, err := s.parseRequest(r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn := newHTTPConn(w)
	if err := s.engine.CompleteAt(src, loc, flags, unsaved, conn); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.awaitFinish(r.Context(), conn)
}

// handlePrepare submits a WarmUp request; the HTTP response completes
// immediately since prepare never replies.
func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	src, _, _, unsaved, err := s.parseRequest(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.engine.Prepare(src, unsaved); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type statusResponse struct {
	Cached bool `json:"cached"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("file")
	id, ok := s.ids.Lookup(path)
	resp := statusResponse{Cached: ok && s.engine.IsCached(id)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	report, err := s.engine.Dump(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, report)
}

func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = s.Shutdown(context.Background())
	}()
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// parseRequest decodes the common query-string fields (file, line, col,
// flags, macros) and the unsaved buffer from the request body; the
// compiler arguments come from the ArgsResolver, not the query.
// requireLocation is false for /prepare, which carries no location.
func (s *Server) parseRequest(r *http.Request, requireLocation bool) (complete.Source, complete.Location, complete.Flags, []byte, error) {
	q := r.URL.Query()
	path := q.Get("file")
	if path == "" {
		return complete.Source{}, complete.Location{}, 0, nil, fmt.Errorf("rpc: missing file")
	}

	var flags complete.Flags
	if v := q.Get("flags"); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return complete.Source{}, complete.Location{}, 0, nil, fmt.Errorf("rpc: bad flags: %w", err)
		}
		flags = complete.Flags(n)
	}
	if q.Get("macros") == "1" {
		flags |= complete.IncludeMacros
	}

	src := complete.Source{Path: path, ID: s.ids.Intern(path), Args: s.args.Args(path)}

	var loc complete.Location
	if requireLocation {
		line, err := strconv.Atoi(q.Get("line"))
		if err != nil {
			return complete.Source{}, complete.Location{}, 0, nil, fmt.Errorf("rpc: bad line: %w", err)
		}
		col, err := strconv.Atoi(q.Get("col"))
		if err != nil {
			return complete.Source{}, complete.Location{}, 0, nil, fmt.Errorf("rpc: bad col: %w", err)
		}
		loc = complete.Location{Path: path, Line: line, Column: col}
	}

	var unsaved []byte
	if r.ContentLength != 0 {
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			return complete.Source{}, complete.Location{}, 0, nil, fmt.Errorf("rpc: read body: %w", err)
		}
		unsaved = buf
	}

	return src, loc, flags, unsaved, nil
}

// awaitFinish blocks until conn.Finish is called or the request context
// is cancelled, so the HTTP handler doesn't return (and close the
// response) before the worker has written its reply.
func (s *Server) awaitFinish(ctx context.Context, conn *httpConn) {
	select {
	case <-conn.finished:
	case <-ctx.Done():
	}
}
