// Package debug provides package-level, opt-in debug logging for the
// completion daemon. Output is a no-op unless explicitly enabled, so the
// hot path (CompleteAt -> worker -> reply) never pays for formatting
// debug output is not configured.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X github.com/standardbeagle/cxcomplete/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	mu     sync.Mutex
	output io.Writer
	file   *os.File
)

// SetOutput sets a custom writer for debug output. Pass nil to disable.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// InitLogFile opens a timestamped debug log under the OS temp directory and
// routes all debug output there. Returns the log path.
func InitLogFile() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Join(os.TempDir(), "cxcomplete-debug-logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create debug log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("debug-%s.log", time.Now().Format("2006-01-02T150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("create debug log file: %w", err)
	}

	file = f
	output = f
	return path, nil
}

// CloseLogFile closes the debug log file if one is open.
func CloseLogFile() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	output = nil
	return err
}

// Enabled reports whether debug output should be produced.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("CXCOMPLETE_DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Log writes a component-tagged debug line when debug output is enabled
// and a writer has been configured. It is a no-op otherwise.
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogWorker logs from the completion worker's main loop.
func LogWorker(format string, args ...interface{}) { Log("WORKER", format, args...) }

// LogCache logs translation-unit and completion cache transitions.
func LogCache(format string, args ...interface{}) { Log("CACHE", format, args...) }

// LogParse logs parse/reparse/code-complete calls into the semantic library.
func LogParse(format string, args ...interface{}) { Log("PARSE", format, args...) }

// LogRPC logs connection-layer activity.
func LogRPC(format string, args ...interface{}) { Log("RPC", format, args...) }
