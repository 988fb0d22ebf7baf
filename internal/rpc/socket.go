// Package rpc exposes the completion engine over a Unix domain socket
// using net/http, the same transport shape as the teacher's
// internal/server package (net.Listener over "unix" + http.ServeMux),
// adapted here from a request/response index API to the completion
// engine's streamed-write/finalize Connection model.
package rpc

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketPath returns a project-specific Unix socket path, so multiple
// daemons can run for different projects simultaneously without
// colliding (grounded on the teacher's GetSocketPathForRoot hashing
// scheme).
func SocketPath(root string) string {
	if root == "" {
		return defaultSocketPath()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return defaultSocketPath()
	}
	var hash uint32
	for _, c := range absRoot {
		hash = hash*31 + uint32(c)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("cxcompleted-%08x.sock", hash))
}

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "cxcompleted.sock")
}
