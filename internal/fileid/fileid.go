// Package fileid assigns stable small integer identifiers to source paths,
// the file-identifier table spec.md treats as an external collaborator.
// Grounded on the intern-to-compact-id idiom of the teacher's
// internal/idcodec package, simplified to the one operation this module
// needs: path <-> ID.
package fileid

import "sync"

// ID uniquely identifies one source file for the lifetime of the process.
// IDs are never recycled, even if the underlying path is later evicted
// from every cache.
type ID uint32

// Table interns paths into IDs and resolves IDs back to paths.
type Table struct {
	mu    sync.RWMutex
	byID  []string
	byPath map[string]ID
}

// NewTable creates an empty file-identifier table.
func NewTable() *Table {
	return &Table{
		byPath: make(map[string]ID),
	}
}

// Intern returns the ID for path, assigning a new one on first sight.
func (t *Table) Intern(path string) ID {
	t.mu.RLock()
	if id, ok := t.byPath[path]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byPath[path]; ok {
		return id
	}
	id := ID(len(t.byID))
	t.byID = append(t.byID, path)
	t.byPath[path] = id
	return id
}

// Path resolves id back to the path it was interned from.
func (t *Table) Path(id ID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// Lookup returns the ID for path without interning it.
func (t *Table) Lookup(path string) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byPath[path]
	return id, ok
}
