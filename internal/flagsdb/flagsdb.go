// Package flagsdb is the "source-flag database" collaborator spec.md §1
// calls out as external to the core: given a source path, it supplies
// the compiler arguments it should be parsed with, read from a JSON
// Compilation Database (compile_commands.json).
package flagsdb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// entry is one record of the JSON Compilation Database format:
// https://clang.llvm.org/docs/JSONCompilationDatabase.html
type entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Command   string   `json:"command"`
}

// DB answers compiler-argument lookups for source files, backed by a
// parsed compile_commands.json. Safe for concurrent use; Reload swaps in
// a freshly parsed snapshot atomically.
type DB struct {
	mu      sync.RWMutex
	byPath  map[string][]string
	globs   []globEntry
	dbPath  string
}

type globEntry struct {
	pattern string
	args    []string
}

// Load parses the compile_commands.json at dbPath. A missing file yields
// an empty, always-miss DB rather than an error, the same
// falls-back-to-defaults posture internal/config.Load takes for a
// missing .cxcomplete.kdl.
func Load(dbPath string) (*DB, error) {
	db := &DB{dbPath: dbPath}
	if err := db.reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return db, nil
}

// Lookup returns the compiler arguments for path, and whether an exact
// or glob-matched entry was found. Lookup never builds a complete.Source
// itself; internal/rpc's server gets the arguments through Args (its
// ArgsResolver) and wraps them into a complete.Source.
func (db *DB) Lookup(path string) ([]string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if args, ok := db.byPath[abs]; ok {
		return args, true
	}
	if args, ok := db.byPath[path]; ok {
		return args, true
	}
	for _, g := range db.globs {
		if matched, _ := doublestar.Match(g.pattern, abs); matched {
			return g.args, true
		}
		if matched, _ := doublestar.Match(g.pattern, path); matched {
			return g.args, true
		}
	}
	return nil, false
}

// Args implements internal/rpc.ArgsResolver: returns nil when path isn't
// in the database rather than an error, since parsing with no flags is
// still a valid (if degraded) parse-fresh input.
func (db *DB) Args(path string) []string {
	args, _ := db.Lookup(path)
	return args
}

// Reload re-parses the compilation database from disk.
func (db *DB) Reload() error {
	return db.reload()
}

func (db *DB) reload() error {
	data, err := os.ReadFile(db.dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			db.mu.Lock()
			db.byPath = make(map[string][]string)
			db.globs = nil
			db.mu.Unlock()
			return err
		}
		return fmt.Errorf("flagsdb: read %s: %w", db.dbPath, err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("flagsdb: parse %s: %w", db.dbPath, err)
	}

	byPath := make(map[string][]string, len(entries))
	var globs []globEntry
	for _, e := range entries {
		args := resolveArgs(e)
		path := e.File
		if !filepath.IsAbs(path) && e.Directory != "" {
			path = filepath.Join(e.Directory, path)
		}
		if doublestar.ValidatePattern(path) && containsGlobMeta(path) {
			globs = append(globs, globEntry{pattern: path, args: args})
			continue
		}
		byPath[path] = args
	}

	db.mu.Lock()
	db.byPath = byPath
	db.globs = globs
	db.mu.Unlock()
	return nil
}

// resolveArgs prefers the "arguments" array; compile_commands.json also
// permits a single shell-escaped "command" string, which this module
// only whitespace-splits rather than fully re-tokenizing (shell-quoting
// rules are not applied).
func resolveArgs(e entry) []string {
	if len(e.Arguments) > 0 {
		return e.Arguments
	}
	if e.Command != "" {
		return strings.Fields(e.Command)
	}
	return nil
}

func containsGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
