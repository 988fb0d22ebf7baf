package flagsdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeCompileCommands(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, "compile_commands.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileYieldsAlwaysMissDB(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(filepath.Join(dir, "compile_commands.json"))
	require.NoError(t, err)
	_, ok := db.Lookup(filepath.Join(dir, "a.cpp"))
	require.False(t, ok)
}

func TestLookupExactPathMatch(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.cpp")
	content := `[{"directory": "` + dir + `", "file": "a.cpp", "arguments": ["clang++", "-std=c++17", "a.cpp"]}]`
	path := writeCompileCommands(t, dir, content)

	db, err := Load(path)
	require.NoError(t, err)

	args, ok := db.Lookup(srcPath)
	require.True(t, ok)
	require.Equal(t, []string{"clang++", "-std=c++17", "a.cpp"}, args)
}

func TestLookupParsesCommandStringFallback(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "b.cpp")
	content := `[{"directory": "` + dir + `", "file": "b.cpp", "command": "clang++ -std=c++20 b.cpp"}]`
	path := writeCompileCommands(t, dir, content)

	db, err := Load(path)
	require.NoError(t, err)

	args, ok := db.Lookup(srcPath)
	require.True(t, ok)
	require.Equal(t, []string{"clang++", "-std=c++20", "b.cpp"}, args)
}

func TestLookupMissingEntryReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	content := `[{"directory": "` + dir + `", "file": "a.cpp", "arguments": ["clang++", "a.cpp"]}]`
	path := writeCompileCommands(t, dir, content)

	db, err := Load(path)
	require.NoError(t, err)

	_, ok := db.Lookup(filepath.Join(dir, "nonexistent.cpp"))
	require.False(t, ok)
}

func TestArgsReturnsNilWithoutError(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(filepath.Join(dir, "compile_commands.json"))
	require.NoError(t, err)
	require.Nil(t, db.Args(filepath.Join(dir, "missing.cpp")))
}

func TestReloadPicksUpChangedContent(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.cpp")
	path := writeCompileCommands(t, dir, `[]`)

	db, err := Load(path)
	require.NoError(t, err)
	_, ok := db.Lookup(srcPath)
	require.False(t, ok)

	content := `[{"directory": "` + dir + `", "file": "a.cpp", "arguments": ["clang++", "a.cpp"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, db.Reload())

	args, ok := db.Lookup(srcPath)
	require.True(t, ok)
	require.Equal(t, []string{"clang++", "a.cpp"}, args)
}

func TestWatcherReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.cpp")
	path := writeCompileCommands(t, dir, `[]`)

	db, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(db, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	content := `[{"directory": "` + dir + `", "file": "a.cpp", "arguments": ["clang++", "a.cpp"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.Eventually(t, func() bool {
		_, ok := db.Lookup(srcPath)
		return ok
	}, 2*time.Second, 20*time.Millisecond)
}
