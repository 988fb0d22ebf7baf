package rpc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxcomplete/internal/complete"
	"github.com/standardbeagle/cxcomplete/internal/fileid"
)

// fakeLibrary is a minimal complete.SemanticLibrary stand-in, local to
// this package since complete's own test fake is unexported.
type fakeLibrary struct{}

type fakeUnit struct{}

func (fakeLibrary) Parse(ctx context.Context, src complete.Source, unsaved []byte) (complete.Unit, error) {
	return &fakeUnit{}, nil
}
func (fakeLibrary) Reparse(ctx context.Context, u complete.Unit, unsaved []byte) error { return nil }
func (fakeLibrary) CodeCompleteAt(ctx context.Context, u complete.Unit, loc complete.Location, unsaved []byte, macros bool) (*complete.CompletionResults, error) {
	return &complete.CompletionResults{Results: []complete.RawResult{
		{Completion: "foo", Available: true, Priority: 1},
	}}, nil
}
func (fakeLibrary) Dispose(u complete.Unit) {}

type fakeArgs struct{}

func (fakeArgs) Args(path string) []string { return nil }

func testSocketPath(t *testing.T) string {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("cxcomplete-test-%s.sock", t.Name()))
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestServerCompletePrepareStatusDumpShutdown(t *testing.T) {
	engine := complete.New(complete.DefaultConfig(), fakeLibrary{})
	ids := fileid.NewTable()
	socketPath := testSocketPath(t)

	srv := NewServer(engine, ids, fakeArgs{}, socketPath)
	require.NoError(t, srv.Start())

	client := NewClient(socketPath)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Eventually(t, func() bool {
		return client.Ping(ctx) == nil
	}, 2*time.Second, 10*time.Millisecond)

	reply, err := client.Complete(ctx, "/a.cpp", 1, 1, 0, nil)
	require.NoError(t, err)
	require.Contains(t, string(reply), "foo")

	cached, err := client.Status(ctx, "/a.cpp")
	require.NoError(t, err)
	require.True(t, cached)

	require.NoError(t, client.Prepare(ctx, "/b.cpp", []byte("int x;")))

	report, err := client.Dump(ctx)
	require.NoError(t, err)
	require.Contains(t, report, "/a.cpp")

	require.NoError(t, client.Shutdown(ctx))
}
