// Command cxcompletectl is a thin client for a running cxcompleted
// daemon: it resolves the daemon's socket for the current project root
// and issues one RPC per invocation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cxcomplete/internal/complete"
	"github.com/standardbeagle/cxcomplete/internal/rpc"
	"github.com/standardbeagle/cxcomplete/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "cxcompletectl",
		Usage:                  "Client for the cxcompleted code-completion daemon",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (determines the daemon socket)",
			},
			&cli.StringFlag{
				Name:  "socket",
				Usage: "Unix socket path (overrides --root resolution)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "RPC timeout",
				Value: 10 * time.Second,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Request completions at path:line:col",
				ArgsUsage: "path:line:col",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "refresh", Usage: "Force re-parsing even if the cache is current"},
					&cli.BoolFlag{Name: "macros", Usage: "Include macro completions"},
					&cli.StringFlag{Name: "encoding", Usage: "plain, elisp, xml, or json", Value: "plain"},
					&cli.StringFlag{Name: "unsaved", Usage: "Path to unsaved buffer contents (- for stdin); defaults to reading the file from disk"},
				},
				Action: completeCommand,
			},
			{
				Name:      "prepare",
				Usage:     "Warm the translation-unit cache for path without requesting completions",
				ArgsUsage: "path",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "unsaved", Usage: "Path to unsaved buffer contents (- for stdin)"},
				},
				Action: prepareCommand,
			},
			{
				Name:      "status",
				Usage:     "Report whether path has a cached translation unit",
				ArgsUsage: "path",
				Action:    statusCommand,
			},
			{
				Name:   "dump",
				Usage:  "Print the daemon's cache report",
				Action: dumpCommand,
			},
			{
				Name:   "shutdown",
				Usage:  "Ask the daemon to stop",
				Action: shutdownCommand,
			},
			{
				Name:   "ping",
				Usage:  "Check whether the daemon is reachable",
				Action: pingCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cxcompletectl:", err)
		os.Exit(1)
	}
}

func resolveSocket(c *cli.Context) (string, error) {
	if s := c.String("socket"); s != "" {
		return s, nil
	}
	root := c.String("root")
	if root == "" {
		root, _ = os.Getwd()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	return rpc.SocketPath(absRoot), nil
}

func newClient(c *cli.Context) (*rpc.Client, context.Context, context.CancelFunc, error) {
	socketPath, err := resolveSocket(c)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	return rpc.NewClient(socketPath), ctx, cancel, nil
}

func readUnsaved(flag string, diskPath string) ([]byte, error) {
	switch flag {
	case "":
		return os.ReadFile(diskPath)
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(flag)
	}
}

func encodingFlags(name string) complete.Flags {
	switch name {
	case "elisp":
		return complete.Elisp
	case "xml":
		return complete.XML
	case "json":
		return complete.JSON
	default:
		return 0
	}
}

func completeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: cxcompletectl complete path:line:col", 1)
	}
	loc, err := complete.ParseLocation(c.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("bad location: %v", err), 1)
	}

	unsaved, err := readUnsaved(c.String("unsaved"), loc.Path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("read unsaved buffer: %v", err), 1)
	}

	var flags complete.Flags
	flags |= encodingFlags(c.String("encoding"))
	if c.Bool("refresh") {
		flags |= complete.Refresh
	}
	if c.Bool("macros") {
		flags |= complete.IncludeMacros
	}

	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	reply, err := client.Complete(ctx, loc.Path, loc.Line, loc.Column, uint8(flags), unsaved)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	os.Stdout.Write(reply)
	return nil
}

func prepareCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: cxcompletectl prepare path", 1)
	}
	path := c.Args().Get(0)

	unsaved, err := readUnsaved(c.String("unsaved"), path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("read unsaved buffer: %v", err), 1)
	}

	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.Prepare(ctx, path, unsaved); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: cxcompletectl status path", 1)
	}
	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	cached, err := client.Status(ctx, c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if cached {
		fmt.Println("cached")
	} else {
		fmt.Println("not cached")
	}
	return nil
}

func dumpCommand(c *cli.Context) error {
	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	report, err := client.Dump(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Print(report)
	return nil
}

func shutdownCommand(c *cli.Context) error {
	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.Shutdown(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Println("shutdown requested")
	return nil
}

func pingCommand(c *cli.Context) error {
	client, ctx, cancel, err := newClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Println("ok")
	return nil
}
