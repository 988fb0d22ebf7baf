// Command cxcompleted is the completion daemon: one process per indexed
// project root, holding the translation-unit cache and serving
// completions over a project-specific Unix socket until told to stop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cxcomplete/internal/clangidx"
	"github.com/standardbeagle/cxcomplete/internal/complete"
	"github.com/standardbeagle/cxcomplete/internal/config"
	"github.com/standardbeagle/cxcomplete/internal/debug"
	"github.com/standardbeagle/cxcomplete/internal/fileid"
	"github.com/standardbeagle/cxcomplete/internal/flagsdb"
	"github.com/standardbeagle/cxcomplete/internal/rpc"
	"github.com/standardbeagle/cxcomplete/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "cxcompleted",
		Usage:                  "Background code-completion daemon for cxcomplete",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   ".cxcomplete.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
			&cli.StringFlag{
				Name:  "compile-commands",
				Usage: "Path to compile_commands.json (defaults to <root>/compile_commands.json)",
			},
			&cli.StringFlag{
				Name:  "socket",
				Usage: "Unix socket path (defaults to a project-derived path)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write a timestamped debug log under the OS temp directory",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cxcompleted:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		debug.EnableDebug = "true"
		path, err := debug.InitLogFile()
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer debug.CloseLogFile()
		fmt.Fprintf(os.Stderr, "cxcompleted: debug log at %s\n", path)
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ccPath := c.String("compile-commands")
	if ccPath == "" {
		ccPath = filepath.Join(cfg.Project.CompileCommandsDir, "compile_commands.json")
	}
	db, err := flagsdb.Load(ccPath)
	if err != nil {
		return fmt.Errorf("load compilation database: %w", err)
	}
	watcher, err := flagsdb.NewWatcher(db, 200*time.Millisecond)
	if err != nil {
		return fmt.Errorf("watch compilation database: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("start compilation database watcher: %w", err)
	}
	defer watcher.Stop()

	engineCfg := complete.DefaultConfig()
	engineCfg.Cache.TranslationUnitSize = cfg.Cache.TranslationUnitSize
	engineCfg.Cache.CompletionsPerFile = cfg.Cache.CompletionsPerFile

	lib := clangidx.New()
	engine := complete.New(engineCfg, lib)
	ids := fileid.NewTable()

	socketPath := c.String("socket")
	if socketPath == "" {
		socketPath = cfg.Server.SocketPath
	}
	if socketPath == "" {
		socketPath = rpc.SocketPath(cfg.Project.Root)
	}

	srv := rpc.NewServer(engine, ids, db, socketPath)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start rpc server: %w", err)
	}

	fmt.Printf("cxcompleted started\n")
	fmt.Printf("root:   %s\n", cfg.Project.Root)
	fmt.Printf("socket: %s\n", socketPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	fmt.Printf("\ncxcompleted: received %v, shutting down\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("cxcompleted: stopped cleanly")
	return nil
}

// loadConfigWithOverrides loads .cxcomplete.kdl and applies CLI flag
// overrides, mirroring cmd/lci's loadConfigWithOverrides.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	if rootFlag := c.String("root"); rootFlag != "" && configPath == ".cxcomplete.kdl" {
		if candidate := filepath.Join(rootFlag, ".cxcomplete.kdl"); fileExists(candidate) {
			configPath = candidate
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", configPath, err)
	}

	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
		cfg.Project.CompileCommandsDir = absRoot
	}

	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
