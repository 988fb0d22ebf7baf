// Package config defines the daemon's tunables and loads them from an
// optional .cxcomplete.kdl file, the way internal/config in the teacher
// repo layers a KDL file under CLI-flag overrides.
package config

import (
	"os"
)

// Config holds every tunable of the completion daemon.
type Config struct {
	Version int

	Project Project
	Cache   Cache
	Server  Server
}

// Project describes the indexed source tree.
type Project struct {
	Root               string
	CompileCommandsDir string // directory holding compile_commands.json (no upward search)
}

// Cache controls the two LRUs owned by the completion engine.
type Cache struct {
	TranslationUnitSize int // max number of parsed translation units kept resident
	CompletionsPerFile  int // max number of cached (file, location) answers per file
}

// Server controls the RPC listener.
type Server struct {
	SocketPath string // empty means derive from Project.Root
}

// Default returns the baseline configuration used when no .cxcomplete.kdl
// file is present.
func Default() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Version: 1,
		Project: Project{
			Root:               root,
			CompileCommandsDir: root,
		},
		Cache: Cache{
			TranslationUnitSize: 10,
			CompletionsPerFile:  10,
		},
		Server: Server{},
	}
}

// Load reads .cxcomplete.kdl from configPath if present, falling back to
// Default() otherwise. CLI-flag overrides are applied by the caller after
// Load returns, mirroring cmd/lci's loadConfigWithOverrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	if err := applyKDL(cfg, string(content)); err != nil {
		return nil, err
	}
	return cfg, nil
}
