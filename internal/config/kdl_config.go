package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// applyKDL parses a .cxcomplete.kdl document and overlays its values onto
// cfg. Unrecognized nodes are ignored so older config files keep loading
// after new fields are added, the pattern the teacher's kdl_config.go
// follows for its much larger node set.
//
// Example:
//
//	version 1
//	project {
//	    root "."
//	    compile-commands-dir "build"
//	}
//	cache {
//	    translation-unit-size 20
//	    completions-per-file 15
//	}
//	server {
//	    socket-path "/tmp/myproj.sock"
//	}
func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("parse kdl config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "project":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "root":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.Root = s
					}
				case "compile-commands-dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Project.CompileCommandsDir = s
					}
				}
			}
		case "cache":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "translation-unit-size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Cache.TranslationUnitSize = v
					}
				case "completions-per-file":
					if v, ok := firstIntArg(cn); ok {
						cfg.Cache.CompletionsPerFile = v
					}
				}
			}
		case "server":
			for _, cn := range n.Children {
				if nodeName(cn) == "socket-path" {
					if s, ok := firstStringArg(cn); ok {
						cfg.Server.SocketPath = s
					}
				}
			}
		}
	}

	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
