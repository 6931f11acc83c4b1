// Package config loads the agent's YAML extend configuration. This is
// deliberately a thin file-to-document wrapper (spec.md §1, "trivial"):
// all semantics live in internal/probe.Extend.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExtendEntry is one named shell-command probe (spec.md §3 "Probe
// configuration (extend)"). Args defaults to an empty slice when omitted.
type ExtendEntry struct {
	Cmd  string   `yaml:"cmd"`
	Args []string `yaml:"args"`
}

// Document is the top-level YAML document: a single `extend:` mapping.
type Document struct {
	Extend map[string]ExtendEntry `yaml:"extend"`
}

// Load reads and parses path. Both a missing file and a YAML parse error
// are fatal at startup (spec.md §7 "Config load errors").
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if doc.Extend == nil {
		doc.Extend = make(map[string]ExtendEntry)
	}
	return &doc, nil
}
