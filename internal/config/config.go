// Package config loads the hire adapter configuration and resolves the
// XDG directories hire reads and writes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/dmora/hire"
)

// Adapter configures how one agent program is launched.
type Adapter struct {
	// Command is the executable name or path. Empty selects the agent id.
	Command string `json:"command,omitempty"`

	// Args are extra arguments inserted after the agent's fixed flags.
	Args []string `json:"args,omitempty"`
}

// Defaults holds fallbacks for omitted command-line values.
type Defaults struct {
	// Agent is used when no target is given.
	Agent string `json:"agent,omitempty"`
}

// Config is the decoded config file.
type Config struct {
	Adapters map[hire.Agent]Adapter `json:"adapters,omitempty"`
	Defaults Defaults               `json:"defaults"`
}

// Default returns the built-in configuration used when no config file
// exists. Every agent runs with its auto-approve flag.
func Default() Config {
	return Config{
		Adapters: map[hire.Agent]Adapter{
			hire.AgentClaude: {Command: "claude", Args: []string{"--dangerously-skip-permissions"}},
			hire.AgentCodex:  {Command: "codex", Args: []string{"--full-auto"}},
			hire.AgentGemini: {Command: "gemini", Args: []string{"-y"}},
		},
		Defaults: Defaults{Agent: string(hire.AgentClaude)},
	}
}

// Adapter returns the settings for agent. An agent missing from a loaded
// file gets the zero Adapter: its default executable and no extra args.
func (c Config) Adapter(agent hire.Agent) Adapter {
	a := c.Adapters[agent]
	a.Args = slices.Clone(a.Args)
	return a
}

// DefaultAgent returns the configured fallback target, possibly empty.
func (c Config) DefaultAgent() string { return c.Defaults.Agent }

// Load reads the config file at path. A missing file yields Default().
// An unreadable or malformed file is logged at warn level and also
// yields Default(). A nil logger discards.
func Load(path string, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("config unreadable, using defaults", "path", path, "err", err)
		}
		return Default()
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		logger.Warn("config malformed, using defaults", "path", path, "err", err)
		return Default()
	}
	logger.Debug("config loaded", "path", path, "adapters", len(c.Adapters))
	return c
}

// Save writes c to path with two-space indentation, creating the parent
// directory.
func Save(path string, c Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	return nil
}
