package dispatch

import (
	"fmt"
	"os/exec"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
	"github.com/dmora/hire/engine/cli/claude"
	"github.com/dmora/hire/engine/cli/codex"
	"github.com/dmora/hire/engine/cli/gemini"
	"github.com/dmora/hire/internal/config"
)

// NewBackend returns the backend for agent configured with adapter.
func NewBackend(agent hire.Agent, adapter config.Adapter) (cli.Backend, error) {
	switch agent {
	case hire.AgentClaude:
		return claude.New(claude.WithBinary(adapter.Command), claude.WithArgs(adapter.Args...)), nil
	case hire.AgentCodex:
		return codex.New(codex.WithBinary(adapter.Command), codex.WithArgs(adapter.Args...)), nil
	case hire.AgentGemini:
		return gemini.New(gemini.WithBinary(adapter.Command), gemini.WithArgs(adapter.Args...)), nil
	default:
		return nil, fmt.Errorf("%w: %q", hire.ErrUnknownAgent, agent)
	}
}

// EngineFactory builds the engine that serves one agent.
type EngineFactory func(agent hire.Agent, adapter config.Adapter) (hire.Engine, error)

// CLIEngines returns an EngineFactory producing cli.Engine values with
// the given options.
func CLIEngines(opts ...cli.EngineOption) EngineFactory {
	return func(agent hire.Agent, adapter config.Adapter) (hire.Engine, error) {
		b, err := NewBackend(agent, adapter)
		if err != nil {
			return nil, err
		}
		return cli.NewEngine(b, opts...), nil
	}
}

// AgentStatus is the availability of one agent program.
type AgentStatus struct {
	Agent  hire.Agent
	Binary string // configured executable
	Path   string // resolved location; empty when unavailable
	Err    error
}

// Check reports, for every supported agent, whether its configured
// executable can be launched.
func Check(cfg config.Config) []AgentStatus {
	out := make([]AgentStatus, 0, len(hire.Agents()))
	for _, a := range hire.Agents() {
		adapter := cfg.Adapter(a)
		st := AgentStatus{Agent: a, Binary: adapter.Command}
		if st.Binary == "" {
			st.Binary = string(a)
		}
		b, err := NewBackend(a, adapter)
		if err != nil {
			st.Err = err
			out = append(out, st)
			continue
		}
		if st.Err = cli.NewEngine(b).Validate(); st.Err == nil {
			bin, _ := b.BuildArgs(hire.Request{})
			st.Path, _ = exec.LookPath(bin)
		}
		out = append(out, st)
	}
	return out
}
