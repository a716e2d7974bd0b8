package hire

import (
	"fmt"
	"strings"
)

// Agent identifies an external agent program. The identifier doubles as
// the default executable name and as the storage partition for sessions.
type Agent string

const (
	// AgentClaude is the Claude Code CLI.
	AgentClaude Agent = "claude"

	// AgentCodex is the OpenAI Codex CLI.
	AgentCodex Agent = "codex"

	// AgentGemini is the Gemini CLI.
	AgentGemini Agent = "gemini"
)

// Agents returns the supported agents in display order.
func Agents() []Agent {
	return []Agent{AgentClaude, AgentCodex, AgentGemini}
}

// Valid reports whether a is a supported agent.
func (a Agent) Valid() bool {
	switch a {
	case AgentClaude, AgentCodex, AgentGemini:
		return true
	}
	return false
}

func (a Agent) String() string { return string(a) }

// ParseAgent converts s into an Agent. Unknown names return an error
// wrapping ErrUnknownAgent that lists the valid choices.
func ParseAgent(s string) (Agent, error) {
	a := Agent(strings.TrimSpace(s))
	if a.Valid() {
		return a, nil
	}
	names := make([]string, 0, len(Agents()))
	for _, v := range Agents() {
		names = append(names, string(v))
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownAgent, s, strings.Join(names, ", "))
}
