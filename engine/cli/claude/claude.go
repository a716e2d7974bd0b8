package claude

import (
	"slices"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// CLI flag constants.
const (
	flagPrint        = "-p"
	flagOutputFormat = "--output-format"
	flagResume       = "--resume"
	flagModel        = "--model"
	outputFormatJSON = "json"
)

const defaultBinary = "claude"

// Backend is a Claude Code CLI backend for hire.
// It implements cli.Builder and cli.Parser.
type Backend struct {
	binary string
	args   []string
}

// Compile-time interface satisfaction checks.
var (
	_ cli.Backend = (*Backend)(nil)
	_ cli.Builder = (*Backend)(nil)
	_ cli.Parser  = (*Backend)(nil)
)

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBinary overrides the Claude CLI binary path.
// Empty values are ignored; the default is "claude".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// WithArgs sets extra arguments placed after the output-format flags,
// typically permission flags from the adapter config.
func WithArgs(args ...string) Option {
	return func(b *Backend) {
		b.args = slices.Clone(args)
	}
}

// New creates a Claude Code CLI backend with the given options.
// The default binary is "claude" with no extra arguments.
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Agent reports hire.AgentClaude.
func (b *Backend) Agent() hire.Agent { return hire.AgentClaude }

// BuildArgs builds the argv for one print-mode invocation.
// The message is the value of -p; --resume and --model follow the extra
// arguments and appear only when set.
func (b *Backend) BuildArgs(req hire.Request) (string, []string) {
	args := make([]string, 0, 4+len(b.args)+4)
	args = append(args, flagPrint, req.Message, flagOutputFormat, outputFormatJSON)
	args = append(args, b.args...)
	if req.ResumeID != "" {
		args = append(args, flagResume, req.ResumeID)
	}
	if req.Model != "" {
		args = append(args, flagModel, req.Model)
	}
	return b.binary, args
}
