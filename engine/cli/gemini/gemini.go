package gemini

import (
	"os/exec"
	"slices"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// CLI flag constants.
const (
	flagPrompt       = "-p"
	flagOutput       = "-o"
	flagResume       = "-r"
	flagModel        = "-m"
	outputFormatJSON = "json"
)

// LatestSession is the resume token that selects the most recent
// conversation.
const LatestSession = "latest"

const defaultBinary = "gemini"

// lookPath resolves the executable. Replaced in tests.
var lookPath = exec.LookPath

// Backend is a Gemini CLI backend for hire.
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

// WithBinary overrides the Gemini CLI binary path.
// Empty values are ignored; the default is "gemini".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// WithArgs sets extra arguments placed after the output flag,
// typically "-y" from the adapter config.
func WithArgs(args ...string) Option {
	return func(b *Backend) {
		b.args = slices.Clone(args)
	}
}

// New creates a Gemini CLI backend with the given options.
// The default binary is "gemini" with no extra arguments.
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Agent reports hire.AgentGemini.
func (b *Backend) Agent() hire.Agent { return hire.AgentGemini }

// BuildArgs builds the argv for one non-interactive invocation.
// The resume token may be LatestSession.
func (b *Backend) BuildArgs(req hire.Request) (string, []string) {
	args := make([]string, 0, 4+len(b.args)+4)
	args = append(args, flagPrompt, req.Message, flagOutput, outputFormatJSON)
	args = append(args, b.args...)
	if req.ResumeID != "" {
		args = append(args, flagResume, req.ResumeID)
	}
	if req.Model != "" {
		args = append(args, flagModel, req.Model)
	}
	return resolveBinary(b.binary), args
}

func resolveBinary(name string) string {
	if p, err := lookPath(name); err == nil {
		return p
	}
	return name
}
