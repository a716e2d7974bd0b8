package codex

import (
	"os/exec"
	"slices"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// CLI subcommand and flag constants.
const (
	subcmdExec       = "exec"
	subcmdResume     = "resume"
	flagJSON         = "--json"
	flagSkipGitCheck = "--skip-git-repo-check"
	flagModel        = "--model"
)

const defaultBinary = "codex"

// lookPath resolves the executable. Replaced in tests.
var lookPath = exec.LookPath

// Backend is a Codex CLI backend for hire.
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

// WithBinary overrides the Codex CLI binary path.
// Empty values are ignored; the default is "codex".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// WithArgs sets extra global flags placed before the resume subcommand,
// typically "--full-auto" from the adapter config.
func WithArgs(args ...string) Option {
	return func(b *Backend) {
		b.args = slices.Clone(args)
	}
}

// New creates a Codex CLI backend with the given options.
// The default binary is "codex" with no extra arguments.
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Agent reports hire.AgentCodex.
func (b *Backend) Agent() hire.Agent { return hire.AgentCodex }

// BuildArgs builds the argv for one exec invocation. With a resume id the
// message follows "resume <id>"; otherwise it is the sole positional.
func (b *Backend) BuildArgs(req hire.Request) (string, []string) {
	args := make([]string, 0, 3+len(b.args)+5)
	args = append(args, subcmdExec, flagJSON, flagSkipGitCheck)
	args = append(args, b.args...)
	if req.Model != "" {
		args = append(args, flagModel, req.Model)
	}
	if req.ResumeID != "" {
		args = append(args, subcmdResume, req.ResumeID, req.Message)
	} else {
		args = append(args, req.Message)
	}
	return resolveBinary(b.binary), args
}

// resolveBinary returns the PATH-resolved location of name, or name itself
// when it cannot be resolved.
func resolveBinary(name string) string {
	if p, err := lookPath(name); err == nil {
		return p
	}
	return name
}
