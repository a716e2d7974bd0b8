package cli

import (
	"context"

	"github.com/dmora/hire"
)

// Builder constructs the argv for one agent invocation.
// Implementations are pure: they never start processes or touch the
// filesystem beyond resolving the executable.
type Builder interface {
	// BuildArgs returns the executable and its arguments for req.
	BuildArgs(req hire.Request) (binary string, args []string)
}

// Parser normalizes the captured output of one agent run.
// prior is the resume token the request was made with; parsers fall back
// to it when the agent reports none.
type Parser interface {
	Parse(out Output, prior string) hire.Response
}

// Backend is the full contract a per-agent package provides.
type Backend interface {
	Builder
	Parser

	// Agent reports which agent program this backend drives.
	Agent() hire.Agent
}

// Runner executes a built command and captures its output.
// [Invoker] is the production implementation; tests substitute stubs.
type Runner interface {
	// Run executes binary with args and blocks until it exits.
	// A non-zero exit is reported through Output.ExitCode with a nil
	// error. Launch failures return an error wrapping hire.ErrUnavailable.
	Run(ctx context.Context, binary string, args []string) (Output, error)
}

// Output is the captured result of one finished child process.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the process exited with status zero.
func (o Output) Succeeded() bool { return o.ExitCode == 0 }
