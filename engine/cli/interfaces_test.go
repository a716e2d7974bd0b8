package cli_test

import (
	"context"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// Compile-time interface satisfaction checks.
// These fail the build if any signature drifts.

type stubBuilder struct{}

func (stubBuilder) BuildArgs(_ hire.Request) (string, []string) { return "", nil }

var _ cli.Builder = stubBuilder{}

type stubParser struct{}

func (stubParser) Parse(_ cli.Output, _ string) hire.Response { return hire.Response{} }

var _ cli.Parser = stubParser{}

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, _ string, _ []string) (cli.Output, error) {
	return cli.Output{}, nil
}

var _ cli.Runner = stubRunner{}

var _ cli.Runner = (*cli.Invoker)(nil)

var _ hire.Engine = (*cli.Engine)(nil)
