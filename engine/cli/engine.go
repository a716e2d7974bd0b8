package cli

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli/internal/jsonutil"
	"github.com/dmora/hire/engine/internal/errfmt"
)

// Engine is a CLI subprocess engine that adapts a Backend into a hire.Engine.
type Engine struct {
	backend Backend
	opts    EngineOptions
}

// Compile-time interface satisfaction check.
var _ hire.Engine = (*Engine)(nil)

// NewEngine creates a CLI engine backed by the given Backend.
// Use EngineOption functions to customize the grace period, logger and runner.
func NewEngine(backend Backend, opts ...EngineOption) *Engine {
	return &Engine{
		backend: backend,
		opts:    resolveEngineOptions(opts...),
	}
}

// Agent reports the backend's agent.
func (e *Engine) Agent() hire.Agent { return e.backend.Agent() }

// Validate checks that the backend's binary is available on PATH.
// It recovers from panics in BuildArgs.
func (e *Engine) Validate() (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w: BuildArgs panicked: %v", hire.ErrUnavailable, r)
		}
	}()

	binary, _ := e.backend.BuildArgs(hire.Request{})
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w: %s: %w", hire.ErrUnavailable, binary, err)
	}
	return nil
}

// Ask runs req against the backend's agent and returns the parsed response.
//
// A non-zero exit returns the parser's failure Response together with a
// *hire.ExitError. A launch failure or cancellation returns a Response
// whose Error describes it, with ResumeID preserved from req.
func (e *Engine) Ask(ctx context.Context, req hire.Request) (hire.Response, error) {
	if err := validateRequest(req); err != nil {
		return hire.Response{ResumeID: req.ResumeID, Error: err.Error()}, err
	}

	binary, args := e.backend.BuildArgs(req)
	log := e.opts.Logger.With("agent", e.backend.Agent())
	log.Debug("invoking agent", "binary", binary, "args", len(args), "resume", req.ResumeID != "")

	out, err := e.opts.Runner.Run(ctx, binary, args)
	if err != nil {
		return hire.Response{ResumeID: req.ResumeID, Raw: out.Stdout, Error: err.Error()},
			fmt.Errorf("ask %s: %w", e.backend.Agent(), err)
	}

	resp := e.backend.Parse(out, req.ResumeID)
	if !out.Succeeded() {
		log.Debug("agent failed", "exit_code", out.ExitCode)
		return resp, fmt.Errorf("ask %s: %w", e.backend.Agent(), &hire.ExitError{
			Code:   out.ExitCode,
			Stderr: errfmt.Truncate(resp.Error),
		})
	}
	return resp, nil
}

// validateRequest rejects requests no agent can accept as argv.
func validateRequest(req hire.Request) error {
	if req.Message == "" {
		return fmt.Errorf("%w: empty message", hire.ErrInvalidRequest)
	}
	for _, f := range []struct{ name, value string }{
		{"message", req.Message},
		{"resume id", req.ResumeID},
		{"model", req.Model},
	} {
		if jsonutil.ContainsNull(f.value) {
			return fmt.Errorf("%w: %s contains null bytes", hire.ErrInvalidRequest, f.name)
		}
	}
	return nil
}

// FailureResponse is the Response every parser returns for a non-zero exit:
// the stderr diagnostic as Error, no text, and the prior resume token.
func FailureResponse(out Output, prior string) hire.Response {
	return hire.Response{
		ResumeID: prior,
		Raw:      out.Stdout,
		Error:    errfmt.Diagnostic(out.Stderr, hire.DefaultErrorText),
	}
}
