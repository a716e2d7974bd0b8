// Package hire dispatches prompts to external command-line AI agents and
// keeps conversation continuity across invocations.
//
// The root package defines the shared vocabulary used by every backend and
// by the session store:
//
//   - [Agent] identifies one of the supported agent programs
//   - [Request] is a single prompt, built from [Option] values
//   - [Response] is the normalized result of one agent invocation
//   - [Engine] runs a [Request] against one agent
//
// Backends translate this vocabulary into their own wire format. Agent
// specific concepts (flag spellings, output encodings, resume sentinels)
// stay in their respective packages under engine/cli.
//
// # Quick Start
//
//	engine := cli.NewEngine(codex.New())
//	resp, err := engine.Ask(ctx, hire.ResolveOptions(
//	    hire.WithMessage("Design a REST API"),
//	))
//	if err != nil { log.Fatal(err) }
//	fmt.Println(resp.Text)
//	// resp.ResumeID continues the conversation on the next call.
package hire

import "context"

// Engine runs one prompt against one agent program.
//
// Implementations block for the full duration of the agent run. Use
// Validate to check that the agent's prerequisites are met before Ask.
type Engine interface {
	// Agent reports which agent this engine drives.
	Agent() Agent

	// Ask sends req to the agent and returns its normalized response.
	// A non-zero agent exit returns the populated Response together with
	// an *ExitError.
	Ask(ctx context.Context, req Request) (Response, error)

	// Validate checks that the agent binary is available.
	Validate() error
}
