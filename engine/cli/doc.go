// Package cli provides the subprocess transport for hire engines.
//
// A Backend implements [Builder] and [Parser] to define how an agent program
// is invoked and how its captured output is normalized into a
// [hire.Response]. Backends never run processes themselves.
//
// [NewEngine] wraps a Backend into a [hire.Engine]. The returned [Engine]
// validates the request, builds the argv, runs it through a [Runner] (the
// default is [Invoker]) and hands the captured [Output] to the parser.
//
// # Process Lifecycle
//
// Each Ask spawns one child and blocks until it exits. The child inherits
// the environment and working directory, reads nothing from stdin, and has
// stdout and stderr captured in full. On Unix the child leads its own
// process group; cancelling the context sends SIGTERM to the group and,
// after the grace period, SIGKILL.
//
// Concrete backends (claude, codex, gemini) implement the Backend interface.
package cli
