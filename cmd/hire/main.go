// Command hire sends a prompt to a coding agent CLI (claude, codex or
// gemini), prints the answer and remembers the conversation so later
// prompts can continue it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr))
	stop()
	if err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes one command line against a.
func run(ctx context.Context, args []string, a *app) error {
	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// agentFailure is an agent run that failed after producing output.
type agentFailure struct {
	err error
	raw string
}

func (f *agentFailure) Error() string { return f.err.Error() }
func (f *agentFailure) Unwrap() error { return f.err }

// report prints err the way every hire command fails.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "hire: %v\n", err)
	var f *agentFailure
	if errors.As(err, &f) && f.raw != "" {
		fmt.Fprintf(w, "raw output:\n%s\n", f.raw)
	}
}
