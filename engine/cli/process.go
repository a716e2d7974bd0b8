package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dmora/hire"
)

// Invoker runs agent programs as child processes. The zero value is ready
// to use.
type Invoker struct {
	// GracePeriod is the delay between SIGTERM and SIGKILL once the
	// context is cancelled. Zero selects the default of 5s.
	GracePeriod time.Duration

	// Logger receives debug records. Nil discards.
	Logger *slog.Logger
}

var _ Runner = (*Invoker)(nil)

// Run executes binary with args, capturing stdout and stderr.
func (inv *Invoker) Run(ctx context.Context, binary string, args []string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, fmt.Errorf("cli: %s: %w", binary, err)
	}

	grace := inv.GracePeriod
	if grace <= 0 {
		grace = defaultGracePeriod
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = grace
	configureProcessGroup(cmd)

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}
	if cmd.Process != nil {
		reapProcessGroup(cmd, ctx.Err() != nil)
	}

	inv.logger().Debug("agent exited",
		"binary", binary,
		"elapsed", time.Since(start),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
	)

	if cerr := ctx.Err(); cerr != nil {
		out.ExitCode = exitCodeOf(err)
		return out, fmt.Errorf("cli: %s: %w", binary, cerr)
	}
	if err == nil {
		return out, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		out.ExitCode = ee.ExitCode()
		return out, nil
	}
	return out, fmt.Errorf("%w: %s: %w", hire.ErrUnavailable, binary, err)
}

func (inv *Invoker) logger() *slog.Logger {
	if inv.Logger != nil {
		return inv.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// exitCodeOf returns the exit status carried by err, -1 when the process
// did not exit normally, and 0 for a nil error.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
