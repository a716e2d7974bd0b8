package cli

import (
	"log/slog"
	"time"
)

// Default engine configuration values.
const (
	defaultGracePeriod = 5 * time.Second
)

// EngineOptions holds resolved construction-time configuration for a CLI engine.
// Use NewEngine with EngineOption functions to customize these values.
type EngineOptions struct {
	// GracePeriod is the duration to wait after SIGTERM before sending SIGKILL.
	GracePeriod time.Duration

	// Logger receives debug records for each invocation.
	Logger *slog.Logger

	// Runner executes the built command. Nil selects an Invoker configured
	// with GracePeriod and Logger.
	Runner Runner
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*EngineOptions)

// WithGracePeriod sets the duration to wait after SIGTERM before sending SIGKILL.
// Values <= 0 are ignored.
func WithGracePeriod(d time.Duration) EngineOption {
	return func(o *EngineOptions) {
		if d > 0 {
			o.GracePeriod = d
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *EngineOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRunner replaces the process runner. Nil is ignored.
func WithRunner(r Runner) EngineOption {
	return func(o *EngineOptions) {
		if r != nil {
			o.Runner = r
		}
	}
}

func resolveEngineOptions(opts ...EngineOption) EngineOptions {
	o := EngineOptions{
		GracePeriod: defaultGracePeriod,
		Logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Runner == nil {
		o.Runner = &Invoker{GracePeriod: o.GracePeriod, Logger: o.Logger}
	}
	return o
}
