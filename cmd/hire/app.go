package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmora/hire/engine/cli"
	"github.com/dmora/hire/internal/clipboard"
	"github.com/dmora/hire/internal/config"
	"github.com/dmora/hire/internal/dispatch"
	"github.com/dmora/hire/session"
)

// app holds the process boundary so commands can run against buffers.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// stdinTTY reports whether stdin is an interactive terminal.
	stdinTTY func() bool
	// engines overrides agent engine construction. Nil uses the CLI engines.
	engines dispatch.EngineFactory
	copy    func(ctx context.Context, text string) error

	verbose bool
	logger  *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		copy:   clipboard.Copy,
		logger: slog.New(slog.DiscardHandler),
	}
	a.stdinTTY = func() bool {
		f, ok := a.stdin.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
	return a
}

func (a *app) rootCmd() *cobra.Command {
	var opts askOptions
	root := &cobra.Command{
		Use:   "hire [flags] [target] <message>",
		Short: "Hire AI agents to do tasks (Claude, Codex, Gemini)",
		Long: `hire sends a message to the claude, codex or gemini CLI and prints
the answer. Every conversation is stored as a session that later
messages can continue with -c, -s or -n.

Piped stdin is appended to the message.`,
		Example: `  hire codex "Design a REST API"
  hire gemini "Research React 19 features" --json
  hire -s abc123 "Tell me more"
  git diff | hire claude "Review this change"
  hire sessions codex`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ask(cmd, args, opts)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	applyAskFlags(root.Flags(), &opts)

	root.AddCommand(
		a.sessionsCmd(),
		a.showCmd(),
		a.deleteCmd(),
		a.doctorCmd(),
		a.versionCmd(),
	)
	return root
}

// loadConfig reads the config file, falling back to the defaults.
func (a *app) loadConfig() (config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path, a.logger), nil
}

// openStore opens the session store under the data directory.
func (a *app) openStore() (*session.Store, error) {
	dir, err := config.SessionsDir()
	if err != nil {
		return nil, err
	}
	return session.NewStore(dir, session.WithLogger(a.logger)), nil
}

func (a *app) dispatcher(store *session.Store, cfg config.Config) *dispatch.Dispatcher {
	engines := a.engines
	if engines == nil {
		engines = dispatch.CLIEngines(cli.WithLogger(a.logger))
	}
	return dispatch.New(store, cfg,
		dispatch.WithEngineFactory(engines),
		dispatch.WithLogger(a.logger),
	)
}

// readStdin returns piped input, or "" when stdin is a terminal.
func (a *app) readStdin() (string, error) {
	if a.stdin == nil || a.stdinTTY() {
		return "", nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
