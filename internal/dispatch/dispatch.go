// Package dispatch implements the hire ask flow: choosing the target
// agent, resolving which stored session to continue, running the agent and
// recording the turn in the session store.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmora/hire"
	"github.com/dmora/hire/internal/config"
	"github.com/dmora/hire/session"
)

// UnknownResumeID is stored when an agent reports no resume token. A
// session holding it is continued with a fresh agent conversation.
const UnknownResumeID = "unknown"

// stdinSeparator joins a message and piped input.
const stdinSeparator = "\n\n--- stdin ---\n"

// ErrAgentMismatch indicates an explicit target that differs from the
// agent owning the session being continued.
var ErrAgentMismatch = errors.New("dispatch: session belongs to a different agent")

// ErrNoTarget indicates no target was given and none is configured.
var ErrNoTarget = errors.New("dispatch: target agent is required (claude, codex, or gemini)")

// AskInput is one ask invocation as given on the command line.
type AskInput struct {
	Target   string // agent name; empty selects from the session or config
	Message  string
	Continue bool   // continue the latest session
	Session  string // name or id of the session to continue
	Name     string // name for the session
	Model    string
}

// Result is the outcome of a successful Ask.
type Result struct {
	Response hire.Response
	Session  session.Session
	Agent    hire.Agent
}

// Dispatcher runs asks against configured engines and records them.
type Dispatcher struct {
	store   *session.Store
	cfg     config.Config
	engines EngineFactory
	logger  *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEngineFactory replaces engine construction. Nil is ignored.
func WithEngineFactory(f EngineFactory) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.engines = f
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a Dispatcher over store using cfg for adapters and defaults.
func New(store *session.Store, cfg config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:   store,
		cfg:     cfg,
		engines: CLIEngines(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// plan is a resolved ask: which agent, which session to update, and
// which token to resume.
type plan struct {
	agent    hire.Agent
	existing *session.Session
	resumeID string
}

// Ask runs one turn. An agent failure returns the failed Response in the
// Result together with the error; the store is not touched.
func (d *Dispatcher) Ask(ctx context.Context, in AskInput) (Result, error) {
	p, err := d.resolve(in)
	if err != nil {
		return Result{}, err
	}
	if in.Message == "" {
		return Result{Agent: p.agent}, fmt.Errorf("%w: message is required", hire.ErrInvalidRequest)
	}

	eng, err := d.engines(p.agent, d.cfg.Adapter(p.agent))
	if err != nil {
		return Result{Agent: p.agent}, err
	}

	resp, err := eng.Ask(ctx, hire.ResolveOptions(
		hire.WithMessage(in.Message),
		hire.WithResumeID(p.resumeID),
		hire.WithModel(in.Model),
	))
	if err != nil {
		return Result{Response: resp, Agent: p.agent}, err
	}

	sess, err := d.record(p, resp, in.Name)
	if err != nil {
		return Result{Response: resp, Agent: p.agent}, err
	}
	return Result{Response: resp, Session: sess, Agent: p.agent}, nil
}

// resolve picks the agent and the session to continue.
//
//   - Session: continue that session; the target defaults to its agent.
//   - Name: a session with that name fixes the target, and is continued
//     only together with Continue. Otherwise a new session gets the name.
//   - Continue: the latest session for the target, or the most recently
//     updated session of any agent when no target is given.
//
// A target still empty afterwards comes from the config default.
func (d *Dispatcher) resolve(in AskInput) (plan, error) {
	var p plan
	if t := strings.TrimSpace(in.Target); t != "" {
		a, err := hire.ParseAgent(t)
		if err != nil {
			return plan{}, err
		}
		p.agent = a
	}

	switch {
	case in.Session != "":
		sess, ok, err := d.store.Find(in.Session)
		if err != nil {
			return plan{}, err
		}
		if !ok {
			return plan{}, fmt.Errorf("%w: %s", hire.ErrSessionNotFound, in.Session)
		}
		if err := p.adopt(sess); err != nil {
			return plan{}, err
		}

	case in.Name != "":
		sess, ok := d.store.FindByName(in.Name)
		if ok {
			if p.agent == "" {
				p.agent = sess.Agent
			}
			if in.Continue {
				if err := p.adopt(sess); err != nil {
					return plan{}, err
				}
			}
		}

	case in.Continue:
		sess, ok := d.latest(p.agent)
		if ok {
			if err := p.adopt(sess); err != nil {
				return plan{}, err
			}
		} else if p.agent != "" {
			d.logger.Warn("no previous session found, starting new session", "agent", p.agent)
		} else {
			d.logger.Warn("no previous session found, starting new session")
		}
	}

	if p.agent == "" {
		def := d.cfg.DefaultAgent()
		if def == "" {
			return plan{}, ErrNoTarget
		}
		a, err := hire.ParseAgent(def)
		if err != nil {
			return plan{}, fmt.Errorf("config default agent: %w", err)
		}
		p.agent = a
	}
	return p, nil
}

// adopt continues sess, inferring the agent when none was given.
func (p *plan) adopt(sess session.Session) error {
	if p.agent == "" {
		p.agent = sess.Agent
	}
	if p.agent != sess.Agent {
		return fmt.Errorf("%w: %s is a %s session", ErrAgentMismatch, sess.Label(), sess.Agent)
	}
	p.existing = &sess
	p.resumeID = sess.ResumeID
	if p.resumeID == UnknownResumeID {
		p.resumeID = ""
	}
	return nil
}

// latest returns the latest session for agent, or across all agents when
// agent is empty.
func (d *Dispatcher) latest(agent hire.Agent) (session.Session, bool) {
	if agent != "" {
		return d.store.Latest(agent)
	}
	all, err := d.store.List("")
	if err != nil || len(all) == 0 {
		return session.Session{}, false
	}
	return all[0], true
}

// record persists the turn: the continued session gets the new token (or
// keeps its own) and the optional new name; otherwise a session is created.
func (d *Dispatcher) record(p plan, resp hire.Response, name string) (session.Session, error) {
	if p.existing != nil {
		sess := *p.existing
		if resp.ResumeID != "" {
			sess.ResumeID = resp.ResumeID
		}
		if name != "" {
			sess.Name = name
		}
		if err := d.store.Save(&sess); err != nil {
			return session.Session{}, err
		}
		return sess, nil
	}

	token := resp.ResumeID
	if token == "" {
		token = UnknownResumeID
	}
	return d.store.Create(p.agent, token, name)
}

// SplitArgs interprets the ask positionals: [target] [message]. A single
// positional that is not a supported agent is the message.
func SplitArgs(args []string) (target, message string) {
	switch len(args) {
	case 0:
		return "", ""
	case 1:
		if hire.Agent(args[0]).Valid() {
			return args[0], ""
		}
		return "", args[0]
	default:
		return args[0], strings.Join(args[1:], " ")
	}
}

// BuildMessage combines the message argument with piped stdin. Stdin is
// trimmed; blank stdin is ignored.
func BuildMessage(message, stdin string) string {
	stdin = strings.TrimSpace(stdin)
	switch {
	case message != "" && stdin != "":
		return message + stdinSeparator + stdin
	case stdin != "":
		return stdin
	default:
		return message
	}
}
