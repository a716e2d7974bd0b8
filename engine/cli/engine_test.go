//go:build !windows

package cli_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// ---------------------------------------------------------------------------
// Stub backends (function-field injection)
// ---------------------------------------------------------------------------

type testBackend struct {
	buildFn func(hire.Request) (string, []string)
	parseFn func(cli.Output, string) hire.Response
}

func (b *testBackend) Agent() hire.Agent { return hire.AgentClaude }

func (b *testBackend) BuildArgs(req hire.Request) (string, []string) { return b.buildFn(req) }

func (b *testBackend) Parse(out cli.Output, prior string) hire.Response {
	return b.parseFn(out, prior)
}

// textParse returns trimmed stdout as text, or the failure response.
func textParse(out cli.Output, prior string) hire.Response {
	if !out.Succeeded() {
		return cli.FailureResponse(out, prior)
	}
	return hire.Response{Text: strings.TrimSpace(out.Stdout), ResumeID: prior, Raw: out.Stdout}
}

// shBackend runs script through /bin/sh with the message as $1.
func shBackend(script string) *testBackend {
	return &testBackend{
		buildFn: func(req hire.Request) (string, []string) {
			return binSh, []string{"-c", script, "agent", req.Message}
		},
		parseFn: textParse,
	}
}

type recordingRunner struct {
	binary string
	args   []string
	out    cli.Output
	err    error
	calls  int
}

func (r *recordingRunner) Run(_ context.Context, binary string, args []string) (cli.Output, error) {
	r.calls++
	r.binary = binary
	r.args = args
	return r.out, r.err
}

// ---------------------------------------------------------------------------
// Validate tests
// ---------------------------------------------------------------------------

func TestValidate_Found(t *testing.T) {
	eng := cli.NewEngine(shBackend("true"))
	if err := eng.Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidate_NotFound(t *testing.T) {
	b := &testBackend{
		buildFn: func(hire.Request) (string, []string) { return "nonexistent-binary-xyz-999", nil },
		parseFn: textParse,
	}
	err := cli.NewEngine(b).Validate()
	if !errors.Is(err, hire.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestValidate_PanicRecovery(t *testing.T) {
	b := &testBackend{
		buildFn: func(hire.Request) (string, []string) { panic("boom") },
		parseFn: textParse,
	}
	err := cli.NewEngine(b).Validate()
	if !errors.Is(err, hire.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("expected panic message, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Ask tests
// ---------------------------------------------------------------------------

func TestAsk_Success(t *testing.T) {
	eng := cli.NewEngine(shBackend(`printf 'echo: %s\n' "$1"`))
	resp, err := eng.Ask(testCtx(t), hire.ResolveOptions(
		hire.WithMessage("hello"),
		hire.WithResumeID("S1"),
	))
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Text != "echo: hello" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.ResumeID != "S1" {
		t.Errorf("ResumeID = %q, want S1", resp.ResumeID)
	}
	if resp.Failed() {
		t.Errorf("unexpected failure: %q", resp.Error)
	}
}

func TestAsk_NonZeroExit(t *testing.T) {
	eng := cli.NewEngine(shBackend(`echo out; echo "rate limited" >&2; exit 2`))
	resp, err := eng.Ask(testCtx(t), hire.Request{Message: "hi", ResumeID: "S1"})
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *hire.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *hire.ExitError", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Code = %d, want 2", exitErr.Code)
	}
	if exitErr.Stderr != "rate limited" {
		t.Errorf("Stderr = %q", exitErr.Stderr)
	}
	if resp.Error != "rate limited" || resp.Text != "" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.ResumeID != "S1" {
		t.Errorf("ResumeID = %q, want prior token", resp.ResumeID)
	}
	if resp.Raw != "out\n" {
		t.Errorf("Raw = %q, want stdout preserved", resp.Raw)
	}
}

func TestAsk_NonZeroExitNoStderr(t *testing.T) {
	eng := cli.NewEngine(shBackend(`exit 1`))
	resp, err := eng.Ask(testCtx(t), hire.Request{Message: "hi"})
	if code, ok := hire.ExitCode(err); !ok || code != 1 {
		t.Fatalf("ExitCode = (%d, %v), want (1, true)", code, ok)
	}
	if resp.Error != hire.DefaultErrorText {
		t.Errorf("Error = %q, want %q", resp.Error, hire.DefaultErrorText)
	}
}

func TestAsk_Unavailable(t *testing.T) {
	b := &testBackend{
		buildFn: func(hire.Request) (string, []string) { return "nonexistent-binary-xyz-999", nil },
		parseFn: textParse,
	}
	resp, err := cli.NewEngine(b).Ask(testCtx(t), hire.Request{Message: "hi", ResumeID: "S1"})
	if !errors.Is(err, hire.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if resp.ResumeID != "S1" || resp.Error == "" {
		t.Errorf("resp = %+v, want prior token and error text", resp)
	}
}

func TestAsk_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  hire.Request
	}{
		{"empty_message", hire.Request{}},
		{"null_message", hire.Request{Message: "a\x00b"}},
		{"null_resume", hire.Request{Message: "ok", ResumeID: "S\x00"}},
		{"null_model", hire.Request{Message: "ok", Model: "\x00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingRunner{}
			eng := cli.NewEngine(shBackend("true"), cli.WithRunner(r))
			_, err := eng.Ask(testCtx(t), tt.req)
			if !errors.Is(err, hire.ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
			if r.calls != 0 {
				t.Errorf("runner called %d times, want 0", r.calls)
			}
		})
	}
}

func TestAsk_InvalidRequestNamesFirstField(t *testing.T) {
	req := hire.Request{Message: "a\x00", ResumeID: "S\x00", Model: "m\x00"}
	eng := cli.NewEngine(shBackend("true"), cli.WithRunner(&recordingRunner{}))
	for range 20 {
		_, err := eng.Ask(testCtx(t), req)
		if err == nil || !strings.Contains(err.Error(), "message contains null bytes") {
			t.Fatalf("err = %v, want the message field reported", err)
		}
	}
}

func TestAsk_UsesInjectedRunner(t *testing.T) {
	r := &recordingRunner{out: cli.Output{Stdout: "  canned  "}}
	eng := cli.NewEngine(shBackend("ignored"), cli.WithRunner(r))
	resp, err := eng.Ask(testCtx(t), hire.Request{Message: "m"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if r.binary != binSh {
		t.Errorf("binary = %q, want %q", r.binary, binSh)
	}
	if got := r.args[len(r.args)-1]; got != "m" {
		t.Errorf("last arg = %q, want message", got)
	}
	if resp.Text != "canned" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestAsk_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cli.NewEngine(shBackend("echo hi")).Ask(ctx, hire.Request{Message: "m"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestAgent_FromBackend(t *testing.T) {
	eng := cli.NewEngine(shBackend("true"))
	if eng.Agent() != hire.AgentClaude {
		t.Errorf("Agent() = %q", eng.Agent())
	}
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

func TestOptions_NilIgnored(t *testing.T) {
	eng := cli.NewEngine(shBackend(`echo ok`),
		nil,
		cli.WithLogger(nil),
		cli.WithRunner(nil),
		cli.WithGracePeriod(-1),
	)
	resp, err := eng.Ask(testCtx(t), hire.Request{Message: "m"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestOptions_LoggerReceivesRecords(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	eng := cli.NewEngine(shBackend("true"), cli.WithLogger(logger))
	if _, err := eng.Ask(testCtx(t), hire.Request{Message: "m"}); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(buf.String(), "invoking agent") {
		t.Errorf("log = %q, want invocation record", buf.String())
	}
}

// ---------------------------------------------------------------------------
// FailureResponse
// ---------------------------------------------------------------------------

func TestFailureResponse(t *testing.T) {
	resp := cli.FailureResponse(cli.Output{ExitCode: 1, Stdout: "raw", Stderr: "  bad  \n"}, "T0")
	want := hire.Response{ResumeID: "T0", Raw: "raw", Error: "bad"}
	if resp != want {
		t.Errorf("got %+v, want %+v", resp, want)
	}
}
