package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmora/hire"
)

func TestAsk_PrintsResponseAndRecordsSession(t *testing.T) {
	env := newTestEnv(t, "")
	if got := env.mustRun(t, "codex", "Design a REST API"); got != "answer\n" {
		t.Errorf("stdout = %q", got)
	}
	if req := env.lastRequest(t); req.Message != "Design a REST API" || req.ResumeID != "" {
		t.Errorf("request = %+v", req)
	}
	list := listAll(t)
	if len(list) != 1 || list[0].Agent != hire.AgentCodex || list[0].ResumeID != "T1" {
		t.Fatalf("sessions = %+v", list)
	}
}

func TestAsk_DefaultAgentWhenOnlyMessage(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "explain this")
	if env.agents[0] != hire.AgentClaude {
		t.Errorf("agent = %q, want claude default", env.agents[0])
	}
	if env.lastRequest(t).Message != "explain this" {
		t.Errorf("message = %q", env.lastRequest(t).Message)
	}
}

func TestAsk_MultiWordMessage(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "gemini", "fix", "the", "bug", "-m", "gemini-2.5-pro")
	req := env.lastRequest(t)
	if req.Message != "fix the bug" || req.Model != "gemini-2.5-pro" {
		t.Errorf("request = %+v", req)
	}
}

func TestAsk_JSON(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t, "--json", "claude", "hi")

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if got["response"] != "answer" || got["cli_session_id"] != "T1" || got["agent"] != "claude" {
		t.Errorf("output = %v", got)
	}
	if id, _ := got["session_id"].(string); len(id) != 36 {
		t.Errorf("session_id = %v, want uuid", got["session_id"])
	}
	if name, ok := got["name"]; !ok || name != nil {
		t.Errorf("name = %v, want null", name)
	}
}

func TestAsk_JSONWithName(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t, "claude", "hi", "-n", "auth", "--json")
	var got struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name == nil || *got.Name != "auth" {
		t.Errorf("name = %v, want auth", got.Name)
	}
}

func TestAsk_PipedStdin(t *testing.T) {
	env := newTestEnv(t, "diff --git a/x b/x\n")
	env.mustRun(t, "claude", "Review this")
	want := "Review this\n\n--- stdin ---\ndiff --git a/x b/x"
	if got := env.lastRequest(t).Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestAsk_StdinIsTheMessage(t *testing.T) {
	env := newTestEnv(t, "summarize me\n")
	env.mustRun(t, "codex")
	if env.agents[0] != hire.AgentCodex {
		t.Errorf("agent = %q", env.agents[0])
	}
	if got := env.lastRequest(t).Message; got != "summarize me" {
		t.Errorf("message = %q", got)
	}
}

func TestAsk_TerminalStdinNotRead(t *testing.T) {
	env := newTestEnv(t, "should not be read")
	env.app.stdinTTY = func() bool { return true }
	env.mustRun(t, "codex", "hi")
	if got := env.lastRequest(t).Message; got != "hi" {
		t.Errorf("message = %q", got)
	}
}

func TestAsk_NoArgumentsShowsHelp(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustRun(t)
	if !strings.Contains(out, "hire [flags] [target] <message>") {
		t.Errorf("help output = %q", out)
	}
	if len(env.reqs) != 0 {
		t.Error("no agent should be asked")
	}
}

func TestAsk_TargetWithoutMessage(t *testing.T) {
	env := newTestEnv(t, "")
	err := env.run("codex")
	if !errors.Is(err, hire.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestAsk_UnknownAgent(t *testing.T) {
	env := newTestEnv(t, "")
	err := env.run("gpt", "hi")
	if !errors.Is(err, hire.ErrUnknownAgent) {
		t.Fatalf("err = %v, want ErrUnknownAgent", err)
	}
}

func TestAsk_ContinueLatest(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "codex", "one")
	env.resp.ResumeID = "T2"
	env.mustRun(t, "-c", "two")

	if got := env.lastRequest(t).ResumeID; got != "T1" {
		t.Errorf("ResumeID = %q, want T1", got)
	}
	list := listAll(t)
	if len(list) != 1 || list[0].ResumeID != "T2" {
		t.Errorf("sessions = %+v, want one session with T2", list)
	}
}

func TestAsk_ContinueBySessionPrefix(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "gemini", "one")
	id := listAll(t)[0].ID

	env.mustRun(t, "-s", id[:8], "two")
	if env.agents[1] != hire.AgentGemini {
		t.Errorf("agent = %q, want gemini from the session", env.agents[1])
	}
	if got := env.lastRequest(t).ResumeID; got != "T1" {
		t.Errorf("ResumeID = %q", got)
	}
}

func TestAsk_SessionNotFound(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("-s", "missing", "hi"); !errors.Is(err, hire.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAsk_AgentFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.resp = hire.Response{Raw: "partial", Error: "boom"}
	env.err = &hire.ExitError{Code: 1, Stderr: "boom"}

	err := env.run("claude", "hi")
	var f *agentFailure
	if !errors.As(err, &f) || f.raw != "partial" {
		t.Fatalf("err = %v, want agentFailure with raw output", err)
	}
	if code, ok := hire.ExitCode(err); !ok || code != 1 {
		t.Errorf("ExitCode = %d, %v", code, ok)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout)
	}
	if len(listAll(t)) != 0 {
		t.Error("failed ask should not record a session")
	}
}

func TestAsk_OutFile(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(t.TempDir(), "answer.md")
	env.mustRun(t, "claude", "hi", "-o", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "answer\n" {
		t.Errorf("file = %q", data)
	}
	if env.stdout.String() != "answer\n" {
		t.Errorf("stdout = %q, output should still print", env.stdout)
	}
}

func TestAsk_Clip(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "claude", "hi", "--clip")
	if len(env.copied) != 1 || env.copied[0] != "answer" {
		t.Errorf("copied = %q", env.copied)
	}
	if !strings.Contains(env.stderr.String(), "(Copied to clipboard)") {
		t.Errorf("stderr = %q", env.stderr)
	}
}

func TestAsk_ClipFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t, "")
	env.copyErr = errors.New("no clipboard")
	env.mustRun(t, "claude", "hi", "--clip")
	if !strings.Contains(env.stderr.String(), "(Failed to copy to clipboard)") {
		t.Errorf("stderr = %q", env.stderr)
	}
}

func TestAsk_ContinueWithoutHistoryWarns(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "codex", "-c", "hi")
	if !strings.Contains(env.stderr.String(), "no previous session") {
		t.Errorf("stderr = %q, want warning", env.stderr)
	}
}

func TestAsk_VerboseLogsDebug(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "-v", "codex", "hi")
	if !strings.Contains(env.stderr.String(), "level=DEBUG") {
		t.Errorf("stderr = %q, want debug logs", env.stderr)
	}
}
