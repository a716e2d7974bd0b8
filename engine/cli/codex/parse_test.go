package codex

import (
	"os"
	"strings"
	"testing"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

func TestParse_InterleavedEvents(t *testing.T) {
	stdout := strings.Join([]string{
		`{"type":"thread.started","thread_id":"T1"}`,
		`{"type":"turn.started"}`,
		`{"type":"item.completed","item":{"type":"reasoning","text":"thinking"}}`,
		`not json at all`,
		`{"type":"item.completed","item":{"type":"agent_message","text":"draft"}}`,
		``,
		`{"type":"item.completed","item":{"type":"agent_message","text":"final"}}`,
		`{"type":"turn.completed"}`,
	}, "\n")

	got := New().Parse(cli.Output{Stdout: stdout}, "")
	if got.ResumeID != "T1" {
		t.Errorf("ResumeID = %q, want T1", got.ResumeID)
	}
	if got.Text != "final" {
		t.Errorf("Text = %q, want final", got.Text)
	}
	if got.Raw != stdout {
		t.Error("Raw should hold the unparsed stdout")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		prior    string
		wantText string
		wantID   string
	}{
		{
			name:     "NoThreadKeepsPrior",
			stdout:   `{"type":"item.completed","item":{"type":"agent_message","text":"ok"}}`,
			prior:    "T0",
			wantText: "ok",
			wantID:   "T0",
		},
		{
			name:     "ThreadReplacesPrior",
			stdout:   `{"type":"thread.started","thread_id":"T2"}` + "\n" + `{"type":"item.completed","item":{"type":"agent_message","text":"ok"}}`,
			prior:    "T0",
			wantText: "ok",
			wantID:   "T2",
		},
		{
			name:     "EmptyThreadIDIgnored",
			stdout:   `{"type":"thread.started","thread_id":""}`,
			prior:    "T0",
			wantText: `{"type":"thread.started","thread_id":""}`,
			wantID:   "T0",
		},
		{
			name:     "NoAgentMessageFallsBackToStdout",
			stdout:   "\n  warning: something\n",
			wantText: "warning: something",
		},
		{
			name:     "EmptyAgentMessageFallsBackToStdout",
			stdout:   `{"type":"item.completed","item":{"type":"agent_message","text":""}}`,
			wantText: `{"type":"item.completed","item":{"type":"agent_message","text":""}}`,
		},
		{
			name:     "ItemNotObject",
			stdout:   `{"type":"item.completed","item":"agent_message"}`,
			wantText: `{"type":"item.completed","item":"agent_message"}`,
		},
		{
			name:     "CRLFLines",
			stdout:   "{\"type\":\"thread.started\",\"thread_id\":\"T3\"}\r\n{\"type\":\"item.completed\",\"item\":{\"type\":\"agent_message\",\"text\":\"hi\"}}\r\n",
			wantText: "hi",
			wantID:   "T3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Parse(cli.Output{Stdout: tt.stdout}, tt.prior)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.ResumeID != tt.wantID {
				t.Errorf("ResumeID = %q, want %q", got.ResumeID, tt.wantID)
			}
			if got.Failed() {
				t.Errorf("unexpected failure: %q", got.Error)
			}
		})
	}
}

func TestParse_NonZeroExit(t *testing.T) {
	out := cli.Output{
		ExitCode: 1,
		Stdout:   `{"type":"thread.started","thread_id":"T9"}`,
		Stderr:   "stream error: unexpected status 401\n",
	}
	got := New().Parse(out, "T0")
	want := hire.Response{
		ResumeID: "T0",
		Raw:      out.Stdout,
		Error:    "stream error: unexpected status 401",
	}
	if got != want {
		t.Errorf("Parse() =\n %+v\nwant\n %+v", got, want)
	}
}

func TestParse_Fixture(t *testing.T) {
	data, err := os.ReadFile("testdata/exec.jsonl")
	if err != nil {
		t.Fatal(err)
	}
	got := New().Parse(cli.Output{Stdout: string(data)}, "")
	if got.ResumeID != "0199a213-81c0-7800-8aa1-bbab2a035a53" {
		t.Errorf("ResumeID = %q", got.ResumeID)
	}
	if got.Text != "The module has a single main package." {
		t.Errorf("Text = %q", got.Text)
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		`{"type":"thread.started","thread_id":"T1"}`,
		`{"type":"item.completed","item":{"type":"agent_message","text":"x"}}`,
		`{"type":"item.completed","item":null}`,
		`{"type":null}`,
		"null\n[]\n\"s\"",
		"",
	}
	for _, s := range seeds {
		f.Add(s, "prior")
	}

	b := New()
	f.Fuzz(func(t *testing.T, stdout, prior string) {
		got := b.Parse(cli.Output{Stdout: stdout}, prior)
		if got.Failed() {
			t.Errorf("successful exit produced error %q", got.Error)
		}
		if got.Raw != stdout {
			t.Errorf("Raw = %q, want stdout", got.Raw)
		}
	})
}
