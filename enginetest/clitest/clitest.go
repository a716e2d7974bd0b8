package clitest

import (
	"slices"
	"strings"
	"testing"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
)

// Distinctive values that cannot collide with any backend's fixed flags.
const (
	testMessage  = "compliance message"
	testResumeID = "0199a3c2-7f51-7d22-9a4e-3c1f5e8b2d10"
	testModel    = "compliance-model"
)

// RunBackendTests runs all compliance suites for a [cli.Backend].
// The factory is called once per subtest to ensure fresh backend state.
func RunBackendTests(t *testing.T, factory func() cli.Backend) {
	t.Helper()

	t.Run("Agent", func(t *testing.T) {
		if a := factory().Agent(); !a.Valid() {
			t.Errorf("Agent() = %q, not a supported agent", a)
		}
	})
	t.Run("Builder", func(t *testing.T) {
		RunBuilderTests(t, func() cli.Builder { return factory() })
	})
	t.Run("Parser", func(t *testing.T) {
		RunParserTests(t, func() cli.Parser { return factory() })
	})
}

// RunBuilderTests tests the [cli.Builder] behavioral contract.
func RunBuilderTests(t *testing.T, factory func() cli.Builder) {
	t.Helper()
	runBuilderStructural(t, factory)
	runBuilderFlags(t, factory)
}

// runBuilderStructural tests structural invariants: non-empty binary,
// non-nil args, message present, deterministic output.
func runBuilderStructural(t *testing.T, factory func() cli.Builder) {
	t.Helper()

	t.Run("ZeroRequest", func(t *testing.T) {
		binary, args := factory().BuildArgs(hire.Request{})
		if binary == "" {
			t.Error("binary must be non-empty")
		}
		if args == nil {
			t.Error("args must be non-nil")
		}
	})

	t.Run("BinaryNoNullBytes", func(t *testing.T) {
		binary, _ := factory().BuildArgs(hire.Request{Message: testMessage})
		if strings.Contains(binary, "\x00") {
			t.Error("binary must not contain null bytes")
		}
	})

	t.Run("MessageIsSingleArg", func(t *testing.T) {
		_, args := factory().BuildArgs(hire.Request{Message: testMessage})
		if n := countArg(args, testMessage); n != 1 {
			t.Errorf("message appears %d times in %q, want once", n, args)
		}
	})

	t.Run("MultilineMessagePreserved", func(t *testing.T) {
		msg := "line one\n\n--- stdin ---\nline two"
		_, args := factory().BuildArgs(hire.Request{Message: msg})
		if !slices.Contains(args, msg) {
			t.Errorf("args %q must carry the message unchanged", args)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		b := factory()
		req := hire.Request{Message: testMessage, ResumeID: testResumeID, Model: testModel}
		bin1, args1 := b.BuildArgs(req)
		bin2, args2 := b.BuildArgs(req)
		if bin1 != bin2 || !slices.Equal(args1, args2) {
			t.Errorf("BuildArgs not deterministic: %q %q vs %q %q", bin1, args1, bin2, args2)
		}
	})
}

// runBuilderFlags tests that resume and model arguments appear exactly
// when requested.
func runBuilderFlags(t *testing.T, factory func() cli.Builder) {
	t.Helper()

	t.Run("ResumeIDIffSet", func(t *testing.T) {
		b := factory()
		_, without := b.BuildArgs(hire.Request{Message: testMessage})
		if slices.Contains(without, testResumeID) {
			t.Errorf("args %q must not contain a resume id", without)
		}
		_, with := b.BuildArgs(hire.Request{Message: testMessage, ResumeID: testResumeID})
		if countArg(with, testResumeID) != 1 {
			t.Errorf("args %q must contain resume id %q once", with, testResumeID)
		}
		if len(with) <= len(without) {
			t.Errorf("resume should add arguments: %d vs %d", len(with), len(without))
		}
	})

	t.Run("ModelIffSet", func(t *testing.T) {
		b := factory()
		_, without := b.BuildArgs(hire.Request{Message: testMessage})
		if slices.Contains(without, testModel) {
			t.Errorf("args %q must not contain a model", without)
		}
		_, with := b.BuildArgs(hire.Request{Message: testMessage, Model: testModel})
		i := slices.Index(with, testModel)
		if i < 1 {
			t.Fatalf("args %q must contain model %q after its flag", with, testModel)
		}
		if !strings.HasPrefix(with[i-1], "-") {
			t.Errorf("model must follow a flag, got %q", with[i-1])
		}
		if len(with) != len(without)+2 {
			t.Errorf("model should add exactly a flag and a value: %q vs %q", with, without)
		}
	})
}

// RunParserTests tests the [cli.Parser] behavioral contract.
func RunParserTests(t *testing.T, factory func() cli.Parser) {
	t.Helper()
	runParserFailure(t, factory)
	runParserRobustness(t, factory)
}

// runParserFailure tests non-zero exit normalization, identical across
// backends.
func runParserFailure(t *testing.T, factory func() cli.Parser) {
	t.Helper()

	t.Run("NonZeroExitUsesStderr", func(t *testing.T) {
		out := cli.Output{ExitCode: 1, Stdout: `{"result":"x","response":"x"}`, Stderr: "boom"}
		got := factory().Parse(out, "prior")
		if got.Error != "boom" {
			t.Errorf("Error = %q, want stderr", got.Error)
		}
		if got.Text != "" {
			t.Errorf("Text = %q, want empty on failure", got.Text)
		}
		if got.ResumeID != "prior" {
			t.Errorf("ResumeID = %q, want prior token", got.ResumeID)
		}
		if got.Raw != out.Stdout {
			t.Errorf("Raw = %q, want stdout", got.Raw)
		}
	})

	t.Run("NonZeroExitBlankStderr", func(t *testing.T) {
		got := factory().Parse(cli.Output{ExitCode: 127, Stderr: " \n"}, "")
		if got.Error != hire.DefaultErrorText {
			t.Errorf("Error = %q, want %q", got.Error, hire.DefaultErrorText)
		}
	})

	t.Run("SignalExit", func(t *testing.T) {
		got := factory().Parse(cli.Output{ExitCode: -1}, "prior")
		if !got.Failed() {
			t.Error("negative exit code must be a failure")
		}
	})
}

// garbageCorpus is a fixed set of adversarial inputs used by robustness tests.
var garbageCorpus = []string{
	"",
	"   \n\t",
	"\x00",
	strings.Repeat("x", 65536),
	"{{{",
	"\xff\xfe",
	`{"":null}`,
	"null",
	"[]",
	`{"type":99}`,
	`{"result":[],"response":{},"text":1}`,
}

// runParserRobustness tests that malformed output on a successful exit is
// never fatal.
func runParserRobustness(t *testing.T, factory func() cli.Parser) {
	t.Helper()

	t.Run("GarbageNotFatal", func(t *testing.T) {
		p := factory()
		for _, input := range garbageCorpus {
			got := p.Parse(cli.Output{Stdout: input}, "prior")
			if got.Failed() {
				t.Errorf("Parse(%q) reported error %q on a successful exit", input, got.Error)
			}
			if got.Raw != input {
				t.Errorf("Parse(%q) Raw = %q, want stdout", input, got.Raw)
			}
		}
	})

	t.Run("PriorSurvivesGarbage", func(t *testing.T) {
		p := factory()
		for _, input := range garbageCorpus {
			if got := p.Parse(cli.Output{Stdout: input}, "prior"); got.ResumeID != "prior" {
				t.Errorf("Parse(%q) ResumeID = %q, want prior token", input, got.ResumeID)
			}
		}
	})
}

// countArg reports how many elements of args equal s.
func countArg(args []string, s string) int {
	n := 0
	for _, a := range args {
		if a == s {
			n++
		}
	}
	return n
}
