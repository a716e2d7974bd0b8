package gemini

import (
	"encoding/json"
	"strings"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
	"github.com/dmora/hire/engine/cli/internal/jsonutil"
)

// Candidate field names, newest first.
var (
	textKeys  = []string{"response", "result", "text"}
	tokenKeys = []string{"session_id", "sessionId"}
)

// Parse normalizes the captured output of one run.
// A non-zero exit yields cli.FailureResponse.
func (b *Backend) Parse(out cli.Output, prior string) hire.Response {
	if !out.Succeeded() {
		return cli.FailureResponse(out, prior)
	}

	var data any
	if err := json.Unmarshal([]byte(out.Stdout), &data); err != nil {
		return plainText(out, prior)
	}

	switch v := data.(type) {
	case map[string]any:
		text, _ := jsonutil.FirstString(v, textKeys...)
		token, ok := jsonutil.FirstString(v, tokenKeys...)
		if !ok {
			token = prior
		}
		return hire.Response{Text: text, ResumeID: orLatest(token), Raw: out.Stdout}
	case string:
		return hire.Response{Text: v, ResumeID: orLatest(prior), Raw: out.Stdout}
	default:
		return plainText(out, prior)
	}
}

func plainText(out cli.Output, prior string) hire.Response {
	return hire.Response{
		Text:     strings.TrimSpace(out.Stdout),
		ResumeID: orLatest(prior),
		Raw:      out.Stdout,
	}
}

func orLatest(token string) string {
	if token == "" {
		return LatestSession
	}
	return token
}
