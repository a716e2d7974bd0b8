package claude

import (
	"encoding/json"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
	"github.com/dmora/hire/engine/cli/internal/jsonutil"
)

// Parse normalizes the captured output of one print-mode run.
// A non-zero exit yields cli.FailureResponse. Stdout that is not a JSON
// object becomes the response text unchanged.
func (b *Backend) Parse(out cli.Output, prior string) hire.Response {
	if !out.Succeeded() {
		return cli.FailureResponse(out, prior)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(out.Stdout), &raw); err != nil || raw == nil {
		return hire.Response{Text: out.Stdout, ResumeID: prior, Raw: out.Stdout}
	}

	resumeID := jsonutil.GetString(raw, "session_id")
	if resumeID == "" {
		resumeID = prior
	}
	return hire.Response{
		Text:     jsonutil.GetString(raw, "result"),
		ResumeID: resumeID,
		Raw:      out.Stdout,
	}
}
