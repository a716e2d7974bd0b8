package codex

import (
	"encoding/json"
	"strings"

	"github.com/dmora/hire"
	"github.com/dmora/hire/engine/cli"
	"github.com/dmora/hire/engine/cli/internal/jsonutil"
)

// Event and item type constants.
const (
	eventThreadStarted = "thread.started"
	eventItemCompleted = "item.completed"
	itemAgentMessage   = "agent_message"
)

// Parse normalizes the JSONL event stream of one exec run.
// A non-zero exit yields cli.FailureResponse.
func (b *Backend) Parse(out cli.Output, prior string) hire.Response {
	if !out.Succeeded() {
		return cli.FailureResponse(out, prior)
	}

	resumeID := prior
	var text string
	for line := range strings.SplitSeq(strings.TrimSpace(out.Stdout), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil || event == nil {
			continue
		}
		switch jsonutil.GetString(event, "type") {
		case eventThreadStarted:
			if id := jsonutil.GetString(event, "thread_id"); id != "" {
				resumeID = id
			}
		case eventItemCompleted:
			item := jsonutil.GetMap(event, "item")
			if jsonutil.GetString(item, "type") == itemAgentMessage {
				text = jsonutil.GetString(item, "text")
			}
		}
	}

	if text == "" {
		text = strings.TrimSpace(out.Stdout)
	}
	return hire.Response{Text: text, ResumeID: resumeID, Raw: out.Stdout}
}
