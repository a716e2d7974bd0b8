package hire

// DefaultErrorText is the Response.Error value for a failed agent run that
// wrote nothing to stderr.
const DefaultErrorText = "command failed"

// Response is the normalized result of one agent invocation.
type Response struct {
	// Text is the agent-authored response. Empty when Error is set.
	Text string `json:"response"`

	// ResumeID is the token that continues this conversation on the next
	// turn. On failure it is the token the request was made with.
	ResumeID string `json:"session_id,omitempty"`

	// Raw is the agent's unparsed stdout, kept for diagnostics.
	Raw string `json:"raw,omitempty"`

	// Error is the agent's failure text. Empty on success.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the agent run failed.
func (r Response) Failed() bool { return r.Error != "" }
