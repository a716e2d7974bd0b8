package hire

// Request is a single prompt for an agent.
// Engine implementations receive a resolved Request; callers build one
// with ResolveOptions.
type Request struct {
	// Message is the prompt text.
	Message string `json:"message"`

	// ResumeID is the agent's resume token from a previous turn.
	// Empty starts a new conversation.
	ResumeID string `json:"resume_id,omitempty"`

	// Model selects the agent model. Empty uses the agent's default.
	Model string `json:"model,omitempty"`
}

// Option configures a Request.
type Option func(*Request)

// ResolveOptions applies functional options and returns the resolved request.
// Nil options are skipped; later options override earlier ones.
func ResolveOptions(opts ...Option) Request {
	var req Request
	for _, opt := range opts {
		if opt != nil {
			opt(&req)
		}
	}
	return req
}

// WithMessage sets the prompt text.
func WithMessage(message string) Option {
	return func(r *Request) {
		r.Message = message
	}
}

// WithResumeID continues the conversation identified by the agent's
// resume token.
func WithResumeID(id string) Option {
	return func(r *Request) {
		r.ResumeID = id
	}
}

// WithModel selects the agent model for this request.
func WithModel(model string) Option {
	return func(r *Request) {
		r.Model = model
	}
}
