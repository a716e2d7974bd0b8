package hire

import (
	"errors"
	"strconv"
)

// Sentinel errors for engine and store operations.
var (
	// ErrUnavailable indicates the agent cannot be launched
	// (binary not found, not executable).
	ErrUnavailable = errors.New("hire: agent unavailable")

	// ErrUnknownAgent indicates a target that is not a supported agent.
	ErrUnknownAgent = errors.New("hire: unknown agent")

	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.New("hire: session not found")

	// ErrAmbiguousID indicates an id prefix that matches more than one
	// session. Returned wrapped in an *AmbiguousIDError.
	ErrAmbiguousID = errors.New("hire: ambiguous session id")

	// ErrInvalidRequest indicates a request rejected before any process
	// was spawned (empty message, null bytes).
	ErrInvalidRequest = errors.New("hire: invalid request")
)

// ExitError represents an agent process that exited with a non-zero status.
// Wraps the underlying error to preserve the error chain; consumers can
// errors.As to *exec.ExitError for OS-level detail.
//
// Code semantics: positive = exit status, negative (-1) = signal-killed.
type ExitError struct {
	Code int

	// Stderr is the agent's diagnostic output, truncated.
	Stderr string

	Err error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return "hire: exit status " + strconv.Itoa(e.Code) + ": " + e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "hire: exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit code from an error chain containing *ExitError.
// Returns (0, false) if the error does not contain an ExitError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// AmbiguousIDError reports an id prefix shared by several sessions.
// It matches ErrAmbiguousID via errors.Is.
type AmbiguousIDError struct {
	Prefix  string
	Matches int
}

func (e *AmbiguousIDError) Error() string {
	return "hire: ambiguous session id " + strconv.Quote(e.Prefix) +
		": matches " + strconv.Itoa(e.Matches) + " sessions"
}

func (e *AmbiguousIDError) Is(target error) bool { return target == ErrAmbiguousID }
