// Package gemini provides a Gemini CLI backend for hire.
//
// Each Ask runs the CLI non-interactively with JSON output:
//
//	gemini -p <message> -o json [extra args] [-r <token>] [-m <model>]
//
// The executable is resolved against PATH at build time; an unresolvable
// name is used as configured.
//
// # Resume
//
// Gemini resumes by index or by the sentinel [LatestSession] ("latest"),
// not by a stable conversation id. When a run reports no session id the
// backend substitutes LatestSession so the next turn continues the most
// recent conversation.
//
// # Output format
//
// Field names have drifted across releases. The response text is read
// from the first of "response", "result", "text" that holds a string; the
// token from "session_id" then "sessionId". Older releases print a bare
// JSON string. Anything that is not JSON is used as trimmed plain text.
package gemini
