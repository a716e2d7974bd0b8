// Package claude provides a Claude Code CLI backend for hire.
//
// Each Ask runs the CLI in print mode with a single JSON result object on
// stdout:
//
//	claude -p <message> --output-format json [extra args] [--resume <id>] [--model <model>]
//
// # Output format
//
// The result object carries the assistant's final text in "result" and
// the conversation id in "session_id":
//
//	{"type":"result","subtype":"success","is_error":false,
//	 "result":"...","session_id":"0199a3c2-...","num_turns":1}
//
// Only "result" and "session_id" are read. Output that is not a JSON
// object is returned verbatim as the response text, keeping the prior
// resume id.
//
// # Resume
//
// The session id reported on one turn is passed back with --resume on the
// next. Claude accepts the id as is; no sentinel values are used.
package claude
