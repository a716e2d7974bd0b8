// Package codex provides a Codex CLI backend for hire.
//
// Each Ask runs "codex exec" in JSON mode. Global flags always precede the
// resume subcommand:
//
//	codex exec --json --skip-git-repo-check [extra args] [--model <model>] <message>
//	codex exec --json --skip-git-repo-check [extra args] [--model <model>] resume <thread_id> <message>
//
// The executable is resolved against PATH at build time so that wrapper
// scripts (.cmd/.bat on Windows) are found; an unresolvable name is used
// as configured.
//
// # Event types
//
// Codex exec emits JSONL events with a top-level "type" field:
// thread.started, turn.started, item.started, item.completed,
// turn.completed, turn.failed, error.
//
// Two are read:
//
//   - thread.started carries "thread_id", the resume token for later turns.
//   - item.completed whose nested item has type "agent_message" carries the
//     reply in item.text. Later agent messages replace earlier ones.
//
// Lines that are not JSON objects are skipped. When no agent message is
// found the trimmed stdout is the response text.
//
// # Minimum tested version
//
// codex-cli v0.105.0 (exec --json format).
package codex
