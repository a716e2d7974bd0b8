// Package session persists hire conversations as one JSON file per session.
//
// Layout under the store root:
//
//	<root>/<agent>/<id>.json     one record per session
//	<root>/<agent>/latest.json   {"session_id": ..., "filename": ...}
//
// Every write goes to a temporary file in the same directory and is renamed
// into place. Reads are forgiving: missing, unreadable and malformed files
// are skipped and logged at debug level. The only lookup error a caller sees
// is an id prefix shared by several sessions ([hire.ErrAmbiguousID]).
//
// The store takes no locks. Two invocations saving to the same agent at
// once race on the latest pointer; the last rename wins.
package session
