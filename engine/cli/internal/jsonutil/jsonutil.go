// Package jsonutil provides safe JSON extraction helpers for CLI backend
// parsers. These functions extract typed values from map[string]any produced
// by encoding/json.Unmarshal. No transformation logic, no validation.
//
// The package is internal to engine/cli: the backend parsers share it,
// library consumers cannot import it.
package jsonutil

import "strings"

// GetString safely extracts a string field from a map.
func GetString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

// LookupString extracts a string field and reports whether the key held a
// string value. An empty string counts as present.
func LookupString(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// FirstString returns the value of the first key in keys that holds a
// string, trying them in order. Field names drift across agent versions;
// callers list them newest first.
func FirstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := LookupString(m, k); ok {
			return v, true
		}
	}
	return "", false
}

// GetMap safely extracts a nested map from a map.
func GetMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// ContainsNull reports whether s contains a null byte.
func ContainsNull(s string) bool {
	return strings.ContainsRune(s, '\x00')
}
