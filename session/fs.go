package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2/maybe"
)

// writeFileAtomic replaces path so readers see either the old or the new
// content. Windows has no atomic replace and gets a plain write.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return maybe.WriteFile(path, data, 0o600)
}

var errMissingID = errors.New("record has no id")

// readSession decodes one record file.
func readSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if sess.ID == "" {
		return Session{}, fmt.Errorf("decode %s: %w", filepath.Base(path), errMissingID)
	}
	return sess, nil
}
