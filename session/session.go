package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmora/hire"
)

// ShortIDLen is the id prefix length shown in listings.
const ShortIDLen = 8

// Session is one persisted conversation with an agent.
type Session struct {
	// ID is the store-assigned UUID. Immutable.
	ID string `json:"id"`

	// ResumeID is the agent's own resume token, reassigned on every turn.
	ResumeID string `json:"cli_session_id"`

	// Agent owns the session and selects its storage partition. Immutable.
	Agent hire.Agent `json:"agent"`

	// Name is an optional label. Names are not unique. Empty is stored
	// as null.
	Name string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShortID returns the first ShortIDLen characters of the id.
func (s Session) ShortID() string {
	if len(s.ID) <= ShortIDLen {
		return s.ID
	}
	return s.ID[:ShortIDLen]
}

// Label returns the name, or the short id when unnamed.
func (s Session) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ShortID()
}

// fileName is the record's base name within its agent directory.
func (s Session) fileName() string { return s.ID + jsonExt }

// localLayout is ISO 8601 without a zone, with optional fractional
// seconds. Such timestamps are read as local time.
const localLayout = "2006-01-02T15:04:05.999999999"

// MarshalJSON encodes the record with an empty name as null.
func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	var name *string
	if s.Name != "" {
		name = &s.Name
	}
	return json.Marshal(struct {
		plain
		Name *string `json:"name"`
	}{plain(s), name})
}

// UnmarshalJSON decodes a record, accepting zone-less timestamps in
// addition to RFC 3339.
func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var aux struct {
		plain
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	created, err := parseTime(aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	updated, err := parseTime(aux.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updated_at: %w", err)
	}
	*s = Session(aux.plain)
	s.CreatedAt = created
	s.UpdatedAt = updated
	return nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation(localLayout, v, time.Local)
}
