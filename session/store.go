package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmora/hire"
)

const (
	jsonExt        = ".json"
	latestFileName = "latest.json"
)

// ErrInvalidSession indicates a session whose id or agent cannot be used
// as a storage path.
var ErrInvalidSession = errors.New("session: invalid session")

// Store is a file-backed session registry rooted at one directory.
type Store struct {
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithClock sets the time source for CreatedAt and UpdatedAt.
// Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a store rooted at root. The directory is created on
// first write.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root:   root,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Root returns the directory the store was created with.
func (s *Store) Root() string { return s.root }

// Create persists a new session with a fresh UUID and makes it the latest
// for agent.
func (s *Store) Create(agent hire.Agent, resumeID, name string) (Session, error) {
	now := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		ResumeID:  resumeID,
		Agent:     agent,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Save(&sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save refreshes sess.UpdatedAt, rewrites its record and points the
// agent's latest pointer at it. UpdatedAt never moves backwards.
func (s *Store) Save(sess *Session) error {
	if err := validate(*sess); err != nil {
		return err
	}

	now := s.now().UTC()
	if now.Before(sess.UpdatedAt) {
		now = sess.UpdatedAt
	}
	sess.UpdatedAt = now
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.ID, err)
	}
	dir := s.agentDir(sess.Agent)
	if err := writeFileAtomic(filepath.Join(dir, sess.fileName()), append(data, '\n')); err != nil {
		return fmt.Errorf("session: save %s: %w", sess.ID, err)
	}
	if err := s.writeLatest(sess.Agent, *sess); err != nil {
		return fmt.Errorf("session: save %s: %w", sess.ID, err)
	}
	s.logger.Debug("session saved", "id", sess.ID, "agent", sess.Agent)
	return nil
}

// Latest returns the session the agent's latest pointer references.
// A missing pointer, a dangling pointer and an unparsable record all
// report false.
func (s *Store) Latest(agent hire.Agent) (Session, bool) {
	if !safeComponent(string(agent)) {
		return Session{}, false
	}
	p, ok := s.readLatest(agent)
	if !ok || !isRecordName(p.Filename) {
		return Session{}, false
	}
	sess, err := readSession(filepath.Join(s.agentDir(agent), p.Filename))
	if err != nil {
		s.logger.Debug("latest session unreadable", "agent", agent, "file", p.Filename, "err", err)
		return Session{}, false
	}
	return sess, true
}

func (s *Store) agentDir(agent hire.Agent) string {
	return filepath.Join(s.root, string(agent))
}

// --- latest pointer ---

type latestPointer struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
}

func (s *Store) latestPath(agent hire.Agent) string {
	return filepath.Join(s.agentDir(agent), latestFileName)
}

func (s *Store) writeLatest(agent hire.Agent, sess Session) error {
	data, err := json.Marshal(latestPointer{SessionID: sess.ID, Filename: sess.fileName()})
	if err != nil {
		return err
	}
	return writeFileAtomic(s.latestPath(agent), data)
}

// readLatest decodes the pointer. ok is false when the file is missing or
// malformed.
func (s *Store) readLatest(agent hire.Agent) (latestPointer, bool) {
	data, err := os.ReadFile(s.latestPath(agent))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("latest pointer unreadable", "agent", agent, "err", err)
		}
		return latestPointer{}, false
	}
	var p latestPointer
	if err := json.Unmarshal(data, &p); err != nil || p.Filename == "" {
		s.logger.Debug("latest pointer malformed", "agent", agent, "err", err)
		return latestPointer{}, false
	}
	return p, true
}

func (s *Store) removeLatest(agent hire.Agent) error {
	err := os.Remove(s.latestPath(agent))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// validate rejects sessions whose id or agent would escape the root or
// collide with the pointer file.
func validate(sess Session) error {
	if !safeComponent(string(sess.Agent)) {
		return fmt.Errorf("%w: agent %q", ErrInvalidSession, sess.Agent)
	}
	if !safeComponent(sess.ID) || sess.fileName() == latestFileName {
		return fmt.Errorf("%w: id %q", ErrInvalidSession, sess.ID)
	}
	return nil
}

// isRecordName reports whether name is a session record file name.
func isRecordName(name string) bool {
	return strings.HasSuffix(name, jsonExt) && name != latestFileName && safeComponent(name)
}

// safeComponent reports whether name is usable as a single path element.
func safeComponent(name string) bool {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
