package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmora/hire"
)

// record is a decoded session and the file it came from.
type record struct {
	path    string
	session Session
}

// scan decodes every parsable record, optionally for one agent. Agent
// directories and record files are visited in lexical order, which fixes
// the order FindByName resolves duplicates in. A missing root yields no
// records; any other failure to read the root is returned.
func (s *Store) scan(agent hire.Agent) ([]record, error) {
	dirs, err := s.agentDirs(agent)
	if err != nil {
		return nil, err
	}
	var recs []record
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				s.logger.Debug("agent directory unreadable", "dir", dir, "err", err)
			}
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !isRecordName(e.Name()) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			sess, err := readSession(path)
			if err != nil {
				s.logger.Debug("skipping session record", "path", path, "err", err)
				continue
			}
			recs = append(recs, record{path: path, session: sess})
		}
	}
	return recs, nil
}

// agentDirs lists the partitions to scan, sorted by name.
func (s *Store) agentDirs(agent hire.Agent) ([]string, error) {
	if agent != "" {
		if !safeComponent(string(agent)) {
			return nil, nil
		}
		return []string{s.agentDir(agent)}, nil
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", s.root, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && safeComponent(e.Name()) {
			dirs = append(dirs, filepath.Join(s.root, e.Name()))
		}
	}
	return dirs, nil
}

// FindByID resolves a full session id or a unique id prefix across all
// agents. An exact match wins over any prefix match. A prefix shared by
// several sessions returns an *hire.AmbiguousIDError. An empty query is
// never found.
func (s *Store) FindByID(query string) (Session, bool, error) {
	if query == "" {
		return Session{}, false, nil
	}
	if sess, ok := s.lookupExact(query); ok {
		return sess, true, nil
	}

	recs, err := s.scan("")
	if err != nil {
		return Session{}, false, err
	}
	var matches []Session
	for _, r := range recs {
		if r.session.ID == query {
			return r.session, true, nil
		}
		if strings.HasPrefix(r.session.ID, query) {
			matches = append(matches, r.session)
		}
	}
	switch len(matches) {
	case 0:
		return Session{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return Session{}, false, &hire.AmbiguousIDError{Prefix: query, Matches: len(matches)}
	}
}

// lookupExact opens <agent>/<id>.json directly when query is a canonical
// UUID, avoiding a full scan.
func (s *Store) lookupExact(query string) (Session, bool) {
	id, err := uuid.Parse(query)
	if err != nil || id.String() != query {
		return Session{}, false
	}
	dirs, err := s.agentDirs("")
	if err != nil {
		return Session{}, false
	}
	for _, dir := range dirs {
		sess, err := readSession(filepath.Join(dir, query+jsonExt))
		if err == nil && sess.ID == query {
			return sess, true
		}
	}
	return Session{}, false
}

// FindByName returns the first session named name in scan order (agents
// by directory name, then records by file name). Names are not unique;
// later duplicates are unreachable by name.
func (s *Store) FindByName(name string) (Session, bool) {
	if name == "" {
		return Session{}, false
	}
	recs, err := s.scan("")
	if err != nil {
		s.logger.Debug("scan failed", "err", err)
		return Session{}, false
	}
	for _, r := range recs {
		if r.session.Name == name {
			return r.session, true
		}
	}
	return Session{}, false
}

// Find resolves nameOrID as a session name first, then as an id or id
// prefix.
func (s *Store) Find(nameOrID string) (Session, bool, error) {
	if sess, ok := s.FindByName(nameOrID); ok {
		return sess, true, nil
	}
	return s.FindByID(nameOrID)
}

// List returns every parsable session, optionally for one agent ("" for
// all), most recently updated first.
func (s *Store) List(agent hire.Agent) ([]Session, error) {
	recs, err := s.scan(agent)
	if err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.session)
	}
	slices.SortStableFunc(out, func(a, b Session) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}
