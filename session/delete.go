package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmora/hire"
)

// Delete removes the record whose id equals sess.ID from sess.Agent's
// partition. When the agent's latest pointer referenced it, the pointer
// moves to the most recently updated remaining session or is removed.
// Deleting a session that does not exist reports false and changes
// nothing.
func (s *Store) Delete(sess Session) (bool, error) {
	if !safeComponent(string(sess.Agent)) || sess.ID == "" {
		return false, nil
	}
	recs, err := s.scan(sess.Agent)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, r := range recs {
		if r.session.ID == sess.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	if err := os.Remove(recs[idx].path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("session: delete %s: %w", sess.ID, err)
	}
	s.logger.Debug("session deleted", "id", sess.ID, "agent", sess.Agent)

	if err := s.repairLatest(sess.Agent); err != nil {
		return true, fmt.Errorf("session: repair latest for %s: %w", sess.Agent, err)
	}
	return true, nil
}

// repairLatest re-points agent's latest pointer when it no longer resolves
// to a readable record: to the most recently updated remaining session, or
// nowhere when none remain. A malformed pointer is removed.
func (s *Store) repairLatest(agent hire.Agent) error {
	if _, err := os.Stat(s.latestPath(agent)); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, ok := s.readLatest(agent); !ok {
		return s.removeLatest(agent)
	}
	if _, ok := s.Latest(agent); ok {
		return nil
	}

	remaining, err := s.List(agent)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.removeLatest(agent)
	}
	return s.writeLatest(agent, remaining[0])
}

// DeleteAll removes every session record, optionally for one agent ("" for
// all), together with the latest pointers of the affected partitions.
// It returns the number of records removed.
func (s *Store) DeleteAll(agent hire.Agent) (int, error) {
	recs, err := s.scan(agent)
	if err != nil {
		return 0, err
	}
	n := 0
	var errs []error
	for _, r := range recs {
		if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		n++
	}

	dirs, err := s.agentDirs(agent)
	if err != nil {
		errs = append(errs, err)
	}
	for _, dir := range dirs {
		a := hire.Agent(filepath.Base(dir))
		if err := s.repairLatest(a); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Debug("sessions deleted", "count", n, "agent", agent)
	if err := errors.Join(errs...); err != nil {
		return n, fmt.Errorf("session: delete all: %w", err)
	}
	return n, nil
}
