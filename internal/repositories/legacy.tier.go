package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"server/internal/logger"
	"server/internal/models"
)

// LegacyStore is the flat-file tier: one JSON array of polls, read and
// rewritten whole on every mutation. Lowest durability, but available
// whenever the filesystem is writable. Records here carry no creation
// timestamp.
type LegacyStore struct {
	path string
	mu   sync.Mutex
	log  logger.Logger
}

func NewLegacyStore(path string) *LegacyStore {
	return &LegacyStore{
		path: path,
		log:  logger.New("legacyStore"),
	}
}

func (s *LegacyStore) Name() string { return "legacy" }

func (s *LegacyStore) Get(ctx context.Context, id string) (*models.Poll, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls, err := s.readAll()
	if err != nil {
		return nil, false, err
	}

	for _, poll := range polls {
		if poll.PollID == id {
			return poll, true, nil
		}
	}

	return nil, false, nil
}

func (s *LegacyStore) Set(ctx context.Context, id string, poll *models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls, err := s.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range polls {
		if polls[i].PollID == id {
			polls[i] = poll
			replaced = true
			break
		}
	}
	if !replaced {
		polls = append(polls, poll)
	}

	return s.writeAll(polls)
}

func (s *LegacyStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls, err := s.readAll()
	if err != nil {
		return err
	}

	kept := polls[:0]
	for _, poll := range polls {
		if poll.PollID != id {
			kept = append(kept, poll)
		}
	}

	// Deleting an absent id is a no-op; don't rewrite the file for it.
	if len(kept) == len(polls) {
		return nil
	}

	return s.writeAll(kept)
}

func (s *LegacyStore) List(ctx context.Context) ([]*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

func (s *LegacyStore) readAll() ([]*models.Poll, error) {
	log := s.log.Function("readAll")

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, log.Err("failed to read legacy store file", err, "path", s.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var polls []*models.Poll
	if err := json.Unmarshal(data, &polls); err != nil {
		return nil, log.Err("failed to parse legacy store file", err, "path", s.path)
	}

	return polls, nil
}

func (s *LegacyStore) writeAll(polls []*models.Poll) error {
	log := s.log.Function("writeAll")

	if polls == nil {
		polls = []*models.Poll{}
	}

	data, err := json.MarshalIndent(polls, "", "  ")
	if err != nil {
		return log.Err("failed to serialize legacy store", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return log.Err("failed to create legacy store directory", err, "dir", dir)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return log.Err("failed to write legacy store file", err, "path", s.path)
	}

	return nil
}
