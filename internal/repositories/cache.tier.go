package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/models"

	"github.com/valkey-io/valkey-go"
)

const cacheKeyPrefix = "poll:"

// CacheStore is the key-value tier. The client is created lazily on first
// use and kept for the process lifetime. The first failed connect or command
// permanently degrades the store to the legacy file emulation: the failure
// is logged once and the cache service is never retried again in this
// process.
type CacheStore struct {
	config   config.Config
	fallback *LegacyStore
	log      logger.Logger

	mu       sync.Mutex
	client   database.CacheClient
	degraded bool
}

func NewCacheStore(config config.Config, fallback *LegacyStore) *CacheStore {
	return &CacheStore{
		config:   config,
		fallback: fallback,
		log:      logger.New("cacheStore"),
	}
}

func (s *CacheStore) Name() string { return "cache" }

// Degraded reports whether the store has failed open to the legacy file.
func (s *CacheStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *CacheStore) getClient() (database.CacheClient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		return nil, false
	}
	if s.client != nil {
		return s.client, true
	}

	client, err := database.NewCacheClient(s.config)
	if err != nil {
		s.degraded = true
		s.log.Er("cache unreachable, failing open to legacy store for process lifetime", err)
		return nil, false
	}

	s.client = client
	return client, true
}

func (s *CacheStore) markDegraded(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		return
	}
	s.degraded = true
	s.log.Er("cache operation failed, failing open to legacy store for process lifetime", err)

	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

func (s *CacheStore) Get(ctx context.Context, id string) (*models.Poll, bool, error) {
	client, ok := s.getClient()
	if !ok {
		return s.fallback.Get(ctx, id)
	}

	resp := client.Do(ctx, client.B().Get().Key(cacheKey(id)).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		s.markDegraded(err)
		return s.fallback.Get(ctx, id)
	}

	raw, err := resp.AsBytes()
	if err != nil {
		return nil, false, s.log.Function("Get").Err("failed to read cached poll", err, "id", id)
	}

	var poll models.Poll
	if err := json.Unmarshal(raw, &poll); err != nil {
		return nil, false, s.log.Function("Get").Err("failed to parse cached poll", err, "id", id)
	}

	return &poll, true, nil
}

func (s *CacheStore) Set(ctx context.Context, id string, poll *models.Poll) error {
	client, ok := s.getClient()
	if !ok {
		return s.fallback.Set(ctx, id, poll)
	}

	data, err := json.Marshal(poll)
	if err != nil {
		return s.log.Function("Set").Err("failed to serialize poll", err, "id", id)
	}

	if err := client.Do(ctx, client.B().Set().Key(cacheKey(id)).Value(string(data)).Build()).Error(); err != nil {
		s.markDegraded(err)
		return s.fallback.Set(ctx, id, poll)
	}

	return nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	client, ok := s.getClient()
	if !ok {
		return s.fallback.Delete(ctx, id)
	}

	if err := client.Do(ctx, client.B().Del().Key(cacheKey(id)).Build()).Error(); err != nil {
		s.markDegraded(err)
		return s.fallback.Delete(ctx, id)
	}

	return nil
}

func (s *CacheStore) List(ctx context.Context) ([]*models.Poll, error) {
	client, ok := s.getClient()
	if !ok {
		return s.fallback.List(ctx)
	}

	keys, err := client.Do(ctx, client.B().Keys().Pattern(cacheKeyPrefix+"*").Build()).AsStrSlice()
	if err != nil {
		s.markDegraded(err)
		return s.fallback.List(ctx)
	}

	polls := make([]*models.Poll, 0, len(keys))
	for _, key := range keys {
		poll, found, err := s.Get(ctx, strings.TrimPrefix(key, cacheKeyPrefix))
		if err != nil {
			s.log.Function("List").Warn("skipping unreadable cached poll", "key", key, "error", err)
			continue
		}
		if found {
			polls = append(polls, poll)
		}
	}

	return polls, nil
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}
