package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

const (
	listKey    = "portfolio:projects:all" // JSON-encoded ListAll result
	genKey     = "portfolio:projects:gen" // bumped by every invalidation
	DefaultTTL = 5 * time.Minute
)

// Store is the project store being cached.
type Store interface {
	Insert(ctx context.Context, p domain.ProjectPayload) (*domain.Project, error)
	Update(ctx context.Context, id string, p domain.ProjectPayload) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
}

// CachedStore serves ListAll for the public landing page from Redis and
// drops the cached list after every successful mutation. Redis errors are
// logged and the call falls through to the underlying store.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStore creates a new CachedStore
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedStore) Insert(ctx context.Context, p domain.ProjectPayload) (*domain.Project, error) {
	out, err := s.next.Insert(ctx, p)
	if err == nil {
		s.invalidate(ctx)
	}
	return out, err
}

func (s *CachedStore) Update(ctx context.Context, id string, p domain.ProjectPayload) (bool, error) {
	matched, err := s.next.Update(ctx, id, p)
	if err == nil {
		s.invalidate(ctx)
	}
	return matched, err
}

func (s *CachedStore) Delete(ctx context.Context, id string) (bool, error) {
	matched, err := s.next.Delete(ctx, id)
	if err == nil {
		s.invalidate(ctx)
	}
	return matched, err
}

func (s *CachedStore) ListAll(ctx context.Context) ([]domain.Project, error) {
	data, err := s.client.Get(ctx, listKey).Bytes()
	switch {
	case err == nil:
		var items []domain.Project
		if jerr := json.Unmarshal(data, &items); jerr == nil && items != nil {
			return items, nil
		}
		s.logger.Warn("discarding unreadable cached project list")
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("project list cache read failed", zap.Error(err))
	}

	return s.Refresh(ctx)
}

// Refresh loads the list from the underlying store and rewrites the cache.
// The write is skipped when a mutation invalidated the list while the store
// was being read, so a stale snapshot never outlives a successful write.
func (s *CachedStore) Refresh(ctx context.Context) ([]domain.Project, error) {
	gen, genErr := s.generation(ctx)

	items, err := s.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		s.logger.Warn("project list cache generation read failed", zap.Error(genErr))
		return items, nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("failed to encode project list for cache", zap.Error(err))
		return items, nil
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey, data, s.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug("skipped caching a project list invalidated mid-read")
	default:
		s.logger.Warn("project list cache write failed", zap.Error(err))
	}
	return items, nil
}

var errStaleSnapshot = errors.New("project list changed while loading")

func (s *CachedStore) generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *CachedStore) invalidate(ctx context.Context) {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, listKey)
		return nil
	})
	if err != nil {
		s.logger.Warn("project list cache invalidation failed", zap.Error(err))
	}
}
