package bootstrap

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/projects/cache"
	"github.com/portfolio-site/portfolio-backend/internal/projects/repository"
	"github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

// ProjectStore is the assembled persistence chain for projects.
// Warmer is nil unless the Redis cache is enabled.
type ProjectStore struct {
	Store  service.Store
	Warmer *cache.Warmer
}

// BuildProjectStore picks the backend named by cfg.Database.Backend and wraps
// it with the Redis list cache when a client is given.
func BuildProjectStore(cfg *config.Config, db *sql.DB, rdb *redis.Client, logger *zap.Logger) (*ProjectStore, error) {
	var base service.Store
	switch cfg.Database.Backend {
	case config.StoreBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres backend needs a database connection")
		}
		base = repository.NewProjectRepository(db)
	case config.StoreBackendMemory:
		base = repository.NewMemoryRepository()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Database.Backend)
	}

	if rdb == nil {
		return &ProjectStore{Store: base}, nil
	}

	cached := cache.NewCachedStore(base, rdb, cfg.Redis.CacheTTL, logger)
	warmer, err := cache.NewWarmer(cached, cfg.Redis.WarmSchedule, logger)
	if err != nil {
		return nil, err
	}
	return &ProjectStore{Store: cached, Warmer: warmer}, nil
}
