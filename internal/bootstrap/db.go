package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/storage/postgres"
)

// OpenDB connects to Postgres and, when configured, brings the schema up to
// date before the connection is handed out.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := postgres.NewConnection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(postgres.MigrationURL(cfg), logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
	}

	logger.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}
