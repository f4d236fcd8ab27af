package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "pw", Name: "portfolio"}
	assert.Equal(t, "host='db' port=5433 user='app' password='pw' dbname='portfolio' sslmode='disable'", DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode='require'")

	t.Run("special characters are escaped", func(t *testing.T) {
		cfg := &config.DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: `a b'c\d`, Name: "portfolio"}
		assert.Contains(t, DSN(cfg), `password='a b\'c\\d' dbname=`)
	})

	t.Run("empty password stays a valid pair", func(t *testing.T) {
		cfg := &config.DatabaseConfig{Host: "db", Port: 5432, User: "app", Name: "portfolio"}
		assert.Contains(t, DSN(cfg), "password='' dbname=")
	})
}

func TestMigrationURL(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", Name: "portfolio"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/portfolio?sslmode=disable", MigrationURL(cfg))

	cfg.Password = ""
	cfg.SSLMode = "verify-full"
	assert.Equal(t, "postgres://app@db:5432/portfolio?sslmode=verify-full", MigrationURL(cfg))
}

func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "every up migration has a down")

	body, err := fs.ReadFile(migrationsFS, "migrations/0001_create_projects.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "gen_random_uuid()")
}
