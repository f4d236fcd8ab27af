package postgres

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/portfolio-site/portfolio-backend/config"
)

// DSN builds the lib/pq keyword/value connection string. Every value is
// single-quoted so spaces, quotes and backslashes survive.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(cfg.Host), cfg.Port, quote(cfg.User), quote(cfg.Password), quote(cfg.Name), quote(sslMode(cfg)),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quote(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// MigrationURL is the same connection in URL form, as golang-migrate expects.
func MigrationURL(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode(cfg)}}.Encode(),
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}
	return u.String()
}

func sslMode(cfg *config.DatabaseConfig) string {
	if cfg.SSLMode == "" {
		return "disable"
	}
	return cfg.SSLMode
}
