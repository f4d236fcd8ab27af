package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	HTTP     HTTPConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Backend        string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrateOnStart bool
}

// RedisConfig controls the project list cache. An empty Addr disables it.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	CacheTTL     time.Duration
	WarmSchedule string
}

// FirebaseConfig is optional; without credentials bearer ID tokens are ignored.
type FirebaseConfig struct {
	CredentialsPath string
}

type AuthConfig struct {
	AdminEmail         string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	SessionSecret      string
	SuccessURL         string
	ErrorURL           string
}

// HTTPConfig covers the public listener. TrustedProxies lists the IPs or
// CIDRs whose X-Forwarded-For is believed; when empty the socket peer is the
// client IP.
type HTTPConfig struct {
	CORSAllowedOrigins []string
	TrustedProxies     []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Backend:        getEnv("STORE_BACKEND", StoreBackendPostgres),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvAsInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "portfolio"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrateOnStart: getEnvAsBool("MIGRATE_ON_START", true),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			CacheTTL:     getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			WarmSchedule: getEnv("CACHE_WARM_SCHEDULE", "@every 5m"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Auth: AuthConfig{
			AdminEmail:         getEnv("ADMIN_EMAIL", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
			SessionSecret:      getEnv("SESSION_SECRET", ""),
			SuccessURL:         getEnv("AUTH_SUCCESS_URL", "/admin"),
			ErrorURL:           getEnv("AUTH_ERROR_URL", "/error"),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
			TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),
			RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Backend {
	case StoreBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendMemory, c.Database.Backend)
	}

	if strings.TrimSpace(c.Auth.AdminEmail) == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}

	if c.Auth.GoogleClientID != "" {
		if c.Auth.GoogleClientSecret == "" {
			return fmt.Errorf("GOOGLE_CLIENT_SECRET is required when GOOGLE_CLIENT_ID is set")
		}
		if c.Auth.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required when GOOGLE_CLIENT_ID is set")
		}
	}

	if c.HTTP.RateLimitRPS <= 0 || c.HTTP.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	for _, proxy := range c.HTTP.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
			}
		}
	}

	return nil
}

// IsProduction reports whether the service runs with production settings
// (release gin mode, JSON logs, secure cookies).
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
