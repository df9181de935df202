package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"homestead/internal/logger"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds process settings; game content lives in the catalog file.
type Config struct {
	Port          int
	LogLevel      string
	LogFormat     string
	Environment   string
	Store         string
	DBDSN         string
	RedisURL      string
	DBMaxConns    int
	CatalogPath   string
	MigrationsDir string
	GuideDir      string
	CORSOrigin    string
	MaxSettle     time.Duration
	CacheSize     int
	CacheTTL      time.Duration
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", ""),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		Store:         strings.ToLower(getEnv("HOMESTEAD_STORE", StoreMemory)),
		DBDSN:         strings.TrimSpace(getEnv("HOMESTEAD_DB_DSN", "")),
		RedisURL:      strings.TrimSpace(getEnv("HOMESTEAD_REDIS_URL", "")),
		CatalogPath:   strings.TrimSpace(getEnv("HOMESTEAD_CATALOG", "")),
		MigrationsDir: strings.TrimSpace(getEnv("HOMESTEAD_MIGRATIONS_DIR", "")),
		GuideDir:      strings.TrimSpace(getEnv("HOMESTEAD_GUIDE_DIR", "")),
		CORSOrigin:    strings.TrimSpace(getEnv("CORS_ALLOW_ORIGIN", "*")),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = intEnv("HOMESTEAD_DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	maxSettle, err := intEnv("HOMESTEAD_MAX_SETTLE_SECONDS", 86400)
	if err != nil {
		return nil, err
	}
	cfg.MaxSettle = time.Duration(maxSettle) * time.Second
	if cfg.CacheSize, err = intEnv("HOMESTEAD_AUTH_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	ttl, err := intEnv("HOMESTEAD_AUTH_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("HOMESTEAD_DB_DSN is required when HOMESTEAD_STORE=%s", StorePostgres)
		}
	case StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("HOMESTEAD_REDIS_URL is required when HOMESTEAD_STORE=%s", StoreRedis)
		}
	default:
		return nil, fmt.Errorf("invalid HOMESTEAD_STORE value %q", cfg.Store)
	}
	return cfg, nil
}

func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		ServiceName: logger.DefaultServiceName,
		Version:     "dev",
		Environment: c.Environment,
	}
}

// Content loads the catalog file, or the built-in content when unset.
func (c *Config) Content() (*Content, error) {
	if c.CatalogPath == "" {
		return DefaultContent()
	}
	return LoadContent(c.CatalogPath)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return v, nil
}
