package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all environment configuration for the storefront.
type Config struct {
	Port        string
	Environment string

	// Catalog
	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogSeedPath string // when set, serve the catalog from this file instead of the remote API

	// Storage: RedisURL selects the Redis backend, otherwise DataDir selects
	// the file backend.
	RedisURL   string
	DataDir    string
	SessionTTL time.Duration
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8090"),
		Environment:     getEnv("APP_ENV", "development"),
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "http://127.0.0.1:8000"),
		CatalogTimeout:  getDuration("CATALOG_TIMEOUT", 5*time.Second),
		CatalogSeedPath: getEnv("CATALOG_SEED_PATH", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		DataDir:         getEnv("DATA_DIR", ".storefront"),
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour*30),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
