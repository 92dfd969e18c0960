package config

import (
	"os"
	"strconv"
)

// Backend names for the key-value store selection.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port                int
	StorageBackend      string
	DataDir             string
	RedisURL            string
	DatabaseURL         string
	NatsURL             string
	NatsToken           string
	WikipediaURL        string
	PollIntervalSeconds int
	LogLevel            string
}

func Load() Config {
	return Config{
		Port:                envInt("STUDYBUDDY_PORT", 8900),
		StorageBackend:      envStr("STORAGE_BACKEND", BackendFile),
		DataDir:             envStr("DATA_DIR", "data"),
		RedisURL:            envStr("REDIS_URL", ""),
		DatabaseURL:         envStr("DATABASE_URL", ""),
		NatsURL:             envStr("NATS_URL", ""),
		NatsToken:           envStr("NATS_TOKEN", ""),
		WikipediaURL:        envStr("WIKIPEDIA_URL", ""),
		PollIntervalSeconds: envInt("POLL_INTERVAL_SECONDS", 3),
		LogLevel:            envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
