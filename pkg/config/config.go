package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort    int
	CatalogFile string

	OrderTickInterval time.Duration
	MemoryFlipDelay   time.Duration
	QuickTapSeconds   int

	StartPoints    int
	StartBeverages int
}

func Load() Config {
	return Config{
		AppEnv:            getEnv("APP_ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		CatalogFile:       getEnv("CATALOG_FILE", ""),
		OrderTickInterval: getEnvDuration("ORDER_TICK_INTERVAL", 4*time.Second),
		MemoryFlipDelay:   getEnvDuration("MEMORY_FLIP_DELAY", time.Second),
		QuickTapSeconds:   getEnvInt("QUICKTAP_SECONDS", 10),
		StartPoints:       getEnvInt("START_POINTS", 125),
		StartBeverages:    getEnvInt("START_BEVERAGES", 3),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

// getEnvDuration also rejects non-positive durations.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
