package config

import (
	"os"
	"strconv"
)

// Config collects everything the terminal reads from the environment.
// The upstream API is the FastAPI service the whole shop talks to; the
// store path is this terminal's local state file.
type Config struct {
	Port          string
	BackendURL    string
	StorePath     string
	DefaultTables int
	SplashSeconds int
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:8000"),
		StorePath:     getEnv("STORE_PATH", "restsoft.db"),
		DefaultTables: getEnvInt("DEFAULT_TABLES", 30),
		SplashSeconds: getEnvInt("SPLASH_SECONDS", 5),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
