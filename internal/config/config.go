package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port             string
	DBConnStr        string
	UseInMemoryStore bool
	Environment      string
}

// Load reads configuration from environment variables. A .env file is loaded
// if present to simplify local development. An empty DATABASE_URL selects the
// in-memory scenario store.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getString("PORT", "8080"),
		DBConnStr:   getString("DATABASE_URL", ""),
		Environment: getString("ENVIRONMENT", "local"),
	}

	cfg.UseInMemoryStore = cfg.DBConnStr == ""
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
