package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Environment: "production" enables the cache-first fetch policy
	Env string

	// Database configuration (persistent store)
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Catalog data sources. Empty DataBaseURL selects the bundled seed data.
	DataBaseURL    string
	FetchRetries   int
	FetchBaseDelay time.Duration

	// Advice generator configuration
	GenAIAPIKey string
	GenAIModel  string
}

// Production reports whether the cache-first fetch policy applies.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load loads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		Env:               getEnv("APP_ENV", "development"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DataBaseURL:       getEnv("DATA_BASE_URL", ""),
		FetchRetries:      getEnvAsInt("FETCH_RETRIES", 3),
		FetchBaseDelay:    time.Duration(getEnvAsInt("FETCH_BASE_DELAY_MS", 500)) * time.Millisecond,
		GenAIAPIKey:       getEnv("GENAI_API_KEY", ""),
		GenAIModel:        getEnv("GENAI_MODEL", "gemini-2.5-flash"),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" {
		if cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required for %s", cfg.DBType)
		}
	}
	if cfg.FetchRetries < 1 {
		return nil, fmt.Errorf("FETCH_RETRIES must be at least 1")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
