package config

import (
	"os"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL string
	PriceAPIURL string
	Benchmark   string
	Currency    string
}

// Load reads configuration from environment variables. DatabaseURL is empty
// when no database is configured; callers fall back to file and HTTP sources.
func Load() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		PriceAPIURL: os.Getenv("PRICE_API_URL"),
		Benchmark:   getEnv("BENCHMARK", "S&P 500"),
		Currency:    getEnv("CURRENCY", "USD"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
