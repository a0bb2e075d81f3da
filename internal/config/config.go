package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	LogPretty       bool
	DatabaseURL     string // empty selects the in-memory backend
	OpeningBalance  decimal.Decimal
	CacheTTLMinutes int
	RefreshSchedule string
	CORSOrigins     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	opening, err := decimal.NewFromString(getEnv("OPENING_BALANCE", "100000.00"))
	if err != nil {
		return nil, fmt.Errorf("OPENING_BALANCE: %w", err)
	}

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", false),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		OpeningBalance:  opening,
		CacheTTLMinutes: getEnvAsInt("MARKET_CACHE_TTL_MINUTES", 60),
		RefreshSchedule: getEnv("MARKET_REFRESH_SCHEDULE", "@hourly"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.OpeningBalance.IsNegative() {
		return fmt.Errorf("OPENING_BALANCE must not be negative")
	}
	if c.CacheTTLMinutes <= 0 {
		return fmt.Errorf("MARKET_CACHE_TTL_MINUTES must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
