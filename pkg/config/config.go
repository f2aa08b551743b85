package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppEnv   string
	LogLevel string
	UserID   string

	// Scheduling defaults used when a snapshot has nothing configured.
	Timezone       string
	DayStartMinute int
	DayEndMinute   int
}

// Load loads configuration from environment variables, reading a .env file
// first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("SUNDIAL_USER_ID", "00000000-0000-0000-0000-000000000001"),

		Timezone:       getEnv("SUNDIAL_TIMEZONE", "UTC"),
		DayStartMinute: getIntEnv("SUNDIAL_DAY_START", 9*60),
		DayEndMinute:   getIntEnv("SUNDIAL_DAY_END", 17*60),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
