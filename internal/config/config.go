package config

import (
	"fmt"
	"os"

	"billdesk/internal/logger"
)

// Config holds every environment-driven setting for the server and CLI.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string

	// Bearer tokens are issued by the external identity provider and verified
	// locally with this shared secret.
	AuthJWTSecret string

	OpenAIAPIKey string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. DATABASE_URL is mandatory;
// everything else has a default or degrades a single feature when absent.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AuthJWTSecret:  os.Getenv("AUTH_JWT_SECRET"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// LoggerConfig maps the logging settings into the logger package's config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
