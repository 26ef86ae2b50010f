package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the movie bot
type Config struct {
	Telegram  TelegramConfig
	Kinopoisk KinopoiskConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
}

// KinopoiskConfig holds movie catalog API configuration
type KinopoiskConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"

	// sqlite
	Path string

	// postgres
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config    *Config
	Telegram  *TelegramConfig
	Kinopoisk *KinopoiskConfig
	Database  *DatabaseConfig
	Logging   *LoggingConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:    cfg,
		Telegram:  &cfg.Telegram,
		Kinopoisk: &cfg.Kinopoisk,
		Database:  &cfg.Database,
		Logging:   &cfg.Logging,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("KINOPOISK_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KINOPOISK_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Kinopoisk: KinopoiskConfig{
			APIKey:  getEnv("KINOPOISK_API_KEY", ""),
			BaseURL: getEnv("KINOPOISK_BASE_URL", "https://api.kinopoisk.dev/v1.4"),
			Timeout: timeout,
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "movies_bot.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "movies_bot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Kinopoisk.APIKey == "" {
		return fmt.Errorf("KINOPOISK_API_KEY is required")
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
