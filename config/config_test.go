package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	os.Setenv("KINOPOISK_API_KEY", "test-api-key")
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("KINOPOISK_API_KEY")
	})
}

// TestLoad_Defaults проверяет значения по умолчанию
func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.Path != "movies_bot.db" {
		t.Errorf("Expected default db path movies_bot.db, got %q", cfg.Database.Path)
	}
	if cfg.Kinopoisk.BaseURL != "https://api.kinopoisk.dev/v1.4" {
		t.Errorf("Unexpected default base URL: %q", cfg.Kinopoisk.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.Logging.Level)
	}
}

// TestLoad_MissingRequired проверяет отказ запуска без обязательных переменных
func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{
			name: "No bot token",
			setup: func() {
				os.Unsetenv("TELEGRAM_BOT_TOKEN")
				os.Setenv("KINOPOISK_API_KEY", "key")
			},
		},
		{
			name: "No API key",
			setup: func() {
				os.Setenv("TELEGRAM_BOT_TOKEN", "token")
				os.Unsetenv("KINOPOISK_API_KEY")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer func() {
				os.Unsetenv("TELEGRAM_BOT_TOKEN")
				os.Unsetenv("KINOPOISK_API_KEY")
			}()

			if _, err := Load(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

// TestValidate_InvalidDriver проверяет валидацию драйвера базы данных
func TestValidate_InvalidDriver(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("DB_DRIVER", "oracle")
	defer os.Unsetenv("DB_DRIVER")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unsupported driver, got nil")
	}
}
