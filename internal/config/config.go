package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot process.
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

// TelegramConfig holds transport settings.
type TelegramConfig struct {
	Token              string
	PollTimeoutSeconds int
	Debug              bool
}

// DatabaseConfig holds the sqlite file location.
type DatabaseConfig struct {
	Path string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, errors.New("config: BOT_TOKEN is required")
	}

	return &Config{
		Telegram: TelegramConfig{
			Token:              token,
			PollTimeoutSeconds: getEnvAsInt("POLL_TIMEOUT_SECONDS", 30),
			Debug:              getEnvAsBool("TELEGRAM_DEBUG", false),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "planner.db"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
