package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string     `env:"ADDR"      envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	LLMAPIKey  string `env:"GOOGLE_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"   envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	LLMModel   string `env:"LLM_MODEL"      envDefault:"gemini-2.5-flash"`

	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT"        envDefault:"10s"`
	FetchMaxBodyBytes int64         `env:"FETCH_MAX_BODY_BYTES" envDefault:"5242880"`

	TelegramToken string `env:"TELEGRAM_TOKEN"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT must be positive (got %s)", cfg.FetchTimeout)
	}
	if cfg.FetchMaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("FETCH_MAX_BODY_BYTES must be positive (got %d)", cfg.FetchMaxBodyBytes)
	}

	return cfg, nil
}
