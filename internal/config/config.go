package config

import (
	"context"
	"errors"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"APP_ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Port     int    `env:"PORT, default=8088"`

	StorageBackend string `env:"STORAGE_BACKEND, default=file"`
	PostgresDSN    string `env:"POSTGRES_DSN"`
	LogsFile       string `env:"LOGS_FILE, default=data/duck_logs.json"`

	AuthToken      string `env:"AUTH_TOKEN, default=MOCK-TOKEN"`
	AuthServiceURL string `env:"AUTH_SERVICE_URL"`

	// FeedLimit caps how many recent submissions feed the rollup.
	FeedLimit int `env:"FEED_LIMIT, default=20"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.StorageBackend == "file" && c.LogsFile == "" {
		return errors.New("file storage requires LOGS_FILE to be set")
	}
	if c.StorageBackend != "file" && c.StorageBackend != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.FeedLimit <= 0 {
		return errors.New("FEED_LIMIT must be positive")
	}
	return nil
}
