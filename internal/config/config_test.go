package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		LogLevel:       "info",
		Port:           8088,
		StorageBackend: "file",
		LogsFile:       "data/duck_logs.json",
		AuthToken:      "MOCK-TOKEN",
		FeedLimit:      20,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.StorageBackend = "postgres"
	assert.Error(t, cfg.Validate(), "postgres requires a DSN")
	cfg.PostgresDSN = "postgres://localhost/quacklog"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.StorageBackend = "redis"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.LogsFile = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "qa"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Env = "production"
	assert.Error(t, cfg.Validate(), "non-development needs an auth service")
	cfg.AuthServiceURL = "https://auth.example.com/introspect"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.FeedLimit = 0
	assert.Error(t, cfg.Validate())
}
