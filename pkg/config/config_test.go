package config

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_RATE_LIMIT", "50")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg, err := Load("nonexistent.env", logger)
	require.NoError(t, err)

	assert.Equal(t, "supersecret", cfg.Jwt.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Jwt.Expiry)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, "*", cfg.Server.AllowedOrigins)
	assert.Contains(t, cfg.DB.Url, "postgres://")
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "placeholder") // registers restore on cleanup
	os.Unsetenv("JWT_SECRET")             //nolint:errcheck

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Load("nonexistent.env", logger)
	assert.Error(t, err)
}
