package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite://sharebnb.db", cfg.DatabaseURL)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, StorageS3, cfg.StorageBackend)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES", "0")
	t.Setenv("STORAGE_BACKEND", "gridfs")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://sharebnb.example.com, http://localhost:3000,")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Zero(t, cfg.TokenTTL)
	require.Equal(t, StorageGridFS, cfg.StorageBackend)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, "https://api.example.com", cfg.PublicBaseURL)
	require.Equal(t, []string{"https://sharebnb.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad ttl", key: "JWT_ACCESS_TOKEN_EXPIRES", val: "soon"},
		{name: "bad cost", key: "BCRYPT_COST", val: "high"},
		{name: "bad backend", key: "STORAGE_BACKEND", val: "ftp"},
		{name: "bad level", key: "LOG_LEVEL", val: "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "secret")
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			require.Error(t, err)
		})
	}
}
