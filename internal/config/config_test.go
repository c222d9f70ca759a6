package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/library_api/internal/config"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range []string{"DB_DSN", "ENV", "HTTP_ADDR", "STORAGE", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, values[key])
	}
}

func Test_FromEnv_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"DB_DSN": "postgres://localhost/library"})

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/library", cfg.GetDBDSN())
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, config.StoragePostgres, cfg.Storage)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func Test_FromEnv_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"ENV":              "production",
		"HTTP_ADDR":        "127.0.0.1:8080",
		"STORAGE":          "memory",
		"SHUTDOWN_TIMEOUT": "3s",
	})

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.DBDSN)
}

func Test_FromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres_without_dsn", env: map[string]string{}},
		{name: "unknown_storage", env: map[string]string{"STORAGE": "redis"}},
		{name: "bad_timeout", env: map[string]string{"STORAGE": "memory", "SHUTDOWN_TIMEOUT": "soon"}},
		{name: "negative_timeout", env: map[string]string{"STORAGE": "memory", "SHUTDOWN_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			cfg, err := config.FromEnv()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
