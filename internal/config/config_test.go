package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AGROSTORE_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "./storage", cfg.StorageDir)
	assert.False(t, cfg.SerializeStock)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AGROSTORE_JWT_SECRET", "test-secret")
	t.Setenv("AGROSTORE_PORT", "9000")
	t.Setenv("AGROSTORE_TOKEN_TTL", "1h")
	t.Setenv("AGROSTORE_SERIALIZE_STOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SerializeStock)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AGROSTORE_JWT_SECRET", "placeholder")
	os.Unsetenv("AGROSTORE_JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}
