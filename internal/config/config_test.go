package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "data/servicedesk.db", cfg.Database.Path)
	assert.Equal(t, 720, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.Equal(t, "servicedesk-backups", cfg.Storage.KeyPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ARMDESK_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ARMDESK_AUTH_JWTSECRET", "test-secret")
	t.Setenv("ARMDESK_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("ARMDESK_STORAGE_BUCKET", "backups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "backups", cfg.Storage.Bucket)
}
