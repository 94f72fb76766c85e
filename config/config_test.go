package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GO_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, 30, cfg.SessionDuration)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.Same(t, cfg, GetConfig())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GO_ENV", "test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateStorageBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"local backend", Config{JWTSecret: "x", StorageBackend: "local"}, false},
		{"s3 backend with bucket", Config{JWTSecret: "x", StorageBackend: "s3", AWSS3Bucket: "b"}, false},
		{"s3 backend without bucket", Config{JWTSecret: "x", StorageBackend: "s3"}, true},
		{"unknown backend", Config{JWTSecret: "x", StorageBackend: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_DURATION_MINUTES", "120")
	t.Setenv("SUPPORT_CONTACT", "1800-999-000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 120, cfg.SessionDuration)
	assert.Equal(t, "1800-999-000", cfg.SupportContact)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	assert.Equal(t, 587, getEnvInt("SMTP_PORT", 587))
}
