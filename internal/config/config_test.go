package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8480",
		JWTSecret:  strings.Repeat("s", 32),
		DBPassword: "strong-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidateRequiresPortAndSecret(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.Port = "8480"
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validProductionConfig()
	cfg.JWTSecret = "your-secret-key-change-in-production"
	require.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsShortSecret(t *testing.T) {
	cfg := validProductionConfig()
	cfg.JWTSecret = "short"
	require.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsWeakDBPassword(t *testing.T) {
	cfg := validProductionConfig()
	cfg.DBPassword = "password"
	require.Error(t, cfg.Validate())

	cfg.DBPassword = ""
	require.Error(t, cfg.Validate())
}

func TestValidateProductionAcceptsStrongConfig(t *testing.T) {
	assert.NoError(t, validProductionConfig().Validate())
}

func TestValidateDevelopmentAllowsDefaults(t *testing.T) {
	cfg := &Config{
		Port:      "8480",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}
