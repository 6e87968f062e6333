package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origURL := os.Getenv("TMS_BASE_URL")
	defer os.Setenv("TMS_BASE_URL", origURL)

	os.Setenv("TMS_BASE_URL", "https://tms.test")
	os.Setenv("TMS_TIMEOUT_SEC", "30")

	cfg := Load()

	assert.Equal(t, "https://tms.test", cfg.TMS.BaseURL)
	assert.Equal(t, 30, cfg.TMS.TimeoutSec)
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{
		TMS: TMSConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			APIKey:       "key",
			Username:     "user",
			Password:     "pass",
		},
	}
	assert.Empty(t, cfg.Validate())

	cfg.TMS.Password = ""
	missing := cfg.Validate()
	assert.Len(t, missing, 1)
	assert.Contains(t, missing, "TMS_PASSWORD")
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
