package config

import (
	"os"
	"strconv"
)

// TMSConfig holds the upstream Transportation Management System connection
// settings. All credential fields are required for token acquisition.
type TMSConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	APIKey       string
	Username     string
	Password     string
	TimeoutSec   int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	TMS     TMSConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		TMS: TMSConfig{
			BaseURL:      getEnv("TMS_BASE_URL", "https://sandbox-publicapi.tms-example.com"),
			ClientID:     getEnv("TMS_CLIENT_ID", ""),
			ClientSecret: getEnv("TMS_CLIENT_SECRET", ""),
			APIKey:       getEnv("TMS_API_KEY", ""),
			Username:     getEnv("TMS_USERNAME", ""),
			Password:     getEnv("TMS_PASSWORD", ""),
			TimeoutSec:   getEnvInt("TMS_TIMEOUT_SEC", 20),
		},
	}
}

// Validate reports whether the upstream credential block is complete.
// Missing credentials are a startup configuration error, not a runtime condition.
func (c *AppConfig) Validate() []string {
	var missing []string
	required := map[string]string{
		"TMS_CLIENT_ID":     c.TMS.ClientID,
		"TMS_CLIENT_SECRET": c.TMS.ClientSecret,
		"TMS_API_KEY":       c.TMS.APIKey,
		"TMS_USERNAME":      c.TMS.Username,
		"TMS_PASSWORD":      c.TMS.Password,
	}
	for k, v := range required {
		if v == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
