package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	SMTP     SMTPConfig
	Alert    AlertConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// UpstreamConfig holds the time tracker API configuration. Per-employee API
// keys are an explicit mapping injected here, never looked up from global
// state by the engine.
type UpstreamConfig struct {
	BaseURL         string
	DirectoryAPIKey string
	APIKeys         map[int64]string
}

// SMTPConfig holds the outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AlertConfig holds the daily-check configuration
type AlertConfig struct {
	Recipient string
	RunHour   int // UTC hour the cron job fires in
}

func Load() (*Config, error) {
	// .env is optional outside local development.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Upstream tracker configuration
	apiKeys, err := parseAPIKeys(getEnv("UPSTREAM_API_KEYS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_API_KEYS: %w", err)
	}

	config.Upstream = UpstreamConfig{
		BaseURL:         getEnv("UPSTREAM_BASE_URL", ""),
		DirectoryAPIKey: getEnv("UPSTREAM_DIRECTORY_API_KEY", ""),
		APIKeys:         apiKeys,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Time Logger Bot"),
	}

	// Daily check configuration
	runHour, err := strconv.Atoi(getEnv("ALERT_RUN_HOUR", "18"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_RUN_HOUR: %w", err)
	}

	config.Alert = AlertConfig{
		Recipient: getEnv("ALERT_RECIPIENT", ""),
		RunHour:   runHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.Upstream.DirectoryAPIKey == "" {
		return fmt.Errorf("UPSTREAM_DIRECTORY_API_KEY is required")
	}
	if c.Alert.RunHour < 0 || c.Alert.RunHour > 23 {
		return fmt.Errorf("ALERT_RUN_HOUR must be between 0 and 23")
	}
	return nil
}

// parseAPIKeys parses "employeeID:key,employeeID:key" pairs.
func parseAPIKeys(value string) (map[int64]string, error) {
	keys := make(map[int64]string)
	if value == "" {
		return keys, nil
	}

	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed employee id in pair %q", pair)
		}
		keys[id] = parts[1]
	}
	return keys, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
