package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultFromEmail is used when FROM_EMAIL is not set.
const DefaultFromEmail = "Doors Leads <onboarding@resend.dev>"

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration

	// Lead delivery
	LeadsToEmail      string
	FromEmail         string
	LeadsLocale       string
	LeadsMaxFiles     int
	LeadsMaxFileBytes int64
	LeadsMaxBodyBytes int64

	// Email provider: auto, resend, sendgrid, ses or stub
	EmailProvider  string
	ResendAPIKey   string
	SendGridAPIKey string

	// AWS (SES)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		HTTPReadTimeout:    getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout:   getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),

		LeadsToEmail:      strings.TrimSpace(getEnv("LEADS_TO_EMAIL", "")),
		FromEmail:         getEnv("FROM_EMAIL", DefaultFromEmail),
		LeadsLocale:       strings.ToLower(getEnv("LEADS_LOCALE", "en")),
		LeadsMaxFiles:     getEnvAsInt("LEADS_MAX_FILES", 3),
		LeadsMaxFileBytes: int64(getEnvAsInt("LEADS_MAX_FILE_BYTES", 4*1024*1024)),
		LeadsMaxBodyBytes: int64(getEnvAsInt("LEADS_MAX_BODY_BYTES", 25*1024*1024)),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
