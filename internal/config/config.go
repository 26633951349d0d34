package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// JWTSecret verifies bearer tokens issued by the identity service.
	JWTSecret string

	// ContentServiceURL is the base URL of the service that owns exams and
	// question groups.
	ContentServiceURL string
	// GradingServiceURL is the base URL of the service that scores a
	// submitted answer sheet.
	GradingServiceURL string
	// CollaboratorTimeout bounds each call to the content/grading services.
	CollaboratorTimeout time.Duration

	// SittingGrace is how long a finished or abandoned sitting stays in the
	// in-memory registry beyond the exam duration before being evicted.
	SittingGrace time.Duration

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "pretty"),
		JWTSecret:           getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		ContentServiceURL:   getEnv("CONTENT_SERVICE_URL", "http://localhost:8081/api/v1"),
		GradingServiceURL:   getEnv("GRADING_SERVICE_URL", "http://localhost:8082/api/v1"),
		CollaboratorTimeout: time.Duration(getEnvInt("COLLABORATOR_TIMEOUT_SECONDS", 15)) * time.Second,
		SittingGrace:        time.Duration(getEnvInt("SITTING_GRACE_MINUTES", 30)) * time.Minute,
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
