package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// app config; provider credentials live with the provider packages
type Config struct {
	Provider            string
	ReviewLineThreshold int
	InterviewDuration   time.Duration
	Port                string
	CORSOrigins         []string
	ReportSchedule      string
	ReportEnabled       bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:            getEnvOrDefault("AI_PROVIDER", "gemini"),
		ReviewLineThreshold: getEnvInt("REVIEW_LINE_THRESHOLD", 5),
		InterviewDuration:   time.Duration(getEnvInt("INTERVIEW_DURATION_SECONDS", 1800)) * time.Second,
		Port:                getEnvOrDefault("PORT", "8080"),
		CORSOrigins:         splitOrigins(getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		ReportSchedule:      getEnvOrDefault("SESSION_REPORT_SCHEDULE", "*/5 * * * *"),
		ReportEnabled:       getEnvOrDefault("SESSION_REPORT_ENABLED", "false") == "true",
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.ReviewLineThreshold <= 0 {
		return errors.New("REVIEW_LINE_THRESHOLD must be positive")
	}
	if config.InterviewDuration <= 0 {
		return errors.New("INTERVIEW_DURATION_SECONDS must be positive")
	}
	return nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
