package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AI_PROVIDER",
		"REVIEW_LINE_THRESHOLD",
		"INTERVIEW_DURATION_SECONDS",
		"PORT",
		"CORS_ORIGINS",
		"SESSION_REPORT_SCHEDULE",
		"SESSION_REPORT_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gemini", config.Provider)
	assert.Equal(t, 5, config.ReviewLineThreshold)
	assert.Equal(t, 1800*time.Second, config.InterviewDuration)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, config.CORSOrigins)
	assert.Equal(t, "*/5 * * * *", config.ReportSchedule)
	assert.False(t, config.ReportEnabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVIEW_LINE_THRESHOLD", "10")
	t.Setenv("INTERVIEW_DURATION_SECONDS", "900")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_REPORT_ENABLED", "true")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, config.ReviewLineThreshold)
	assert.Equal(t, 900*time.Second, config.InterviewDuration)
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.CORSOrigins)
	assert.True(t, config.ReportEnabled)
}

func TestLoadConfigUnsupportedProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestLoadConfigRejectsNonPositiveThreshold(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVIEW_LINE_THRESHOLD", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERVIEW_DURATION_SECONDS", "-5")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigIgnoresMalformedInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVIEW_LINE_THRESHOLD", "lots")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, config.ReviewLineThreshold)
}
