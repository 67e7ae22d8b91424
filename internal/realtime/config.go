package realtime

import (
	"errors"
	"os"
)

// holds OpenAI Realtime configuration
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is required")
	}

	model := os.Getenv("REALTIME_MODEL")
	if model == "" {
		model = "gpt-4o-realtime-preview-2024-12-17" // default model
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}, nil
}
