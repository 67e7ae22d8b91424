package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client wraps the real-time conversational-session provider: it issues
// short-lived credentials for a new conversation and injects out-of-band
// text into an ongoing one.
type Client struct {
	config       *Config
	instructions string
	httpClient   *http.Client
	logger       *zap.Logger
}

// EphemeralSession is the credential handed to the frontend so it can open
// the realtime conversation directly. SessionID, when present, is the
// server-side reference used for context injection.
type EphemeralSession struct {
	Value     string `json:"value"`
	SessionID string `json:"session_id,omitempty"`
}

func NewClient(config *Config, instructions string, logger *zap.Logger) *Client {
	return &Client{
		config:       config,
		instructions: instructions,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// CreateEphemeralKey requests a short-lived client secret for a new realtime
// session configured with the interviewer instructions.
func (c *Client) CreateEphemeralKey(ctx context.Context) (*EphemeralSession, error) {
	payload := map[string]any{
		"session": map[string]any{
			"type":         "realtime",
			"model":        c.config.Model,
			"instructions": c.instructions,
		},
	}

	var eph EphemeralSession
	if err := c.post(ctx, c.config.BaseURL+"/realtime/client_secrets", payload, &eph); err != nil {
		return nil, fmt.Errorf("failed to create ephemeral key: %w", err)
	}
	if eph.Value == "" {
		return nil, fmt.Errorf("realtime provider returned no ephemeral key")
	}

	return &eph, nil
}

// InjectContext pushes a system-style text item into an ongoing realtime
// conversation so the interviewer agent can reference it. Callers treat
// failures as non-fatal.
func (c *Client) InjectContext(ctx context.Context, realtimeSessionID, content string) error {
	payload := map[string]any{
		"type": "conversation.item.create",
		"item": map[string]any{
			"type": "message",
			"role": "system",
			"content": []map[string]any{
				{"type": "input_text", "text": content},
			},
		},
	}

	url := c.config.BaseURL + "/realtime/sessions/" + realtimeSessionID + "/items"
	if err := c.post(ctx, url, payload, nil); err != nil {
		return fmt.Errorf("failed to inject context: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("realtime API error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", url),
			zap.ByteString("detail", detail))
		return fmt.Errorf("realtime API error: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode realtime response: %w", err)
		}
	}
	return nil
}
