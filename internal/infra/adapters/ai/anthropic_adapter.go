package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TextGenerator = (*AnthropicAdapter)(nil)

// AnthropicAdapter implements adapter.TextGenerator against the Messages API.
// Authorization: x-api-key header plus a pinned anthropic-version.
type AnthropicAdapter struct {
	apiKey string
	base   string // e.g., https://api.anthropic.com/v1
	model  string
	client *http.Client
}

func NewAnthropicAdapter(apiKey, model string) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key empty")
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicAdapter{
		apiKey: apiKey,
		base:   "https://api.anthropic.com/v1",
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *AnthropicAdapter) Name() string { return "anthropic" }

func (a *AnthropicAdapter) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	// The Messages API takes the system prompt out-of-band.
	var system string
	chat := make([]adapter.Message, 0, len(messages))
	for _, m := range messages {
		if strings.ToLower(m.Role) == "system" {
			system = m.Content
			continue
		}
		chat = append(chat, m)
	}

	reqBody := struct {
		Model     string            `json:"model"`
		MaxTokens int               `json:"max_tokens"`
		System    string            `json:"system,omitempty"`
		Messages  []adapter.Message `json:"messages"`
	}{Model: a.model, MaxTokens: 4096, System: system, Messages: chat}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/messages", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	start := time.Now()
	resp, err := a.client.Do(req)
	metrics.ObserveVendorCall("anthropic", "messages", int(time.Since(start)/time.Millisecond), err == nil && resp.StatusCode < 300)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &domain.VendorError{Vendor: "anthropic", Status: resp.StatusCode, Message: string(body)}
	}

	var payload struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	for _, c := range payload.Content {
		if c.Type == "text" && c.Text != "" {
			return c.Text, nil
		}
	}
	return "", errors.New("anthropic: no text content")
}
