package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.WebSearcher = (*TavilyAdapter)(nil)

// TavilyAdapter runs a synchronous web search and passes the vendor's result
// object through verbatim.
type TavilyAdapter struct {
	apiKey string
	base   string // e.g., https://api.tavily.com
	client *http.Client
}

func NewTavilyAdapter(apiKey string) (*TavilyAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("tavily api key empty")
	}
	return &TavilyAdapter{
		apiKey: apiKey,
		base:   "https://api.tavily.com",
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (t *TavilyAdapter) Search(ctx context.Context, query, depth string) (map[string]any, error) {
	if depth == "" {
		depth = "basic"
	}
	reqBody := struct {
		Query       string `json:"query"`
		SearchDepth string `json:"search_depth"`
	}{Query: query, SearchDepth: depth}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, t.base+"/search", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	start := time.Now()
	resp, err := t.client.Do(req)
	metrics.ObserveVendorCall("tavily", "search", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.VendorError{Vendor: "tavily", Status: resp.StatusCode, Message: string(body)}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
