package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.VideoGenerator = (*RunwayAdapter)(nil)

// RunwayAdapter exposes the vendor's task protocol directly: the client
// submits a generation and polls by task id. Task objects pass through
// verbatim.
type RunwayAdapter struct {
	apiKey string
	base   string // e.g., https://api.dev.runwayml.com/v1
	model  string
	client *http.Client
}

func NewRunwayAdapter(apiKey, model string) (*RunwayAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("runway api key empty")
	}
	if model == "" {
		model = "gen3a_turbo"
	}
	return &RunwayAdapter{
		apiKey: apiKey,
		base:   "https://api.dev.runwayml.com/v1",
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (r *RunwayAdapter) CreateGeneration(ctx context.Context, prompt string) (map[string]any, error) {
	reqBody := struct {
		PromptText string `json:"promptText"`
		Model      string `json:"model"`
	}{PromptText: prompt, Model: r.model}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/text_to_video", bytes.NewReader(b))
	r.setHeaders(req)

	return r.do(req, "create")
}

func (r *RunwayAdapter) GenerationStatus(ctx context.Context, handle model.JobHandle) (map[string]any, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/tasks/"+handle.ID, nil)
	r.setHeaders(req)

	return r.do(req, "status")
}

func (r *RunwayAdapter) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("X-Runway-Version", "2024-11-06")
}

func (r *RunwayAdapter) do(req *http.Request, op string) (map[string]any, error) {
	start := time.Now()
	resp, err := r.client.Do(req)
	metrics.ObserveVendorCall("runway", op, int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.VendorError{Vendor: "runway", Status: resp.StatusCode, Message: string(body)}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
