package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/metrics"
	"innovatehub-platform/internal/infra/poller"

	"github.com/rs/zerolog"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ImageEnhancer = (*ReplicateAdapter)(nil)

// ReplicateAdapter runs image enhancement as an asynchronous prediction:
// create, then poll the prediction until succeeded or failed.
type ReplicateAdapter struct {
	apiKey  string
	base    string // e.g., https://api.replicate.com/v1
	version string // enhancement model version hash
	client  *http.Client
	poll    poller.Config
	log     *zerolog.Logger
}

func NewReplicateAdapter(apiKey, version string, poll poller.Config, log *zerolog.Logger) (*ReplicateAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("replicate api key empty")
	}
	if version == "" {
		return nil, errors.New("replicate model version empty")
	}
	return &ReplicateAdapter{
		apiKey:  apiKey,
		base:    "https://api.replicate.com/v1",
		version: version,
		client:  &http.Client{Timeout: 30 * time.Second},
		poll:    poll,
		log:     log,
	}, nil
}

func (r *ReplicateAdapter) Enhance(ctx context.Context, image string) (string, error) {
	handle, err := r.createPrediction(ctx, image)
	if err != nil {
		return "", err
	}
	r.log.Debug().Str("prediction_id", handle.ID).Msg("replicate prediction accepted")

	res, err := poller.Wait(ctx, r.poll, "replicate", func(ctx context.Context) (*model.JobResult, error) {
		return r.predictionStatus(ctx, handle)
	})
	if err != nil {
		return "", err
	}
	if res.State == model.JobStateFailed {
		return "", &domain.VendorError{Vendor: "replicate", Message: res.Reason}
	}
	url := outputURL(res.Payload["output"])
	if url == "" {
		return "", errors.New("replicate: prediction succeeded without an output url")
	}
	return url, nil
}

func (r *ReplicateAdapter) createPrediction(ctx context.Context, image string) (model.JobHandle, error) {
	reqBody := struct {
		Version string         `json:"version"`
		Input   map[string]any `json:"input"`
	}{Version: r.version, Input: map[string]any{"image": image}}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/predictions", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	start := time.Now()
	resp, err := r.client.Do(req)
	metrics.ObserveVendorCall("replicate", "create", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return model.JobHandle{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.JobHandle{}, &domain.VendorError{Vendor: "replicate", Status: resp.StatusCode, Message: string(body)}
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.JobHandle{}, err
	}
	if payload.ID == "" {
		return model.JobHandle{}, errors.New("replicate: prediction accepted without an id")
	}
	return model.JobHandle{ID: payload.ID, Vendor: "replicate"}, nil
}

func (r *ReplicateAdapter) predictionStatus(ctx context.Context, handle model.JobHandle) (*model.JobResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/predictions/"+handle.ID, nil)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	start := time.Now()
	resp, err := r.client.Do(req)
	metrics.ObserveVendorCall("replicate", "status", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.VendorError{Vendor: "replicate", Status: resp.StatusCode, Message: string(body)}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	switch payload["status"] {
	case "succeeded":
		return model.Succeeded(payload), nil
	case "failed", "canceled":
		return model.Failed(fmt.Sprint(payload["error"])), nil
	default: // starting, processing
		return model.Pending(), nil
	}
}

// outputURL handles both output shapes the API produces: a bare URL string
// or a list of URLs (last one is the final image).
func outputURL(output any) string {
	switch t := output.(type) {
	case string:
		return t
	case []any:
		for i := len(t) - 1; i >= 0; i-- {
			if s, ok := t[i].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
