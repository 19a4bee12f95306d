package speech

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
var _ adapter.Transcriber = (*AssemblyAIAdapter)(nil)

// AssemblyAIAdapter uploads the audio payload, submits a transcript job and
// polls it to completion. The completed transcript object is returned
// verbatim.
type AssemblyAIAdapter struct {
	apiKey string
	base   string // e.g., https://api.assemblyai.com/v2
	client *http.Client
	poll   poller.Config
	log    *zerolog.Logger
}

func NewAssemblyAIAdapter(apiKey string, poll poller.Config, log *zerolog.Logger) (*AssemblyAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("assemblyai api key empty")
	}
	return &AssemblyAIAdapter{
		apiKey: apiKey,
		base:   "https://api.assemblyai.com/v2",
		client: &http.Client{Timeout: 60 * time.Second},
		poll:   poll,
		log:    log,
	}, nil
}

func (a *AssemblyAIAdapter) Transcribe(ctx context.Context, audio []byte) (map[string]any, error) {
	uploadURL, err := a.upload(ctx, audio)
	if err != nil {
		return nil, err
	}

	handle, err := a.createTranscript(ctx, uploadURL)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("transcript_id", handle.ID).Int("audio_bytes", len(audio)).Msg("transcript job accepted")

	res, err := poller.Wait(ctx, a.poll, "assemblyai", func(ctx context.Context) (*model.JobResult, error) {
		return a.transcriptStatus(ctx, handle)
	})
	if err != nil {
		return nil, err
	}
	if res.State == model.JobStateFailed {
		return nil, &domain.VendorError{Vendor: "assemblyai", Message: res.Reason}
	}
	return res.Payload, nil
}

func (a *AssemblyAIAdapter) upload(ctx context.Context, audio []byte) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/upload", bytes.NewReader(audio))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", a.apiKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	metrics.ObserveVendorCall("assemblyai", "upload", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &domain.VendorError{Vendor: "assemblyai", Status: resp.StatusCode, Message: string(body)}
	}

	var payload struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.UploadURL == "" {
		return "", errors.New("assemblyai: upload accepted without a url")
	}
	return payload.UploadURL, nil
}

func (a *AssemblyAIAdapter) createTranscript(ctx context.Context, audioURL string) (model.JobHandle, error) {
	reqBody := struct {
		AudioURL string `json:"audio_url"`
	}{AudioURL: audioURL}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/transcript", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.apiKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	metrics.ObserveVendorCall("assemblyai", "create", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return model.JobHandle{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.JobHandle{}, &domain.VendorError{Vendor: "assemblyai", Status: resp.StatusCode, Message: string(body)}
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.JobHandle{}, err
	}
	if payload.ID == "" {
		return model.JobHandle{}, errors.New("assemblyai: transcript accepted without an id")
	}
	return model.JobHandle{ID: payload.ID, Vendor: "assemblyai"}, nil
}

func (a *AssemblyAIAdapter) transcriptStatus(ctx context.Context, handle model.JobHandle) (*model.JobResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, a.base+"/transcript/"+handle.ID, nil)
	req.Header.Set("Authorization", a.apiKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	metrics.ObserveVendorCall("assemblyai", "status", int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.VendorError{Vendor: "assemblyai", Status: resp.StatusCode, Message: string(body)}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	switch payload["status"] {
	case "completed":
		return model.Succeeded(payload), nil
	case "error":
		return model.Failed(fmt.Sprint(payload["error"])), nil
	default: // queued, processing
		return model.Pending(), nil
	}
}
