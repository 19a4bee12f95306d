package adapter

import (
	"context"

	"innovatehub-platform/internal/domain/model"
)

// ImageEnhancer drives a vendor's asynchronous enhancement job to completion
// and returns the enhanced image URL.
type ImageEnhancer interface {
	Enhance(ctx context.Context, image string) (string, error)
}

// VideoGenerator exposes the vendor's job protocol directly: the client
// submits a generation and polls its status by handle. Vendor objects are
// passed through verbatim.
type VideoGenerator interface {
	CreateGeneration(ctx context.Context, prompt string) (map[string]any, error)
	GenerationStatus(ctx context.Context, handle model.JobHandle) (map[string]any, error)
}
