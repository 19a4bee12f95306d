package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/logging"
	"innovatehub-platform/internal/infra/worker"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type MediaUseCase interface {
	// EnhanceImage drives the enhancement job to completion and returns the
	// enhanced image URL.
	EnhanceImage(ctx context.Context, image string) (string, error)

	// GenerateVideo submits a generation; the vendor's job object is passed
	// through verbatim so the client can poll it by id.
	GenerateVideo(ctx context.Context, prompt string) (map[string]any, error)

	// VideoStatus fetches the vendor's task object for a prior generation.
	VideoStatus(ctx context.Context, generationID string) (map[string]any, error)
}

var _ MediaUseCase = (*mediaUC)(nil)

type mediaUC struct {
	enhancer adapter.ImageEnhancer
	video    adapter.VideoGenerator
	pool     *worker.Pool
	log      *zerolog.Logger
}

func NewMediaUseCase(enhancer adapter.ImageEnhancer, video adapter.VideoGenerator, pool *worker.Pool, log *zerolog.Logger) MediaUseCase {
	return &mediaUC{enhancer: enhancer, video: video, pool: pool, log: log}
}

func (u *mediaUC) EnhanceImage(ctx context.Context, image string) (string, error) {
	if u.enhancer == nil {
		return "", domain.ErrCredentialMissing
	}
	if strings.TrimSpace(image) == "" {
		return "", fmt.Errorf("%w: image is required", domain.ErrInvalidArgument)
	}

	jobID := ulid.Make().String()
	ctx = logging.WithJobID(ctx, jobID)
	l := logging.With(ctx, u.log)
	start := time.Now()

	var url string
	err := u.pool.Run(ctx, func(ctx context.Context) error {
		var err error
		url, err = u.enhancer.Enhance(ctx, image)
		return err
	})
	if err != nil {
		l.Error().Err(err).Msg("image enhancement failed")
		return "", err
	}
	l.Info().Dur("duration", time.Since(start)).Msg("image enhanced")
	return url, nil
}

func (u *mediaUC) GenerateVideo(ctx context.Context, prompt string) (map[string]any, error) {
	if u.video == nil {
		return nil, domain.ErrCredentialMissing
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	return u.video.CreateGeneration(ctx, prompt)
}

func (u *mediaUC) VideoStatus(ctx context.Context, generationID string) (map[string]any, error) {
	if u.video == nil {
		return nil, domain.ErrCredentialMissing
	}
	if strings.TrimSpace(generationID) == "" {
		return nil, fmt.Errorf("%w: generationId is required", domain.ErrInvalidArgument)
	}
	return u.video.GenerationStatus(ctx, model.JobHandle{ID: generationID, Vendor: "runway"})
}
