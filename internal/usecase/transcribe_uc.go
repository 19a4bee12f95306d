package usecase

import (
	"context"
	"fmt"
	"time"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/logging"
	"innovatehub-platform/internal/infra/worker"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type TranscribeUseCase interface {
	// Transcribe runs the vendor's transcription job to completion and
	// returns the transcript object verbatim.
	Transcribe(ctx context.Context, audio []byte) (map[string]any, error)
}

var _ TranscribeUseCase = (*transcribeUC)(nil)

type transcribeUC struct {
	transcriber adapter.Transcriber
	pool        *worker.Pool
	log         *zerolog.Logger
}

func NewTranscribeUseCase(transcriber adapter.Transcriber, pool *worker.Pool, log *zerolog.Logger) TranscribeUseCase {
	return &transcribeUC{transcriber: transcriber, pool: pool, log: log}
}

func (u *transcribeUC) Transcribe(ctx context.Context, audio []byte) (map[string]any, error) {
	if u.transcriber == nil {
		return nil, domain.ErrCredentialMissing
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio payload is empty", domain.ErrInvalidArgument)
	}

	ctx = logging.WithJobID(ctx, ulid.Make().String())
	l := logging.With(ctx, u.log)
	start := time.Now()

	var transcript map[string]any
	err := u.pool.Run(ctx, func(ctx context.Context) error {
		var err error
		transcript, err = u.transcriber.Transcribe(ctx, audio)
		return err
	})
	if err != nil {
		l.Error().Err(err).Msg("transcription failed")
		return nil, err
	}
	l.Info().Dur("duration", time.Since(start)).Msg("audio transcribed")
	return transcript, nil
}
