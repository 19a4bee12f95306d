package ai

import (
	"context"

	"innovatehub-platform/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.TextGenerator = (*limitedText)(nil)

type limitedText struct {
	inner adapter.TextGenerator
	sem   chan struct{}
}

// NewLimitedText caps concurrent text-generation calls against one vendor.
func NewLimitedText(inner adapter.TextGenerator, maxConcurrent int) adapter.TextGenerator {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedText{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedText) Name() string { return l.inner.Name() }

func (l *limitedText) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Generate(ctx, messages)
}
