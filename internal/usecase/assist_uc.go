package usecase

import (
	"context"
	"fmt"
	"strings"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/metrics"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
)

// MarketingCopyRequest carries the free-form generation hints. Blank hints
// fall back to defaults and are echoed back in the result either way.
type MarketingCopyRequest struct {
	Prompt         string
	MarketingType  string
	Tone           string
	TargetAudience string
}

type MarketingCopyResult struct {
	Copy           string `json:"copy"`
	MarketingType  string `json:"marketingType"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"targetAudience"`
}

type CodeAssistRequest struct {
	Prompt   string
	Language string
	Context  string
}

type CodeAssistResult struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type AssistUseCase interface {
	MarketingCopy(ctx context.Context, req MarketingCopyRequest) (*MarketingCopyResult, error)
	CodeAssist(ctx context.Context, req CodeAssistRequest) (*CodeAssistResult, error)
}

var _ AssistUseCase = (*assistUC)(nil)

type assistUC struct {
	gen adapter.TextGenerator
	log *zerolog.Logger
}

// NewAssistUseCase wires the text-generation tools. gen may be nil when no
// text vendor credential is configured; calls then fail fast without any
// network traffic.
func NewAssistUseCase(gen adapter.TextGenerator, log *zerolog.Logger) AssistUseCase {
	return &assistUC{gen: gen, log: log}
}

func (u *assistUC) MarketingCopy(ctx context.Context, req MarketingCopyRequest) (*MarketingCopyResult, error) {
	if u.gen == nil {
		return nil, domain.ErrCredentialMissing
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	if req.MarketingType == "" {
		req.MarketingType = "general"
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}
	if req.TargetAudience == "" {
		req.TargetAudience = "general audience"
	}

	system := fmt.Sprintf(
		"You are an expert marketing copywriter. Write %s marketing copy in a %s tone for %s. Return only the copy itself.",
		req.MarketingType, req.Tone, req.TargetAudience,
	)
	messages := []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: req.Prompt},
	}
	recordPromptTokens("marketing-copy", system+req.Prompt)

	copyText, err := u.gen.Generate(ctx, messages)
	if err != nil {
		u.log.Error().Err(err).Str("vendor", u.gen.Name()).Msg("marketing copy generation failed")
		return nil, err
	}

	return &MarketingCopyResult{
		Copy:           copyText,
		MarketingType:  req.MarketingType,
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
	}, nil
}

func (u *assistUC) CodeAssist(ctx context.Context, req CodeAssistRequest) (*CodeAssistResult, error) {
	if u.gen == nil {
		return nil, domain.ErrCredentialMissing
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	if req.Language == "" {
		req.Language = "javascript"
	}

	system := fmt.Sprintf(
		"You are a senior %s developer. Respond with code only, no prose, no markdown fences.",
		req.Language,
	)
	prompt := req.Prompt
	if req.Context != "" {
		prompt = "Context:\n" + req.Context + "\n\nTask:\n" + req.Prompt
	}
	messages := []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}
	recordPromptTokens("code-assistant", system+prompt)

	code, err := u.gen.Generate(ctx, messages)
	if err != nil {
		u.log.Error().Err(err).Str("vendor", u.gen.Name()).Msg("code assist generation failed")
		return nil, err
	}

	return &CodeAssistResult{Code: code, Language: req.Language}, nil
}

// recordPromptTokens feeds the prompt-size metric; counting is best-effort
// and never blocks the call.
func recordPromptTokens(tool, text string) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return
	}
	metrics.AddPromptTokens(tool, len(enc.Encode(text, nil, nil)))
}
