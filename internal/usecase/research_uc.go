package usecase

import (
	"context"
	"fmt"
	"strings"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

type ResearchUseCase interface {
	// Search returns the vendor's search-result object verbatim.
	Search(ctx context.Context, query, depth string) (map[string]any, error)
}

var _ ResearchUseCase = (*researchUC)(nil)

type researchUC struct {
	searcher adapter.WebSearcher
	log      *zerolog.Logger
}

func NewResearchUseCase(searcher adapter.WebSearcher, log *zerolog.Logger) ResearchUseCase {
	return &researchUC{searcher: searcher, log: log}
}

func (u *researchUC) Search(ctx context.Context, query, depth string) (map[string]any, error) {
	if u.searcher == nil {
		return nil, domain.ErrCredentialMissing
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}
	result, err := u.searcher.Search(ctx, query, depth)
	if err != nil {
		u.log.Error().Err(err).Msg("web research failed")
		return nil, err
	}
	return result, nil
}
