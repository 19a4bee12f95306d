//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"innovatehub-platform/internal/domain"
)

func TestSearch(t *testing.T) {
	t.Run("result passed through with depth", func(t *testing.T) {
		s := &fakeSearcher{result: map[string]any{
			"answer":  "42",
			"results": []any{map[string]any{"url": "https://example.com"}},
		}}
		uc := NewResearchUseCase(s, testLogger())

		got, err := uc.Search(context.Background(), "meaning of life", "advanced")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got["answer"] != "42" {
			t.Fatalf("result mangled: %v", got)
		}
		if s.lastDepth != "advanced" {
			t.Fatalf("depth = %q, want advanced", s.lastDepth)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		uc := NewResearchUseCase(nil, testLogger())
		if _, err := uc.Search(context.Background(), "q", ""); !errors.Is(err, domain.ErrCredentialMissing) {
			t.Fatalf("err = %v, want ErrCredentialMissing", err)
		}
	})

	t.Run("blank query rejected", func(t *testing.T) {
		s := &fakeSearcher{}
		uc := NewResearchUseCase(s, testLogger())
		if _, err := uc.Search(context.Background(), "  ", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
		if s.calls != 0 {
			t.Fatal("vendor called despite blank query")
		}
	})
}
