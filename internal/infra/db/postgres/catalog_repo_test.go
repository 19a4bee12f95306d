//go:build !integration

package postgres

import (
	"testing"
	"time"
)

func TestBuildRecord(t *testing.T) {
	t.Run("string id preserved", func(t *testing.T) {
		rec := buildRecord([]string{"id", "name"}, []any{"u-1", "ada"}, 0)
		if rec.ID() != "u-1" {
			t.Fatalf("id = %q, want u-1", rec.ID())
		}
	})

	t.Run("numeric id stringified", func(t *testing.T) {
		rec := buildRecord([]string{"id", "name"}, []any{int64(7), "ada"}, 0)
		if rec.ID() != "7" {
			t.Fatalf("id = %q, want 7", rec.ID())
		}
	})

	t.Run("null id falls back to ordinal", func(t *testing.T) {
		rec := buildRecord([]string{"id", "name"}, []any{nil, "ada"}, 3)
		if rec.ID() != "3" {
			t.Fatalf("id = %q, want the ordinal", rec.ID())
		}
	})

	t.Run("absent id column falls back to ordinal", func(t *testing.T) {
		rec := buildRecord([]string{"name"}, []any{"ada"}, 0)
		if rec.ID() != "0" {
			t.Fatalf("id = %q, want 0", rec.ID())
		}
	})

	t.Run("short value row pads with null", func(t *testing.T) {
		rec := buildRecord([]string{"id", "name", "age"}, []any{"1", "ada"}, 0)
		if rec["age"].Display() != "" {
			t.Fatalf("age = %q, want empty", rec["age"].Display())
		}
	})

	t.Run("driver types convert", func(t *testing.T) {
		ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		rec := buildRecord(
			[]string{"id", "active", "created_at", "meta"},
			[]any{"1", true, ts, map[string]any{"k": "v"}},
			0,
		)
		if rec["active"].Display() != "true" {
			t.Fatalf("active = %q", rec["active"].Display())
		}
		if rec["created_at"].Display() != "2025-01-02T03:04:05Z" {
			t.Fatalf("created_at = %q", rec["created_at"].Display())
		}
		if rec["meta"].Obj["k"].Str != "v" {
			t.Fatalf("meta mangled: %+v", rec["meta"])
		}
	})
}

func TestQuoteIdent(t *testing.T) {
	cases := map[string]string{
		"users":        `"users"`,
		"odd name":     `"odd name"`,
		`evil"; drop`:  `"evil""; drop"`,
		`"quoted"`:     `"""quoted"""`,
	}
	for in, want := range cases {
		if got := quoteIdent(in); got != want {
			t.Errorf("quoteIdent(%q) = %s, want %s", in, got, want)
		}
	}
}
