//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/infra/worker"
)

func startPool(t *testing.T) *worker.Pool {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	p := worker.NewPool(2, 4, testLogger())
	p.Start(ctx)
	t.Cleanup(func() {
		cancel()
		p.Stop()
	})
	return p
}

func TestEnhanceImage(t *testing.T) {
	t.Run("returns enhanced url", func(t *testing.T) {
		enh := &fakeEnhancer{url: "https://cdn.example/out.png"}
		uc := NewMediaUseCase(enh, nil, startPool(t), testLogger())

		url, err := uc.EnhanceImage(context.Background(), "https://cdn.example/in.png")
		if err != nil {
			t.Fatalf("EnhanceImage: %v", err)
		}
		if url != "https://cdn.example/out.png" {
			t.Fatalf("url = %q", url)
		}
		if enh.calls != 1 {
			t.Fatalf("vendor calls = %d, want 1", enh.calls)
		}
	})

	t.Run("missing credential makes no vendor call", func(t *testing.T) {
		uc := NewMediaUseCase(nil, nil, startPool(t), testLogger())
		_, err := uc.EnhanceImage(context.Background(), "https://cdn.example/in.png")
		if !errors.Is(err, domain.ErrCredentialMissing) {
			t.Fatalf("err = %v, want ErrCredentialMissing", err)
		}
	})

	t.Run("blank image rejected before submit", func(t *testing.T) {
		enh := &fakeEnhancer{url: "x"}
		uc := NewMediaUseCase(enh, nil, startPool(t), testLogger())
		if _, err := uc.EnhanceImage(context.Background(), " "); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
		if enh.calls != 0 {
			t.Fatal("vendor called despite invalid input")
		}
	})

	t.Run("vendor failure surfaces", func(t *testing.T) {
		enh := &fakeEnhancer{err: errors.New("model crashed")}
		uc := NewMediaUseCase(enh, nil, startPool(t), testLogger())
		if _, err := uc.EnhanceImage(context.Background(), "img"); err == nil {
			t.Fatal("expected vendor error")
		}
	})
}

func TestGenerateVideo(t *testing.T) {
	created := map[string]any{"id": "task-9", "status": "PENDING"}
	status := map[string]any{"id": "task-9", "status": "SUCCEEDED", "output": []any{"https://v.example/clip.mp4"}}

	t.Run("submit passes vendor object through", func(t *testing.T) {
		vg := &fakeVideoGen{created: created}
		uc := NewMediaUseCase(nil, vg, startPool(t), testLogger())
		got, err := uc.GenerateVideo(context.Background(), "a cat surfing")
		if err != nil {
			t.Fatalf("GenerateVideo: %v", err)
		}
		if got["id"] != "task-9" {
			t.Fatalf("vendor object mangled: %v", got)
		}
	})

	t.Run("status by generation id", func(t *testing.T) {
		vg := &fakeVideoGen{status: status}
		uc := NewMediaUseCase(nil, vg, startPool(t), testLogger())
		got, err := uc.VideoStatus(context.Background(), "task-9")
		if err != nil {
			t.Fatalf("VideoStatus: %v", err)
		}
		if vg.lastID != "task-9" {
			t.Fatalf("handle id = %q", vg.lastID)
		}
		if got["status"] != "SUCCEEDED" {
			t.Fatalf("vendor object mangled: %v", got)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		uc := NewMediaUseCase(nil, nil, startPool(t), testLogger())
		if _, err := uc.GenerateVideo(context.Background(), "x"); !errors.Is(err, domain.ErrCredentialMissing) {
			t.Fatalf("err = %v", err)
		}
		if _, err := uc.VideoStatus(context.Background(), "id"); !errors.Is(err, domain.ErrCredentialMissing) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("blank inputs rejected", func(t *testing.T) {
		vg := &fakeVideoGen{created: created}
		uc := NewMediaUseCase(nil, vg, startPool(t), testLogger())
		if _, err := uc.GenerateVideo(context.Background(), ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v", err)
		}
		if _, err := uc.VideoStatus(context.Background(), ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v", err)
		}
	})
}
