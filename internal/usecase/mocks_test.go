//go:build !integration

package usecase

import (
	"context"
	"sync"

	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- Fakes ----

type fakeTextGen struct {
	mu       sync.Mutex
	calls    int
	lastMsgs []adapter.Message
	reply    string
	err      error
}

func (f *fakeTextGen) Name() string { return "fake" }

func (f *fakeTextGen) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeCatalog struct {
	tables    []string
	rows      []model.Record
	listErr   error
	fetchErr  error
	lastTable string
	lastLimit int
}

func (f *fakeCatalog) ListTables(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tables, nil
}

func (f *fakeCatalog) FetchRecords(ctx context.Context, table string, limit int) ([]model.Record, error) {
	f.lastTable = table
	f.lastLimit = limit
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.rows, nil
}

type fakeSnapshotCache struct {
	mu          sync.Mutex
	stored      []model.SecretStatus
	loadValue   []model.SecretStatus
	loadErr     error
	storeErr    error
	invalidated int
}

func (f *fakeSnapshotCache) Store(ctx context.Context, secrets []model.SecretStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = secrets
	return nil
}

func (f *fakeSnapshotCache) Load(ctx context.Context) ([]model.SecretStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loadValue, nil
}

func (f *fakeSnapshotCache) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.loadValue = nil
	return nil
}

type fakeEnhancer struct {
	mu    sync.Mutex
	calls int
	url   string
	err   error
}

func (f *fakeEnhancer) Enhance(ctx context.Context, image string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeVideoGen struct {
	created map[string]any
	status  map[string]any
	lastID  string
	err     error
}

func (f *fakeVideoGen) CreateGeneration(ctx context.Context, prompt string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeVideoGen) GenerationStatus(ctx context.Context, handle model.JobHandle) (map[string]any, error) {
	f.lastID = handle.ID
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

type fakeTranscriber struct {
	mu         sync.Mutex
	calls      int
	transcript map[string]any
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type fakeSearcher struct {
	mu        sync.Mutex
	calls     int
	lastDepth string
	result    map[string]any
	err       error
}

func (f *fakeSearcher) Search(ctx context.Context, query, depth string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastDepth = depth
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
