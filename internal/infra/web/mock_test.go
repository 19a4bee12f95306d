//go:build !integration

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"innovatehub-platform/internal/config"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/adapter"
	"innovatehub-platform/internal/infra/worker"
	"innovatehub-platform/internal/usecase"

	"github.com/rs/zerolog"
)

// --- Adapter fakes ---

type fakeTextGen struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (f *fakeTextGen) Name() string { return "fake" }

func (f *fakeTextGen) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
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
	err     error
}

func (f *fakeVideoGen) CreateGeneration(ctx context.Context, prompt string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeVideoGen) GenerationStatus(ctx context.Context, handle model.JobHandle) (map[string]any, error) {
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
	mu     sync.Mutex
	calls  int
	result map[string]any
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, query, depth string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCatalog struct {
	tables   []string
	rows     []model.Record
	listErr  error
	fetchErr error
}

func (f *fakeCatalog) ListTables(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tables, nil
}

func (f *fakeCatalog) FetchRecords(ctx context.Context, table string, limit int) ([]model.Record, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

// --- Test server assembly ---

const testJWTSecret = "test-admin-secret"

// testDeps holds the vendor fakes one test wants wired in; nil entries leave
// that capability unconfigured, same as a missing credential in production.
type testDeps struct {
	gen         adapter.TextGenerator
	enhancer    adapter.ImageEnhancer
	video       adapter.VideoGenerator
	transcriber adapter.Transcriber
	searcher    adapter.WebSearcher
	catalog     *fakeCatalog
	lookup      func(string) string
	manifest    []string
}

func newTestServer(t *testing.T, deps testDeps) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Server: config.ServerConfig{
			AllowedOrigins: []string{"*"},
			RequestTimeout: 10 * time.Second,
		},
		Admin:     config.AdminConfig{JWTSecret: testJWTSecret},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(2, 4, &logger)
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})

	if deps.catalog == nil {
		deps.catalog = &fakeCatalog{}
	}
	if deps.lookup == nil {
		deps.lookup = func(string) string { return "" }
	}
	if deps.manifest == nil {
		deps.manifest = []string{"OPENAI_API_KEY", "TAVILY_API_KEY"}
	}

	srv := NewServer(
		usecase.NewAssistUseCase(deps.gen, &logger),
		usecase.NewMediaUseCase(deps.enhancer, deps.video, pool, &logger),
		usecase.NewTranscribeUseCase(deps.transcriber, pool, &logger),
		usecase.NewResearchUseCase(deps.searcher, &logger),
		usecase.NewBrowserUseCase(deps.catalog, &logger),
		usecase.NewSecretRegistry(deps.manifest, deps.lookup, nil, &logger),
		nil,
		cfg,
		&logger,
	)
	return srv.Handler()
}

// --- Request helpers ---

func postJSON(t *testing.T, h http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postAudio(t *testing.T, h http.Handler, path string, audio []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "clip.wav")
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	if _, err := fw.Write(audio); err != nil {
		t.Fatalf("multipart write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return got
}
