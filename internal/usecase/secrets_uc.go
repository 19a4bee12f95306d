package usecase

import (
	"context"
	"sync"

	"innovatehub-platform/internal/domain/model"

	"github.com/rs/zerolog"
)

// SecretSnapshotCache persists the registry's last evaluation across process
// restarts within a session window. Failures degrade to direct evaluation.
type SecretSnapshotCache interface {
	Store(ctx context.Context, secrets []model.SecretStatus) error
	Load(ctx context.Context) ([]model.SecretStatus, error)
	Invalidate(ctx context.Context) error
}

type SecretRegistry interface {
	// Check evaluates credential presence once and returns the cached
	// snapshot on every later call. Never exposes credential values.
	Check(ctx context.Context) ([]model.SecretStatus, error)

	// Refresh re-evaluates the manifest on demand. The registry never
	// re-checks on its own; staleness is the caller's problem.
	Refresh(ctx context.Context) ([]model.SecretStatus, error)
}

var _ SecretRegistry = (*secretRegistry)(nil)

type secretRegistry struct {
	manifest []string
	lookup   func(name string) string
	cache    SecretSnapshotCache // optional
	log      *zerolog.Logger

	mu       sync.Mutex
	loaded   bool
	snapshot []model.SecretStatus
}

// NewSecretRegistry builds the availability registry over the given
// capability manifest. lookup is the credential source (the process
// environment in production, injectable for tests).
func NewSecretRegistry(manifest []string, lookup func(string) string, cache SecretSnapshotCache, log *zerolog.Logger) SecretRegistry {
	return &secretRegistry{manifest: manifest, lookup: lookup, cache: cache, log: log}
}

func (r *secretRegistry) Check(ctx context.Context) ([]model.SecretStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.copySnapshot(), nil
	}

	if r.cache != nil {
		if cached, err := r.cache.Load(ctx); err == nil && len(cached) > 0 {
			r.snapshot = cached
			r.loaded = true
			return r.copySnapshot(), nil
		}
	}

	r.evaluate()
	r.storeBestEffort(ctx)
	return r.copySnapshot(), nil
}

func (r *secretRegistry) Refresh(ctx context.Context) ([]model.SecretStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluate()
	if r.cache != nil {
		if err := r.cache.Invalidate(ctx); err != nil {
			r.log.Warn().Err(err).Msg("secret snapshot invalidation failed")
		}
	}
	r.storeBestEffort(ctx)
	return r.copySnapshot(), nil
}

// evaluate checks presence (non-empty) for every manifest name. Values are
// never stored, only the boolean.
func (r *secretRegistry) evaluate() {
	snapshot := make([]model.SecretStatus, 0, len(r.manifest))
	for _, name := range r.manifest {
		snapshot = append(snapshot, model.SecretStatus{
			Name:      name,
			Available: r.lookup(name) != "",
			Service:   model.ServiceOf(name),
		})
	}
	r.snapshot = snapshot
	r.loaded = true
}

func (r *secretRegistry) storeBestEffort(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Store(ctx, r.snapshot); err != nil {
		r.log.Warn().Err(err).Msg("secret snapshot store failed")
	}
}

func (r *secretRegistry) copySnapshot() []model.SecretStatus {
	out := make([]model.SecretStatus, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}
