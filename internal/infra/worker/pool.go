// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// A very small worker pool that bounds concurrent outbound vendor jobs
// platform-wide. Media enhancement and transcription run their submit+poll
// pipelines through it.

type Task func(ctx context.Context) error

type Pool struct {
	wg   sync.WaitGroup
	jobs chan Task
	quit chan struct{}
	n    int
	log  *zerolog.Logger
}

func NewPool(workers, queue int, log *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if queue <= 0 {
		queue = workers * 4
	}
	return &Pool{jobs: make(chan Task, queue), quit: make(chan struct{}), n: workers, log: log}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-p.quit:
					return
				case task := <-p.jobs:
					if task == nil {
						continue
					}
					if err := task(ctx); err != nil {
						p.log.Error().Err(err).Int("worker", id).Msg("task error")
					}
				}
			}
		}(i)
	}
}

func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}

func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.jobs <- task:
		return nil
	default:
		// reject when saturated instead of queueing unboundedly
		return domain.ErrBusy
	}
}

// Run submits task and blocks until it finishes or ctx is cancelled. The
// task observes the caller's ctx, not the pool's, so a dropped request
// cancels its own poll loop without touching the workers.
func (p *Pool) Run(ctx context.Context, task Task) error {
	done := make(chan error, 1)
	err := p.Submit(func(context.Context) error {
		metrics.JobStarted()
		defer metrics.JobFinished()
		done <- task(ctx)
		return nil
	})
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
