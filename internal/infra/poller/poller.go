// Package poller drives a vendor's asynchronous job to a terminal state from
// the caller's perspective, hiding the polling protocol behind one blocking
// call. Iterations are strictly sequential: check N+1 never starts before
// check N resolved.
package poller

import (
	"context"
	"fmt"
	"time"

	"innovatehub-platform/internal/config"
	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/infra/metrics"
)

// StatusFunc performs one status check against the vendor. A non-nil error
// aborts the whole loop immediately; transient and terminal failures are not
// distinguished (fail fast).
type StatusFunc func(ctx context.Context) (*model.JobResult, error)

// Config bounds the loop. Zero values are normalized to safe defaults so a
// misconfigured caller can never spin forever.
type Config struct {
	Interval    time.Duration // first sleep between checks
	MaxInterval time.Duration // backoff ceiling
	Multiplier  float64       // 1 keeps the interval fixed
	MaxWait     time.Duration // wall-clock budget for the whole loop
	MaxAttempts int           // 0 leaves only the wall-clock bound
}

func FromConfig(cfg config.PollConfig) Config {
	return Config{
		Interval:    cfg.Interval,
		MaxInterval: cfg.MaxInterval,
		Multiplier:  cfg.Multiplier,
		MaxWait:     cfg.MaxWait,
		MaxAttempts: cfg.MaxAttempts,
	}
}

func (c Config) normalized() Config {
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = c.Interval
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1
	}
	if c.MaxWait <= 0 && c.MaxAttempts <= 0 {
		c.MaxWait = 4 * time.Minute
	}
	return c
}

// Wait sleeps, checks, and repeats until fn reports a terminal state, the
// budget runs out, or ctx is cancelled. The terminal JobResult is returned
// as-is; a vendor-reported failure is a result, not an error.
func Wait(ctx context.Context, cfg Config, vendor string, fn StatusFunc) (*model.JobResult, error) {
	cfg = cfg.normalized()
	start := time.Now()
	interval := cfg.Interval
	attempts := 0

	for {
		if cfg.MaxWait > 0 && time.Since(start)+interval > cfg.MaxWait {
			metrics.IncJob(vendor, "deadline")
			return nil, fmt.Errorf("%w after %d checks", domain.ErrPollDeadline, attempts)
		}

		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}

		res, err := fn(ctx)
		if err != nil {
			metrics.IncJob(vendor, "error")
			return nil, err
		}
		attempts++

		if res.Terminal() {
			metrics.IncJob(vendor, string(res.State))
			metrics.ObservePollIterations(vendor, attempts)
			return res, nil
		}

		if cfg.MaxAttempts > 0 && attempts >= cfg.MaxAttempts {
			metrics.IncJob(vendor, "deadline")
			return nil, fmt.Errorf("%w after %d checks", domain.ErrPollDeadline, attempts)
		}

		interval = time.Duration(float64(interval) * cfg.Multiplier)
		if interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
