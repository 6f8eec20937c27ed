// Package reaper runs the periodic sweep of idle in-memory web sessions.
package reaper

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/turnos-app/turnos/internal/observability/metrics"
	"github.com/turnos-app/turnos/internal/observability/statsd"
)

// DefaultInterval is used when RunnerOptions.Interval is not positive.
const DefaultInterval = 5 * time.Minute

// Sweeper drops idle sessions and reports how many remain.
type Sweeper interface {
	Sweep(ctx context.Context) int
	Len() int
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sessions Sweeper       // Required
	Interval time.Duration // Optional: defaults to DefaultInterval
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// Runner sweeps Sessions every Interval until its context is canceled.
type Runner struct {
	sessions Sweeper
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewRunner creates a new sweep runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sessions == nil {
		return nil, errors.New("sessions are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Runner{
		sessions: opts.Sessions,
		interval: opts.Interval,
		logger:   opts.Logger.With("component", "session_reaper"),
		metrics:  opts.Metrics,
	}, nil
}

// Run starts the sweep loop and runs until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting session reaper", "interval", r.interval)

	// Add jitter so replicas started together do not sweep in lockstep
	r.waitWithJitter(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "session reaper stopped")
			return nil
		case <-ticker.C:
			r.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep and emits its metrics.
func (r *Runner) SweepOnce(ctx context.Context) int {
	start := time.Now()
	dropped := r.sessions.Sweep(ctx)
	remaining := r.sessions.Len()
	metrics.EmitSweep(r.metrics, dropped, remaining, time.Since(start))
	if dropped > 0 {
		r.logger.InfoContext(ctx, "idle sessions swept", "dropped", dropped, "remaining", remaining)
	}
	return dropped
}

// waitWithJitter adds a random delay up to 10% of the interval.
func (r *Runner) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		r.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
