// Package pacing serializes outbound requests for one acquisition session
// and enforces minimum spacing between them.
package pacing

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/radiobridge/radiobridge/pkg/config"
)

// Pacer gates outbound requests. One Pacer belongs to exactly one
// acquisition session; concurrent sessions each construct their own.
type Pacer struct {
	limiter *rate.Limiter
	cfg     config.PacingConfig
}

// New creates a Pacer for a fresh session. The first Wait releases
// immediately; every later release is spaced at least cfg.Interval from
// the previous one.
func New(cfg config.PacingConfig) *Pacer {
	if cfg.Interval <= 0 {
		cfg.Interval = config.DefaultPacingConfig().Interval
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(cfg.Interval), 1),
		cfg:     cfg,
	}
}

// Wait blocks until the minimum interval since the previous release has
// elapsed. In considerate mode it sleeps an extra random delay drawn from
// the configured jitter window. Returns the context error on cancellation.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if !p.cfg.Considerate {
		return nil
	}

	window := p.cfg.JitterMax - p.cfg.JitterMin
	extra := p.cfg.JitterMin
	if window > 0 {
		extra += time.Duration(rand.Int64N(int64(window)))
	}

	timer := time.NewTimer(extra)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Interval reports the configured minimum spacing.
func (p *Pacer) Interval() time.Duration {
	return p.cfg.Interval
}
