// internal/poller/runner.go
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/face"
)

// Run polls once immediately, then on every interval, and emits changed
// values on out. One goroutine per poller. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- face.Event) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	if !p.emit(ctx, out) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out) {
				return
			}
		}
	}
}

// emit runs one cycle and forwards its events.
// It returns false once ctx is done.
func (p *Poller) emit(ctx context.Context, out chan<- face.Event) bool {
	res := p.PollOnce()
	if res.Err != nil {
		p.log.Warn("poll failed", zap.Error(res.Err))
		return ctx.Err() == nil
	}

	p.log.Debug("controller",
		zap.Int("battery", res.Snapshot.Battery),
		zap.Bool("connected", res.Snapshot.Connected),
		zap.Bool("charging", res.Snapshot.Charging),
	)

	for _, ev := range res.Events {
		select {
		case out <- ev:
		case <-ctx.Done():
			return false
		}
	}
	return true
}
