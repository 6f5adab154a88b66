// internal/tick/tick.go
package tick

import (
	"context"
	"time"

	"github.com/tamzrod/watchface/internal/face"
)

// UntilNextMinute returns the wait from now to the next whole minute.
// It is never zero: a tick exactly on the boundary waits a full minute.
func UntilNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}

// Run emits a face.Tick at every wall-clock minute boundary until ctx is done.
// The timer is re-armed from the clock each minute so drift does not
// accumulate.
func Run(ctx context.Context, now func() time.Time, out chan<- face.Event) {
	if now == nil {
		now = time.Now
	}

	timer := time.NewTimer(UntilNextMinute(now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			t := now()
			select {
			case out <- face.Tick{At: t}:
			case <-ctx.Done():
				return
			}
			timer.Reset(UntilNextMinute(now()))
		}
	}
}
