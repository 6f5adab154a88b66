// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/status"
)

// PollResult is produced by one poll cycle.
type PollResult struct {
	At       time.Time
	Snapshot status.Snapshot

	// Events holds only what changed since the last successful cycle.
	Events []face.Event
	Err    error // non-nil means the poll cycle failed
}
