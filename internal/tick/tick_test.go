package tick

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/watchface/internal/face"
)

func TestUntilNextMinute(t *testing.T) {
	base := time.Date(2026, time.March, 3, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, time.Minute, UntilNextMinute(base))
	assert.Equal(t, 30*time.Second, UntilNextMinute(base.Add(30*time.Second)))
	assert.Equal(t, time.Millisecond, UntilNextMinute(base.Add(time.Minute-time.Millisecond)))
}

func TestRun_FiresAtBoundary(t *testing.T) {
	// A clock sitting just before a minute boundary fires almost at once.
	start := time.Now()
	offset := time.Date(2026, time.March, 3, 9, 5, 59, 990_000_000, time.UTC).Sub(start)
	now := func() time.Time { return time.Now().Add(offset) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan face.Event, 1)
	go Run(ctx, now, out)

	select {
	case ev := <-out:
		tk, ok := ev.(face.Tick)
		require.True(t, ok)
		assert.Equal(t, 6, tk.At.Minute())
	case <-time.After(2 * time.Second):
		t.Fatal("no tick")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		Run(ctx, nil, make(chan face.Event))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
