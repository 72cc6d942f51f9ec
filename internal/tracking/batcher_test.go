package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func moveEv(x, y float64) Event {
	return newMoveEvent(x, y, "arrow", time.Unix(1000, 0))
}

func TestBatcherHoldsBelowThresholds(t *testing.T) {
	out := make(chan Batch, 4)
	clock := newFakeClock()
	b := NewBatcher(out, 100, 50*time.Millisecond, clock.Now)

	for i := 0; i < 99; i++ {
		assert.False(t, b.Add(moveEv(float64(i), 0)))
	}
	assert.Len(t, out, 0, "no batch may be sent below both thresholds")
	assert.Equal(t, 99, b.Pending())
}

func TestBatcherFlushesAtMaxSize(t *testing.T) {
	out := make(chan Batch, 4)
	clock := newFakeClock()
	b := NewBatcher(out, 3, time.Hour, clock.Now)

	assert.False(t, b.Add(moveEv(1, 1)))
	assert.False(t, b.Add(moveEv(2, 2)))
	assert.True(t, b.Add(moveEv(3, 3)))

	require.Len(t, out, 1)
	batch := <-out
	require.Len(t, batch, 3)
	assert.Equal(t, 0, b.Pending(), "buffer must be empty right after a flush")
}

func TestBatcherFlushesOnElapsedInterval(t *testing.T) {
	out := make(chan Batch, 4)
	clock := newFakeClock()
	b := NewBatcher(out, 100, 50*time.Millisecond, clock.Now)

	assert.False(t, b.Add(moveEv(1, 1)))
	clock.Advance(50 * time.Millisecond)
	assert.True(t, b.Add(moveEv(2, 2)))

	require.Len(t, out, 1)
	batch := <-out
	require.Len(t, batch, 2)
}

func TestForceFlushSendsBufferedEventsInOrder(t *testing.T) {
	out := make(chan Batch, 4)
	clock := newFakeClock()
	b := NewBatcher(out, 100, time.Hour, clock.Now)

	now := clock.Now()
	b.Add(newButtonDownEvent(0, 10, 10, now)) // left
	b.Add(newMoveEvent(10, 10, "arrow", now))
	b.Add(newButtonUpEvent(0, now))

	b.ForceFlush()

	require.Len(t, out, 1)
	batch := <-out
	require.Len(t, batch, 3)
	assert.Equal(t, EventButtonDown, batch[0].Kind)
	assert.Equal(t, "left", batch[0].Button)
	assert.Equal(t, EventMove, batch[1].Kind)
	assert.Equal(t, EventButtonUp, batch[2].Kind)
	assert.Equal(t, 0, b.Pending())
}

func TestForceFlushOnEmptyBufferSendsNothing(t *testing.T) {
	out := make(chan Batch, 4)
	clock := newFakeClock()
	b := NewBatcher(out, 100, 50*time.Millisecond, clock.Now)

	b.ForceFlush()
	assert.Len(t, out, 0)

	// The flush clock was still reset: an immediate Add does not flush on
	// elapsed time.
	assert.False(t, b.Add(moveEv(1, 1)))
}

func TestForceFlushSendsEvenWhenChannelFull(t *testing.T) {
	out := make(chan Batch, 1)
	clock := newFakeClock()
	b := NewBatcher(out, 100, time.Hour, clock.Now)

	b.Add(moveEv(7, 7))
	out <- Batch{moveEv(1, 1)} // a queued batch the consumer has not taken yet

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.ForceFlush()
	}()

	first := <-out
	require.Len(t, first, 1)
	assert.Equal(t, 1.0, first[0].X)

	select {
	case tail := <-out:
		require.Len(t, tail, 1)
		assert.Equal(t, 7.0, tail[0].X, "the shutdown tail must not be dropped")
	case <-time.After(time.Second):
		t.Fatal("force flush never sent the tail batch")
	}
	<-done
	assert.Equal(t, 0, b.Pending())
}

func TestBatcherDropsWhenChannelFull(t *testing.T) {
	out := make(chan Batch, 1)
	clock := newFakeClock()
	b := NewBatcher(out, 1, time.Hour, clock.Now)

	assert.True(t, b.Add(moveEv(1, 1)))
	// Receiver stalled; this flush is dropped rather than blocking.
	assert.True(t, b.Add(moveEv(2, 2)))

	require.Len(t, out, 1)
	batch := <-out
	require.Len(t, batch, 1)
	assert.Equal(t, 1.0, batch[0].X)
	assert.Equal(t, 0, b.Pending())
}
