package tracking

import (
	"time"
)

// batchChannelDepth bounds how many flushed batches can sit between the
// producer and the dispatcher before further flushes are dropped. Dropping
// keeps the hook callback non-blocking even if the consumer stalls.
const batchChannelDepth = 16

// Batcher accumulates events on the hook thread and flushes them as one
// batch when the buffer is full or the flush interval has elapsed. It is
// single-producer: only the hook callback calls Add, and ForceFlush is only
// called after the hook has been shut down.
type Batcher struct {
	out       chan Batch
	buf       Batch
	maxSize   int
	interval  time.Duration
	lastFlush time.Time
	clock     func() time.Time
}

// NewBatcher returns a batcher flushing into out at the given size and
// interval thresholds. clock may be nil, in which case time.Now is used.
func NewBatcher(out chan Batch, maxSize int, interval time.Duration, clock func() time.Time) *Batcher {
	if clock == nil {
		clock = time.Now
	}
	return &Batcher{
		out:       out,
		buf:       make(Batch, 0, maxSize),
		maxSize:   maxSize,
		interval:  interval,
		lastFlush: clock(),
		clock:     clock,
	}
}

// Add appends the event and flushes if the buffer reached its size limit or
// the flush interval has elapsed. Reports whether a flush happened.
func (b *Batcher) Add(ev Event) bool {
	b.buf = append(b.buf, ev)
	if len(b.buf) >= b.maxSize || b.clock().Sub(b.lastFlush) >= b.interval {
		b.flush()
		return true
	}
	return false
}

// ForceFlush sends any buffered events immediately and resets the flush
// clock. Used during shutdown so tail events are not lost. Unlike Add it
// runs off the hook thread with the dispatcher still draining, so the send
// blocks instead of dropping.
func (b *Batcher) ForceFlush() {
	b.lastFlush = b.clock()
	if len(b.buf) == 0 {
		return
	}
	batch := b.buf
	b.buf = make(Batch, 0, b.maxSize)
	b.out <- batch
}

// Pending reports how many events are buffered but not yet flushed.
func (b *Batcher) Pending() int {
	return len(b.buf)
}

func (b *Batcher) flush() {
	batch := b.buf
	b.buf = make(Batch, 0, b.maxSize)
	b.lastFlush = b.clock()

	// The send must never block the hook thread. If the channel is full the
	// batch is dropped; the consumer is either stalled or already gone.
	select {
	case b.out <- batch:
	default:
	}
}
