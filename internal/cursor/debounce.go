package cursor

import (
	"sync/atomic"
	"time"
)

// Debouncer gates shape resolution. ShouldCheck enforces a minimum interval
// between lookups regardless of event volume; Changed reports each distinct
// glyph transition exactly once. A single producer calls both, but the
// fields are atomics so readers elsewhere never see torn values.
type Debouncer struct {
	interval  time.Duration
	lastCheck atomic.Int64  // unix nanos of the last permitted check
	lastShape atomic.Uint64 // ShapeID last observed, ShapeNone before any
}

// NewDebouncer returns a debouncer permitting at most one check per
// interval. The first Changed call with a real id always reports true.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// ShouldCheck reports whether enough time has passed since the last
// permitted check. At most one call per interval returns true.
func (d *Debouncer) ShouldCheck(now time.Time) bool {
	nanos := now.UnixNano()
	if nanos-d.lastCheck.Load() < d.interval.Nanoseconds() {
		return false
	}
	d.lastCheck.Store(nanos)
	return true
}

// Changed swaps in the observed id and reports whether it differs from the
// previous one. ShapeNone observations never count as a transition.
func (d *Debouncer) Changed(id ShapeID) bool {
	if id == ShapeNone {
		return false
	}
	prev := d.lastShape.Swap(uint64(id))
	return ShapeID(prev) != id
}
