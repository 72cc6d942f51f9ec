// Package cursorstate holds the latest known pointer position and button
// state in per-field atomics so the hook callback never blocks on readers.
package cursorstate

import (
	"encoding/json"
	"math"
	"sync/atomic"
	"time"
)

// Timestamp layout used on snapshots and events.
const TimeLayout = "2006-01-02 15:04:05.000"

// Snapshot is a point-in-time copy of the cursor state. Position and button
// fields are read independently, so a snapshot taken while the producer is
// mid-update may mix a new position with an old button state. That is the
// intended trade-off: the producer never waits for readers.
type Snapshot struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ShapeName  string  `json:"cursor_type"`
	LeftClick  bool    `json:"left_click"`
	RightClick bool    `json:"right_click"`
	Timestamp  string  `json:"timestamp"`
}

// ToJSON renders the snapshot as a JSON string.
func (s Snapshot) ToJSON() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// SnapshotFromJSON parses a snapshot previously produced by ToJSON.
func SnapshotFromJSON(data string) (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal([]byte(data), &s)
	return s, err
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// State is the shared cursor record. One producer writes it, any number of
// goroutines read it. Each field is its own atomic cell; there is no lock
// and no cross-field atomicity.
type State struct {
	x     atomic.Uint64 // float64 bits
	y     atomic.Uint64 // float64 bits
	shape atomic.Pointer[string]
	left  atomic.Bool
	right atomic.Bool
}

// NewState returns a state positioned at the origin with no buttons held.
func NewState() *State {
	s := &State{}
	name := "default"
	s.shape.Store(&name)
	return s
}

// SetPosition records the latest pointer coordinates.
func (s *State) SetPosition(x, y float64) {
	s.x.Store(math.Float64bits(x))
	s.y.Store(math.Float64bits(y))
}

// Position returns the latest recorded pointer coordinates.
func (s *State) Position() (float64, float64) {
	return math.Float64frombits(s.x.Load()), math.Float64frombits(s.y.Load())
}

// SetShapeName records the label of the currently displayed cursor glyph.
func (s *State) SetShapeName(name string) {
	s.shape.Store(&name)
}

// ShapeName returns the label of the last observed cursor glyph.
func (s *State) ShapeName() string {
	return *s.shape.Load()
}

// SetButton records whether the given button is held down.
func (s *State) SetButton(b Button, down bool) {
	switch b {
	case ButtonLeft:
		s.left.Store(down)
	case ButtonRight:
		s.right.Store(down)
	}
}

// ButtonDown reports whether the given button was last seen held down.
func (s *State) ButtonDown(b Button) bool {
	switch b {
	case ButtonLeft:
		return s.left.Load()
	case ButtonRight:
		return s.right.Load()
	}
	return false
}

// Snapshot reads every field once and stamps the result. Fields may come
// from slightly different instants; see the Snapshot doc.
func (s *State) Snapshot(now time.Time) Snapshot {
	x, y := s.Position()
	return Snapshot{
		X:          x,
		Y:          y,
		ShapeName:  s.ShapeName(),
		LeftClick:  s.left.Load(),
		RightClick: s.right.Load(),
		Timestamp:  now.UTC().Format(TimeLayout),
	}
}
