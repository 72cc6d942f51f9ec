// Package tracking turns raw pointer hook events into debounced, batched
// semantic events and delivers them to a consumer off the hook thread.
package tracking

import (
	"encoding/json"
	"time"

	"github.com/vedantwpatil/Cursor-Capture/internal/cursorstate"
)

// EventKind tags the variant of a semantic event.
type EventKind string

const (
	EventMove         EventKind = "move"
	EventButtonDown   EventKind = "button_down"
	EventButtonUp     EventKind = "button_up"
	EventShapeChanged EventKind = "shape_changed"
)

// Event is one semantic cursor event. Events are created on the hook thread,
// never mutated afterwards, and consumed exactly once by the dispatcher.
// Optional fields are zero for kinds that do not carry them: button_up has
// no position, only move and shape_changed carry a shape label.
type Event struct {
	Kind      EventKind
	X         float64
	Y         float64
	Button    string
	ShapeName string
	Timestamp string
}

// eventJSON is the wire form. Position uses pointers so a legitimate
// coordinate of 0 is still serialized on kinds that carry one.
type eventJSON struct {
	Kind      EventKind `json:"kind"`
	X         *float64  `json:"x,omitempty"`
	Y         *float64  `json:"y,omitempty"`
	Button    string    `json:"button,omitempty"`
	ShapeName string    `json:"cursor_type,omitempty"`
	Timestamp string    `json:"timestamp"`
}

func (k EventKind) hasPosition() bool {
	return k != EventButtonUp
}

// MarshalJSON writes the position for every kind that carries one, zero
// coordinates included.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		Kind:      e.Kind,
		Button:    e.Button,
		ShapeName: e.ShapeName,
		Timestamp: e.Timestamp,
	}
	if e.Kind.hasPosition() {
		x, y := e.X, e.Y
		out.X, out.Y = &x, &y
	}
	return json.Marshal(out)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Event{
		Kind:      in.Kind,
		Button:    in.Button,
		ShapeName: in.ShapeName,
		Timestamp: in.Timestamp,
	}
	if in.X != nil {
		e.X = *in.X
	}
	if in.Y != nil {
		e.Y = *in.Y
	}
	return nil
}

// ToJSON renders the event as a JSON string.
func (e Event) ToJSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(data)
}

// EventFromJSON parses an event previously produced by ToJSON.
func EventFromJSON(data string) (Event, error) {
	var e Event
	err := json.Unmarshal([]byte(data), &e)
	return e, err
}

// Batch is an ordered run of events handed across the batch channel.
// Ownership transfers to the receiver at send time.
type Batch []Event

func newMoveEvent(x, y float64, shapeName string, now time.Time) Event {
	return Event{
		Kind:      EventMove,
		X:         x,
		Y:         y,
		ShapeName: shapeName,
		Timestamp: now.UTC().Format(cursorstate.TimeLayout),
	}
}

func newButtonDownEvent(b cursorstate.Button, x, y float64, now time.Time) Event {
	return Event{
		Kind:      EventButtonDown,
		X:         x,
		Y:         y,
		Button:    b.String(),
		Timestamp: now.UTC().Format(cursorstate.TimeLayout),
	}
}

func newButtonUpEvent(b cursorstate.Button, now time.Time) Event {
	return Event{
		Kind:      EventButtonUp,
		Button:    b.String(),
		Timestamp: now.UTC().Format(cursorstate.TimeLayout),
	}
}

func newShapeChangedEvent(shapeName string, x, y float64, now time.Time) Event {
	return Event{
		Kind:      EventShapeChanged,
		X:         x,
		Y:         y,
		ShapeName: shapeName,
		Timestamp: now.UTC().Format(cursorstate.TimeLayout),
	}
}
