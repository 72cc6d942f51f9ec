package tracking

import (
	"errors"

	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Cursor-Capture/internal/cursorstate"
)

// RawKind tags a raw pointer event delivered by the input source.
type RawKind uint8

const (
	RawMove RawKind = iota
	RawButtonDown
	RawButtonUp
)

// RawEvent is one unprocessed pointer signal from the host input subsystem.
type RawEvent struct {
	Kind   RawKind
	X      float64
	Y      float64
	Button cursorstate.Button
}

// Source delivers raw pointer events to a single registered callback. The
// callback runs on whatever thread the source chooses and must return
// quickly.
type Source interface {
	// Subscribe registers the callback. Fails if a callback is already
	// registered or the source cannot accept one.
	Subscribe(func(RawEvent)) error
	// Run blocks, delivering events to the callback until Close is called.
	Run() error
	// Close stops delivery and unblocks Run.
	Close() error
}

// ErrAlreadySubscribed is returned when a source callback is registered twice.
var ErrAlreadySubscribed = errors.New("tracking: source callback already registered")

// hookSource adapts the global gohook mouse hook to the Source interface.
// gohook owns one process-wide hook, so at most one hookSource may run at a
// time.
type hookSource struct {
	callback func(RawEvent)
}

// NewHookSource returns the production input source backed by the global
// mouse hook.
func NewHookSource() Source {
	return &hookSource{}
}

func (s *hookSource) Subscribe(cb func(RawEvent)) error {
	if s.callback != nil {
		return ErrAlreadySubscribed
	}
	if cb == nil {
		return errors.New("tracking: nil source callback")
	}
	s.callback = cb
	return nil
}

// Run registers the hook handlers and blocks processing events until Close
// calls hook.End.
func (s *hookSource) Run() error {
	if s.callback == nil {
		return errors.New("tracking: source has no callback")
	}

	move := func(e hook.Event) {
		s.callback(RawEvent{Kind: RawMove, X: float64(e.X), Y: float64(e.Y)})
	}
	hook.Register(hook.MouseMove, []string{}, move)
	// Movement with a button held arrives as drag, not move.
	hook.Register(hook.MouseDrag, []string{}, move)

	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		if b, ok := hookButton(e.Button); ok {
			s.callback(RawEvent{Kind: RawButtonDown, X: float64(e.X), Y: float64(e.Y), Button: b})
		}
	})
	hook.Register(hook.MouseUp, []string{}, func(e hook.Event) {
		if b, ok := hookButton(e.Button); ok {
			s.callback(RawEvent{Kind: RawButtonUp, X: float64(e.X), Y: float64(e.Y), Button: b})
		}
	})

	evChan := hook.Start()
	// Blocks until hook.End() is called.
	<-hook.Process(evChan)
	return nil
}

func (s *hookSource) Close() error {
	hook.End()
	return nil
}

func hookButton(code uint16) (cursorstate.Button, bool) {
	switch code {
	case hook.MouseMap["left"]:
		return cursorstate.ButtonLeft, true
	case hook.MouseMap["right"]:
		return cursorstate.ButtonRight, true
	case hook.MouseMap["center"]:
		return cursorstate.ButtonMiddle, true
	}
	return 0, false
}
