package tracking

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/rs/zerolog"

	"github.com/vedantwpatil/Cursor-Capture/internal/config"
	"github.com/vedantwpatil/Cursor-Capture/internal/cursor"
	"github.com/vedantwpatil/Cursor-Capture/internal/cursorstate"
)

var (
	// ErrAlreadyRunning is returned by Start when the tracker is running or
	// has already been stopped.
	ErrAlreadyRunning = errors.New("tracking: tracker already started")
	// ErrNotRunning is returned by Stop when the tracker was never started.
	ErrNotRunning = errors.New("tracking: tracker not running")
)

// Callback receives the current cursor snapshot and the shape label that
// accompanied a move or shape-change delivery. It runs on the dispatcher
// goroutine.
type Callback func(cursorstate.Snapshot, string)

// Options configures a Tracker. Zero fields get production defaults.
type Options struct {
	Config   *config.Config
	Source   Source
	Resolver cursor.Resolver
	Clock    func() time.Time
	// Seed returns the initial pointer position recorded at Start.
	Seed   func() (float64, float64)
	Logger zerolog.Logger
}

// Tracker owns the capture pipeline: it registers the producer callback
// with the input source, maintains the shared cursor state, debounces shape
// resolution, batches semantic events, and runs the dispatcher goroutine
// that delivers them.
type Tracker struct {
	cfg      *config.Config
	source   Source
	resolver cursor.Resolver
	clock    func() time.Time
	seed     func() (float64, float64)
	log      zerolog.Logger

	state     *cursorstate.State
	debouncer *cursor.Debouncer
	batcher   *Batcher
	batches   chan Batch

	handler  Handler
	callback Callback

	running    atomic.Bool
	started    atomic.Bool
	stopping   atomic.Bool
	stopChan   chan struct{}
	doneChan   chan struct{}
	sourceDone chan struct{}

	dispatchPanic atomic.Pointer[string]
}

// New builds a tracker. With zero Options it uses the global mouse hook,
// the platform shape resolver, and default intervals.
func New(opts Options) *Tracker {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	source := opts.Source
	if source == nil {
		source = NewHookSource()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = cursor.NewResolver()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.Seed
	if seed == nil {
		seed = func() (float64, float64) {
			x, y := robotgo.Location()
			return float64(x), float64(y)
		}
	}

	return &Tracker{
		cfg:       cfg,
		source:    source,
		resolver:  resolver,
		clock:     clock,
		seed:      seed,
		log:       opts.Logger,
		state:     cursorstate.NewState(),
		debouncer: cursor.NewDebouncer(cfg.Tracking.DebounceInterval),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// SetCallback registers a snapshot callback. Must be called before Start.
func (t *Tracker) SetCallback(cb Callback) {
	t.callback = cb
}

// SetEventHandler registers the semantic event handler. Must be called
// before Start.
func (t *Tracker) SetEventHandler(h Handler) {
	t.handler = h
}

// GetState returns the latest known cursor snapshot. Accurate even when no
// handler is registered: the producer always updates the shared state.
func (t *Tracker) GetState() cursorstate.Snapshot {
	return t.state.Snapshot(t.clock())
}

// Start seeds the shared state, registers the producer callback with the
// input source, and spawns the dispatcher goroutine. Registration failure
// is fatal: the error is returned as-is and nothing is left running.
func (t *Tracker) Start() error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	x, y := t.seed()
	t.state.SetPosition(x, y)
	if id, name := t.resolver.Resolve(); id != cursor.ShapeNone {
		t.state.SetShapeName(name)
		t.debouncer.Changed(id)
	}

	t.batches = make(chan Batch, batchChannelDepth)
	t.batcher = NewBatcher(t.batches, t.cfg.Tracking.BatchMaxSize, t.cfg.Tracking.FlushInterval, t.clock)

	if err := t.source.Subscribe(t.onRaw); err != nil {
		t.started.Store(false)
		return fmt.Errorf("register input callback: %w", err)
	}

	t.running.Store(true)

	dispatcher := NewDispatcher(t.batches, t.stopChan, &t.running, t.cfg.Tracking.ReceiveTimeout, t.deliver, t.log)
	go func() {
		defer close(t.doneChan)
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprint(r)
				t.dispatchPanic.Store(&msg)
			}
		}()
		dispatcher.Run()
	}()

	t.sourceDone = make(chan struct{})
	go func() {
		defer close(t.sourceDone)
		if err := t.source.Run(); err != nil {
			t.log.Error().Err(err).Msg("input source stopped with error")
		}
	}()

	t.log.Info().
		Float64("x", x).Float64("y", y).
		Str("cursor_type", t.state.ShapeName()).
		Msg("cursor tracking started")
	return nil
}

// Stop shuts the pipeline down: delivery stops, buffered tail events are
// force-flushed and drained by the dispatcher, and the dispatcher goroutine
// is joined. Safe to call twice; the second call is a no-op. Returns an
// error if the dispatcher goroutine died abnormally.
func (t *Tracker) Stop() error {
	if !t.started.Load() {
		return ErrNotRunning
	}
	if !t.stopping.CompareAndSwap(false, true) {
		return nil
	}

	// Order matters here. The source must be closed and its Run goroutine
	// joined before the tail flush, so no producer callback can touch the
	// batcher concurrently. The running flag stays set until after the
	// flush: clearing it earlier would let a dispatcher receive timeout
	// terminate the loop while the tail batch is still on its way.
	if err := t.source.Close(); err != nil {
		t.log.Warn().Err(err).Msg("closing input source")
	}
	<-t.sourceDone
	t.batcher.ForceFlush()
	t.running.Store(false)
	close(t.stopChan)
	<-t.doneChan

	t.log.Info().Msg("cursor tracking stopped")
	if msg := t.dispatchPanic.Load(); msg != nil {
		return fmt.Errorf("dispatcher thread died: %s", *msg)
	}
	return nil
}

// onRaw is the producer callback. It runs on the input source's thread and
// must stay fast: the state update is unconditional, everything else only
// happens when a consumer is registered.
func (t *Tracker) onRaw(ev RawEvent) {
	now := t.clock()
	consuming := t.handler != nil || t.callback != nil

	switch ev.Kind {
	case RawMove:
		px, py := t.state.Position()
		if px == ev.X && py == ev.Y {
			return
		}
		t.state.SetPosition(ev.X, ev.Y)
		if !consuming {
			return
		}
		shapeName := t.state.ShapeName()
		if t.debouncer.ShouldCheck(now) {
			id, name := t.resolver.Resolve()
			shapeName = name
			t.state.SetShapeName(name)
			if t.debouncer.Changed(id) {
				t.batcher.Add(newShapeChangedEvent(name, ev.X, ev.Y, now))
			}
		}
		t.batcher.Add(newMoveEvent(ev.X, ev.Y, shapeName, now))

	case RawButtonDown:
		if t.state.ButtonDown(ev.Button) {
			return
		}
		t.state.SetButton(ev.Button, true)
		if !consuming {
			return
		}
		t.batcher.Add(newButtonDownEvent(ev.Button, ev.X, ev.Y, now))

	case RawButtonUp:
		if ev.Button != cursorstate.ButtonMiddle && !t.state.ButtonDown(ev.Button) {
			return
		}
		t.state.SetButton(ev.Button, false)
		if !consuming {
			return
		}
		t.batcher.Add(newButtonUpEvent(ev.Button, now))
	}
}

// deliver runs on the dispatcher goroutine for every event in every batch.
func (t *Tracker) deliver(ev Event) {
	if t.handler != nil {
		t.handler(ev)
	}
	if t.callback != nil && (ev.Kind == EventMove || ev.Kind == EventShapeChanged) {
		t.callback(t.GetState(), ev.ShapeName)
	}
}
