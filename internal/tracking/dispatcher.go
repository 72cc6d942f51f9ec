package tracking

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Handler consumes one semantic event. Handlers run on the dispatcher
// goroutine, in batch order, never on the hook thread.
type Handler func(Event)

// Dispatcher drains flushed batches on its own goroutine. It blocks on the
// batch channel with a bounded timeout so a cleared running flag is observed
// within one timeout interval, without busy-polling.
type Dispatcher struct {
	batches <-chan Batch
	stop    <-chan struct{}
	running *atomic.Bool
	timeout time.Duration
	handler Handler
	log     zerolog.Logger
}

// NewDispatcher wires a dispatcher to the batch channel, the stop signal,
// and the shared running flag.
func NewDispatcher(batches <-chan Batch, stop <-chan struct{}, running *atomic.Bool, timeout time.Duration, handler Handler, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		batches: batches,
		stop:    stop,
		running: running,
		timeout: timeout,
		handler: handler,
		log:     log,
	}
}

// Run loops until the stop channel closes or the running flag clears. On
// shutdown it drains batches that were already flushed, so events forced out
// by Stop still reach the handler. Blocks; call it on its own goroutine.
func (d *Dispatcher) Run() {
	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	for {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(d.timeout)

		select {
		case batch := <-d.batches:
			d.process(batch)
		case <-d.stop:
			d.drain()
			d.log.Debug().Msg("dispatcher terminated")
			return
		case <-timer.C:
			if !d.running.Load() {
				d.drain()
				d.log.Debug().Msg("dispatcher terminated on timeout")
				return
			}
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case batch := <-d.batches:
			d.process(batch)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(batch Batch) {
	for _, ev := range batch {
		d.dispatch(ev)
	}
}

// dispatch isolates handler panics so one bad event cannot starve the rest
// of its batch or kill the dispatcher goroutine.
func (d *Dispatcher) dispatch(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("kind", string(ev.Kind)).Msg("event handler panicked")
		}
	}()
	d.handler(ev)
}
