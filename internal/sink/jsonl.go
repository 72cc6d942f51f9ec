// Package sink exports delivered events as JSON lines.
package sink

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vedantwpatil/Cursor-Capture/internal/tracking"
)

// JSONL writes one JSON object per line for every event handed to it. Safe
// for use as a tracking.Handler; writes are serialized because Close may
// race the dispatcher goroutine.
type JSONL struct {
	mu  sync.Mutex
	enc *json.Encoder
	w   io.Writer
	log zerolog.Logger
	n   int
}

// NewJSONL returns a sink writing to w.
func NewJSONL(w io.Writer, log zerolog.Logger) *JSONL {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONL{enc: enc, w: w, log: log}
}

// Handle encodes one event. Encoding failures are logged and dropped; a
// broken sink must not take the dispatcher down.
func (s *JSONL) Handle(ev tracking.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(ev); err != nil {
		s.log.Error().Err(err).Msg("write event line")
		return
	}
	s.n++
}

// Count reports how many events were written.
func (s *JSONL) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Close flushes the underlying writer if it is closable.
func (s *JSONL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
