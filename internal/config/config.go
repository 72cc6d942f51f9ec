package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the pipeline tuning knobs. All values have sane defaults;
// none are required.
type Config struct {
	Tracking TrackingConfig
}

// TrackingConfig tunes the capture pipeline. The receive timeout bounds how
// quickly the dispatcher notices shutdown; it is a latency knob, not a
// correctness one.
type TrackingConfig struct {
	// DebounceInterval is the minimum gap between cursor shape lookups.
	DebounceInterval time.Duration `envconfig:"CURSOR_DEBOUNCE_INTERVAL" default:"16ms"`
	// BatchMaxSize flushes the event buffer when it reaches this many events.
	BatchMaxSize int `envconfig:"CURSOR_BATCH_MAX_SIZE" default:"100"`
	// FlushInterval flushes the event buffer at least this often.
	FlushInterval time.Duration `envconfig:"CURSOR_FLUSH_INTERVAL" default:"50ms"`
	// ReceiveTimeout bounds each dispatcher wait on the batch channel.
	ReceiveTimeout time.Duration `envconfig:"CURSOR_RECEIVE_TIMEOUT" default:"100ms"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Tracking: TrackingConfig{
			DebounceInterval: 16 * time.Millisecond,
			BatchMaxSize:     100,
			FlushInterval:    50 * time.Millisecond,
			ReceiveTimeout:   100 * time.Millisecond,
		},
	}
}

// Load returns the defaults overridden by any CURSOR_* environment
// variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", &cfg.Tracking); err != nil {
		return nil, fmt.Errorf("load tracking config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	t := c.Tracking
	if t.DebounceInterval <= 0 {
		return fmt.Errorf("debounce interval must be positive, got %s", t.DebounceInterval)
	}
	if t.BatchMaxSize <= 0 {
		return fmt.Errorf("batch max size must be positive, got %d", t.BatchMaxSize)
	}
	if t.FlushInterval <= 0 {
		return fmt.Errorf("flush interval must be positive, got %s", t.FlushInterval)
	}
	if t.ReceiveTimeout <= 0 {
		return fmt.Errorf("receive timeout must be positive, got %s", t.ReceiveTimeout)
	}
	return nil
}
