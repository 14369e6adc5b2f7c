package bridge

import (
	"time"

	"github.com/vnykmshr/rxbridge/pkg/metrics"
)

// BackoffConfig controls how the pull bridge polls for consumer demand when
// an item is ready but no demand is outstanding. The wait starts at MinDelay,
// doubles on each retry, and is capped at MaxDelay; after MaxRetries waits
// without demand the item is abandoned and the subscription stops.
type BackoffConfig struct {
	// MinDelay is the first polling delay. Must be greater than zero.
	MinDelay time.Duration

	// MaxDelay caps the exponentially growing delay.
	MaxDelay time.Duration

	// MaxRetries bounds the number of polling waits per item.
	MaxRetries int
}

// Config holds configuration for a bridge publisher.
type Config struct {
	// Name identifies the bridge in metrics.
	Name string

	// Backoff configures demand polling in the pull bridge. Ignored by the
	// push bridge, which buffers instead of waiting.
	Backoff BackoffConfig

	// Metrics configures Prometheus instrumentation.
	Metrics metrics.Config
}

// DefaultConfig returns a default bridge configuration.
func DefaultConfig() Config {
	return Config{
		Name: "default",
		Backoff: BackoffConfig{
			MinDelay:   time.Millisecond,
			MaxDelay:   128 * time.Millisecond,
			MaxRetries: 10,
		},
		Metrics: metrics.DefaultConfig(),
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Backoff.MinDelay <= 0 {
		c.Backoff.MinDelay = def.Backoff.MinDelay
	}
	if c.Backoff.MaxDelay < c.Backoff.MinDelay {
		c.Backoff.MaxDelay = c.Backoff.MinDelay
	}
	if c.Backoff.MaxRetries <= 0 {
		c.Backoff.MaxRetries = def.Backoff.MaxRetries
	}
	return c
}
