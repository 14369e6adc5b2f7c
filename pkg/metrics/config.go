package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, the shared
	// DefaultRegistry (backed by prometheus.DefaultRegisterer) is used.
	Registry prometheus.Registerer
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled: false,
	}
}

// registries caches one Registry per custom registerer. Registering the same
// collectors twice on one registerer panics, and sharing one registry across
// several components is the normal Prometheus wiring.
var (
	registriesMu sync.Mutex
	registries   = make(map[prometheus.Registerer]*Registry)
)

// Resolve returns the Registry to record into for this configuration, or nil
// when metrics are disabled. The default registerer maps to the shared
// DefaultRegistry; any other registerer maps to one Registry, shared by every
// configuration that names it.
func (c Config) Resolve() *Registry {
	if !c.Enabled {
		return nil
	}
	if c.Registry == nil || c.Registry == prometheus.DefaultRegisterer {
		return DefaultRegistry
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()
	if r, ok := registries[c.Registry]; ok {
		return r
	}
	r := NewRegistry(c.Registry)
	registries[c.Registry] = r
	return r
}
