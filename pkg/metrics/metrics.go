// Package metrics provides Prometheus instrumentation for rxbridge components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for rxbridge components.
type Registry struct {
	// Bridge Metrics
	SubscriptionsActive *prometheus.GaugeVec
	ItemsDelivered      *prometheus.CounterVec
	ItemsBuffered       *prometheus.GaugeVec
	ItemsDropped        *prometheus.CounterVec
	DemandRequested     *prometheus.CounterVec
	BackoffRetries      *prometheus.CounterVec
	TerminalEvents      *prometheus.CounterVec

	// Await Metrics
	AwaitsResolved *prometheus.CounterVec

	// Task Metrics
	TasksLaunched  *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by rxbridge components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		SubscriptionsActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "subscriptions_active",
				Help:      "Number of live bridge subscriptions",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		ItemsDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "items_delivered_total",
				Help:      "Total number of items delivered to subscribers",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		ItemsBuffered: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "items_buffered",
				Help:      "Number of produced items awaiting consumer demand",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		ItemsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "items_dropped_total",
				Help:      "Total number of items abandoned after the demand retry budget",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		DemandRequested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "demand_requested_total",
				Help:      "Total demand requested by subscribers (unlimited counts as one)",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		BackoffRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "backoff_retries_total",
				Help:      "Total number of demand polling waits in the pull bridge",
			},
			[]string{"bridge_type", "bridge_name"},
		),

		TerminalEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "bridge",
				Name:      "terminal_events_total",
				Help:      "Total number of terminal events delivered",
			},
			[]string{"bridge_type", "bridge_name", "kind"},
		),

		AwaitsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "single",
				Name:      "awaits_resolved_total",
				Help:      "Total number of single-value awaits resolved",
			},
			[]string{"outcome"},
		),

		TasksLaunched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "task",
				Name:      "launched_total",
				Help:      "Total number of one-shot tasks launched",
			},
			[]string{"priority"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "task",
				Name:      "completed_total",
				Help:      "Total number of one-shot tasks completed successfully",
			},
			[]string{"priority"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rxbridge",
				Subsystem: "task",
				Name:      "failed_total",
				Help:      "Total number of one-shot tasks that returned an error",
			},
			[]string{"priority"},
		),
	}
}
