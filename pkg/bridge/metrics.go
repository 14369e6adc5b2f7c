package bridge

import (
	"github.com/vnykmshr/rxbridge/pkg/metrics"
	"github.com/vnykmshr/rxbridge/pkg/observable"
)

// instruments records bridge metrics for one publisher. A nil *instruments is
// a no-op, so call sites never check whether metrics are enabled.
type instruments struct {
	registry   *metrics.Registry
	bridgeType string
	name       string
}

// newInstruments resolves the metrics configuration for a bridge. Returns nil
// when metrics are disabled.
func newInstruments(cfg Config, bridgeType string) *instruments {
	registry := cfg.Metrics.Resolve()
	if registry == nil {
		return nil
	}
	return &instruments{
		registry:   registry,
		bridgeType: bridgeType,
		name:       cfg.Name,
	}
}

func (i *instruments) subscribed() {
	if i == nil {
		return
	}
	i.registry.SubscriptionsActive.WithLabelValues(i.bridgeType, i.name).Inc()
}

func (i *instruments) unsubscribed() {
	if i == nil {
		return
	}
	i.registry.SubscriptionsActive.WithLabelValues(i.bridgeType, i.name).Dec()
}

func (i *instruments) delivered() {
	if i == nil {
		return
	}
	i.registry.ItemsDelivered.WithLabelValues(i.bridgeType, i.name).Inc()
}

func (i *instruments) bufferLen(n int) {
	if i == nil {
		return
	}
	i.registry.ItemsBuffered.WithLabelValues(i.bridgeType, i.name).Set(float64(n))
}

func (i *instruments) dropped() {
	if i == nil {
		return
	}
	i.registry.ItemsDropped.WithLabelValues(i.bridgeType, i.name).Inc()
}

// demandValue converts a demand grant to a counter increment. Unlimited
// demand counts as one request.
func demandValue(d observable.Demand) float64 {
	if d.IsUnlimited() {
		return 1
	}
	return float64(d)
}

func (i *instruments) requested(n float64) {
	if i == nil {
		return
	}
	i.registry.DemandRequested.WithLabelValues(i.bridgeType, i.name).Add(n)
}

func (i *instruments) retried() {
	if i == nil {
		return
	}
	i.registry.BackoffRetries.WithLabelValues(i.bridgeType, i.name).Inc()
}

func (i *instruments) terminal(kind string) {
	if i == nil {
		return
	}
	i.registry.TerminalEvents.WithLabelValues(i.bridgeType, i.name, kind).Inc()
}
