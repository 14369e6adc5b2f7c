/*
Package rxbridge provides demand-driven bridges between asynchronous producers
and observables for Go applications.

Observables (pkg/observable):
  - Publisher, Subscriber, Subscription: demand-based flow control contracts
  - Demand: consumer permission counter with an Unlimited sentinel

Producers (pkg/source):
  - Source: pull-based producers (slices, channels, generators)
  - Emitter: push-based producers (channels, Redis Pub/Sub, cron schedules)

Bridging (pkg/bridge):
  - FromSource: pull producer to publisher with backoff demand polling
  - FromEmitter: push producer to publisher with unbounded buffering

Awaiting (pkg/single, pkg/task):
  - single: reduce a publisher to its last value as one awaitable result
  - task: one-shot async computations as publishers and back

Example usage:

	import (
		"github.com/vnykmshr/rxbridge/pkg/bridge"
		"github.com/vnykmshr/rxbridge/pkg/single"
		"github.com/vnykmshr/rxbridge/pkg/source"
	)

	pub := bridge.FromSource(source.Slice([]int{10, 20, 30}))
	last, _ := single.Last(context.Background(), pub) // 30
*/
package rxbridge
