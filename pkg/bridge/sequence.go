package bridge

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/rxbridge/pkg/observable"
	"github.com/vnykmshr/rxbridge/pkg/source"
)

// sequencePublisher adapts a pull-based Source into a Publisher.
type sequencePublisher[T any] struct {
	src     source.Source[T]
	cfg     Config
	claimed int32 // atomic
}

// FromSource creates a Publisher that pulls items from src, one at a time,
// under the subscriber's demand. The source is consumed exactly once; the
// publisher accepts a single subscriber.
//
// Items are never buffered. When an item is ready and no demand is
// outstanding, the bridge polls for demand with exponential backoff; if the
// retry budget runs out the item is abandoned and the subscription stops
// without a terminal event. This mirrors the fact that a pull-based producer
// can simply stop being pulled, so the backoff exists only to ride out short
// demand gaps.
func FromSource[T any](src source.Source[T]) observable.Publisher[T] {
	return FromSourceWithConfig(src, DefaultConfig())
}

// FromSourceWithConfig creates a pull-bridge Publisher with the given
// configuration.
func FromSourceWithConfig[T any](src source.Source[T], cfg Config) observable.Publisher[T] {
	return &sequencePublisher[T]{src: src, cfg: cfg.withDefaults()}
}

// Subscribe implements observable.Publisher.
func (p *sequencePublisher[T]) Subscribe(sub observable.Subscriber[T]) {
	if !atomic.CompareAndSwapInt32(&p.claimed, 0, 1) {
		reject(sub)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sourceSubscription[T]{
		sub:     sub,
		src:     p.src,
		backoff: p.cfg.Backoff,
		ins:     newInstruments(p.cfg, "sequence"),
		cancel:  cancel,
	}

	sub.OnSubscribe(s)
	go s.run(ctx)
}

// sourceSubscription is the live binding between the pulling goroutine and
// one subscriber. All mutable state is guarded by mu; subscriber callbacks
// are always invoked outside the lock so a re-entrant Request or Cancel
// cannot deadlock.
type sourceSubscription[T any] struct {
	mu     sync.Mutex
	sub    observable.Subscriber[T] // nil once terminated or cancelled
	demand tracker

	src     source.Source[T]
	backoff BackoffConfig
	ins     *instruments
	cancel  context.CancelFunc
}

// run is the driving goroutine: pull, wait for demand, deliver, repeat.
func (s *sourceSubscription[T]) run(ctx context.Context) {
	s.ins.subscribed()
	defer s.ins.unsubscribed()
	defer func() { _ = s.src.Close() }()

	for {
		value, ok, err := s.src.Next(ctx)
		if ctx.Err() != nil {
			// Cancelled: stop silently, no terminal event.
			return
		}
		if err != nil {
			s.terminate(err)
			return
		}
		if !ok {
			s.terminate(nil)
			return
		}
		if !s.deliver(ctx, value) {
			return
		}
	}
}

// deliver hands one item to the subscriber once demand allows, polling with
// exponential backoff while demand is zero. Returns false when the loop
// should stop: cancelled, or the retry budget ran out.
func (s *sourceSubscription[T]) deliver(ctx context.Context, value T) bool {
	delay := s.backoff.MinDelay

	for attempt := 0; ; attempt++ {
		s.mu.Lock()
		sub := s.sub
		if sub == nil {
			s.mu.Unlock()
			return false
		}
		if s.demand.consumeOne() {
			s.mu.Unlock()

			more := sub.OnNext(value)
			s.ins.delivered()

			s.mu.Lock()
			s.demand.add(more)
			s.mu.Unlock()
			return true
		}
		s.mu.Unlock()

		if attempt >= s.backoff.MaxRetries {
			s.ins.dropped()
			return false
		}
		s.ins.retried()

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false
		}

		delay *= 2
		if delay > s.backoff.MaxDelay {
			delay = s.backoff.MaxDelay
		}
	}
}

// terminate delivers the single terminal event. Clearing s.sub under the lock
// is the one-shot guard: a concurrent Cancel or second terminal finds nil and
// does nothing.
func (s *sourceSubscription[T]) terminate(err error) {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub == nil {
		return
	}
	if err != nil {
		s.ins.terminal("failure")
		sub.OnError(err)
		return
	}
	s.ins.terminal("complete")
	sub.OnComplete()
}

// Request implements observable.Subscription. The pulling goroutine observes
// new demand on its next backoff check; no explicit wake-up is needed.
func (s *sourceSubscription[T]) Request(d observable.Demand) {
	if d == observable.None {
		return
	}
	s.mu.Lock()
	s.demand.add(d)
	s.mu.Unlock()
	s.ins.requested(demandValue(d))
}

// Cancel implements observable.Subscription.
func (s *sourceSubscription[T]) Cancel() {
	s.cancel()
	s.mu.Lock()
	s.sub = nil
	s.mu.Unlock()
}
