package bridge

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/rxbridge/pkg/observable"
	"github.com/vnykmshr/rxbridge/pkg/source"
)

// streamPublisher adapts a push-based Emitter into a Publisher.
type streamPublisher[T any] struct {
	emitter source.Emitter[T]
	cfg     Config
	claimed int32 // atomic
}

// FromEmitter creates a Publisher that consumes a push-based Emitter. The
// emitter runs at its own pace, independent of demand: items that arrive
// without outstanding demand are held in an unbounded FIFO buffer and drained
// as the subscriber requests more.
//
// The buffer is deliberately unbounded. A fast producer against a
// zero-demand consumer grows memory without limit; the bridge favors never
// dropping an item over bounding memory. Bound the producer itself if that
// trade-off is wrong for the workload.
func FromEmitter[T any](emitter source.Emitter[T]) observable.Publisher[T] {
	return FromEmitterWithConfig(emitter, DefaultConfig())
}

// FromEmitterWithConfig creates a push-bridge Publisher with the given
// configuration.
func FromEmitterWithConfig[T any](emitter source.Emitter[T], cfg Config) observable.Publisher[T] {
	return &streamPublisher[T]{emitter: emitter, cfg: cfg.withDefaults()}
}

// Subscribe implements observable.Publisher.
func (p *streamPublisher[T]) Subscribe(sub observable.Subscriber[T]) {
	if !atomic.CompareAndSwapInt32(&p.claimed, 0, 1) {
		reject(sub)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &streamSubscription[T]{
		sub:    sub,
		ins:    newInstruments(p.cfg, "stream"),
		cancel: cancel,
	}

	sub.OnSubscribe(s)
	go s.run(ctx, p.emitter)
}

// streamSubscription is the live binding between the emitting goroutine and
// one subscriber. All mutable state is guarded by mu; subscriber callbacks
// run outside the lock. The delivering flag serializes deliveries between the
// producer-driven path and Request-driven drains, which keeps item order and
// guarantees the terminal event is last even when it arrives mid-delivery.
type streamSubscription[T any] struct {
	mu         sync.Mutex
	sub        observable.Subscriber[T] // nil once terminated or cancelled
	demand     tracker
	buffer     []T
	delivering bool
	pendingEnd bool // terminal arrived while a delivery was in flight
	endErr     error

	ins    *instruments
	cancel context.CancelFunc
}

// run is the driving goroutine: funnel every emission through the
// synchronized item/terminal handlers.
func (s *streamSubscription[T]) run(ctx context.Context, emitter source.Emitter[T]) {
	s.ins.subscribed()
	defer s.ins.unsubscribed()

	emissions := emitter.Emissions(ctx)
	for {
		select {
		case <-ctx.Done():
			// Cancelled: stop silently, no terminal event.
			return
		case e, ok := <-emissions:
			if !ok {
				s.handleTerminal(nil)
				return
			}
			if e.Err != nil {
				s.handleTerminal(e.Err)
				return
			}
			s.handleItem(e.Value)
		}
	}
}

// handleItem delivers immediately when demand is outstanding and no other
// delivery is in flight; otherwise the item joins the buffer.
func (s *streamSubscription[T]) handleItem(value T) {
	s.mu.Lock()
	if s.sub == nil {
		s.mu.Unlock()
		return
	}
	if s.delivering || len(s.buffer) > 0 || !s.demand.consumeOne() {
		s.buffer = append(s.buffer, value)
		n := len(s.buffer)
		s.mu.Unlock()
		s.ins.bufferLen(n)
		return
	}
	s.delivering = true
	sub := s.sub
	s.mu.Unlock()

	more := sub.OnNext(value)
	s.ins.delivered()
	s.finishDelivery(more)
}

// drain pops buffered items while demand remains. Only one drain loop runs at
// a time; concurrent callers see delivering and leave the work to it.
func (s *streamSubscription[T]) drain() {
	for {
		s.mu.Lock()
		if s.delivering || s.sub == nil || len(s.buffer) == 0 || !s.demand.consumeOne() {
			s.mu.Unlock()
			return
		}
		value := s.buffer[0]
		s.buffer = s.buffer[1:]
		n := len(s.buffer)
		s.delivering = true
		sub := s.sub
		s.mu.Unlock()

		s.ins.bufferLen(n)
		more := sub.OnNext(value)
		s.ins.delivered()
		if s.finishDelivery(more) {
			return
		}
	}
}

// finishDelivery folds returned demand back in and releases the delivering
// flag. If a terminal event arrived mid-delivery it is delivered now; the
// return value reports that, so drain loops stop.
func (s *streamSubscription[T]) finishDelivery(more observable.Demand) bool {
	s.mu.Lock()
	s.demand.add(more)
	s.delivering = false
	if !s.pendingEnd {
		s.mu.Unlock()
		return false
	}
	s.pendingEnd = false
	sub := s.sub
	s.sub = nil
	s.buffer = nil
	err := s.endErr
	s.mu.Unlock()

	s.deliverTerminal(sub, err)
	return true
}

// handleTerminal delivers the single terminal event, deferring it when a
// delivery is in flight so the terminal stays last. Clearing s.sub under the
// lock is the one-shot guard.
func (s *streamSubscription[T]) handleTerminal(err error) {
	s.mu.Lock()
	if s.sub == nil {
		s.mu.Unlock()
		return
	}
	if s.delivering {
		s.pendingEnd = true
		s.endErr = err
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.sub = nil
	s.buffer = nil
	s.mu.Unlock()

	s.deliverTerminal(sub, err)
}

func (s *streamSubscription[T]) deliverTerminal(sub observable.Subscriber[T], err error) {
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

// Request implements observable.Subscription. New demand drains the buffer in
// FIFO order before any later item is delivered.
func (s *streamSubscription[T]) Request(d observable.Demand) {
	if d == observable.None {
		return
	}
	s.mu.Lock()
	s.demand.add(d)
	s.mu.Unlock()
	s.ins.requested(demandValue(d))
	s.drain()
}

// Cancel implements observable.Subscription.
func (s *streamSubscription[T]) Cancel() {
	s.cancel()
	s.mu.Lock()
	s.sub = nil
	s.buffer = nil
	s.pendingEnd = false
	s.mu.Unlock()
}
