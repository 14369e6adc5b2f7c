package task

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/rxbridge/pkg/bridge"
	"github.com/vnykmshr/rxbridge/pkg/observable"
)

// ToPublisher adapts a one-shot computation into a Publisher that emits the
// result as a single item followed by a completion, or a failure completion
// if the computation returned an error. Exactly one of the two, exactly once.
//
// A successful result is held until the subscriber requests demand; a failure
// is delivered as soon as it is known, since terminal events need no demand.
// Cancelling the subscription cancels the computation.
func ToPublisher[T any](h *Handle[T]) observable.Publisher[T] {
	return &handlePublisher[T]{h: h}
}

// Go launches fn immediately and returns a Publisher of its result: the
// factory form of ToPublisher, accepting a priority hint and a computation
// body instead of a pre-existing handle.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) observable.Publisher[T] {
	return ToPublisher(Run(ctx, fn, opts...))
}

// handlePublisher is a cold, single-subscriber publisher over one handle.
type handlePublisher[T any] struct {
	h       *Handle[T]
	claimed int32 // atomic
}

// Subscribe implements observable.Publisher.
func (p *handlePublisher[T]) Subscribe(sub observable.Subscriber[T]) {
	if !atomic.CompareAndSwapInt32(&p.claimed, 0, 1) {
		sub.OnSubscribe(rejectedSubscription{})
		sub.OnError(bridge.ErrAlreadySubscribed)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &taskSubscription[T]{sub: sub, h: p.h, cancelWatch: cancel}

	sub.OnSubscribe(s)
	go s.watch(ctx)
}

// taskSubscription delivers one result to one subscriber, holding it until
// demand arrives. The mutex guards subscriber, demand, and readiness;
// subscriber callbacks run outside it.
type taskSubscription[T any] struct {
	mu     sync.Mutex
	sub    observable.Subscriber[T] // nil once terminated or cancelled
	h      *Handle[T]
	ready  bool // computation finished
	demand bool // at least one item permitted

	cancelWatch context.CancelFunc
}

// watch waits for the computation and triggers delivery.
func (s *taskSubscription[T]) watch(ctx context.Context) {
	select {
	case <-s.h.Done():
	case <-ctx.Done():
		// Subscription cancelled: stop the computation too.
		s.h.Cancel()
		return
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	s.tryDeliver()
}

// tryDeliver emits the terminal sequence once the result is known and, for a
// successful result, demand permits the item. Clearing s.sub under the lock
// is the one-shot guard.
func (s *taskSubscription[T]) tryDeliver() {
	s.mu.Lock()
	if s.sub == nil || !s.ready {
		s.mu.Unlock()
		return
	}
	if s.h.err == nil && !s.demand {
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if err := s.h.err; err != nil {
		sub.OnError(err)
		return
	}
	sub.OnNext(s.h.value)
	sub.OnComplete()
}

// Request implements observable.Subscription.
func (s *taskSubscription[T]) Request(d observable.Demand) {
	if d == observable.None {
		return
	}
	s.mu.Lock()
	s.demand = true
	s.mu.Unlock()
	s.tryDeliver()
}

// Cancel implements observable.Subscription.
func (s *taskSubscription[T]) Cancel() {
	s.cancelWatch()
	s.mu.Lock()
	s.sub = nil
	s.mu.Unlock()
}

// Consume subscribes to the publisher with unlimited demand and launches one
// background computation per item and one for the terminal event. Callback
// bodies are not serialized against each other or against earlier items:
// only the publisher's item-before-terminal ordering holds at the dispatch
// point, not inside the callbacks. The returned subscription cancels the
// underlying one.
func Consume[T any](ctx context.Context, p observable.Publisher[T], onItem func(context.Context, T), onDone func(context.Context, error), opts ...Option) observable.Subscription {
	s := &asyncSink[T]{ctx: ctx, onItem: onItem, onDone: onDone, opts: opts}
	p.Subscribe(s)
	return s
}

// asyncSink dispatches every event to its own computation.
type asyncSink[T any] struct {
	ctx    context.Context
	onItem func(context.Context, T)
	onDone func(context.Context, error)
	opts   []Option

	mu        sync.Mutex
	sub       observable.Subscription
	cancelled bool
}

func (s *asyncSink[T]) OnSubscribe(sub observable.Subscription) {
	s.mu.Lock()
	s.sub = sub
	cancelled := s.cancelled
	s.mu.Unlock()

	if cancelled {
		sub.Cancel()
		return
	}
	sub.Request(observable.Unlimited)
}

func (s *asyncSink[T]) OnNext(value T) observable.Demand {
	if s.onItem != nil {
		Run(s.ctx, func(ctx context.Context) (struct{}, error) {
			s.onItem(ctx, value)
			return struct{}{}, nil
		}, s.opts...)
	}
	return observable.None
}

func (s *asyncSink[T]) OnComplete() {
	s.dispatchDone(nil)
}

func (s *asyncSink[T]) OnError(err error) {
	s.dispatchDone(err)
}

func (s *asyncSink[T]) dispatchDone(err error) {
	if s.onDone == nil {
		return
	}
	Run(s.ctx, func(ctx context.Context) (struct{}, error) {
		s.onDone(ctx, err)
		return struct{}{}, nil
	}, s.opts...)
}

// Request implements observable.Subscription.
func (s *asyncSink[T]) Request(d observable.Demand) {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	if sub != nil {
		sub.Request(d)
	}
}

// Cancel implements observable.Subscription.
func (s *asyncSink[T]) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	sub := s.sub
	s.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}

// rejectedSubscription is handed to subscribers beyond the first.
type rejectedSubscription struct{}

func (rejectedSubscription) Request(observable.Demand) {}
func (rejectedSubscription) Cancel()                   {}
