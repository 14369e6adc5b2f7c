// Package single reduces a publisher to one awaitable result: the last value
// it emitted before completing.
package single

import (
	"context"
	"errors"
	"sync"

	"github.com/vnykmshr/rxbridge/pkg/metrics"
	"github.com/vnykmshr/rxbridge/pkg/observable"
)

// ErrNoOutput is returned by Last when the publisher completes successfully
// without ever emitting a value.
var ErrNoOutput = errors.New("publisher completed without producing a value")

// Last subscribes to the publisher with unlimited demand and blocks until it
// terminates, returning the most recent value it emitted. Earlier values are
// overwritten as they arrive; this is a reduce-to-latest, not a collect-all.
//
// A successful completion with no emitted value returns ErrNoOutput. A
// failure completion returns that error, regardless of values seen before it.
// Cancelling ctx cancels the underlying subscription and returns ctx.Err();
// a ctx already cancelled on entry returns before subscribing at all.
func Last[T any](ctx context.Context, p observable.Publisher[T]) (T, error) {
	value, seen, err := await(ctx, p)
	if err != nil {
		recordAwait("failure")
		return value, err
	}
	if !seen {
		recordAwait("no_output")
		var zero T
		return zero, ErrNoOutput
	}
	recordAwait("value")
	return value, nil
}

// TryLast is the variant of Last for publishers that cannot fail: a
// completion with no emitted value reports ok=false instead of an error. The
// error return covers cancellation, and a publisher failure is still passed
// through rather than swallowed.
func TryLast[T any](ctx context.Context, p observable.Publisher[T]) (T, bool, error) {
	value, seen, err := await(ctx, p)
	if err != nil {
		recordAwait("failure")
		return value, false, err
	}
	if !seen {
		recordAwait("no_output")
	} else {
		recordAwait("value")
	}
	return value, seen, nil
}

func recordAwait(outcome string) {
	metrics.DefaultRegistry.AwaitsResolved.WithLabelValues(outcome).Inc()
}

// await runs one subscription to completion or cancellation.
func await[T any](ctx context.Context, p observable.Publisher[T]) (T, bool, error) {
	var zero T

	// Prompt-path cancellation: do not subscribe at all.
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	w := &waiter[T]{done: make(chan struct{})}
	p.Subscribe(w)

	select {
	case <-w.done:
	case <-ctx.Done():
		w.resolve(ctx.Err())
	}
	<-w.done

	// Cancel the subscription once resolved. After a terminal event this is
	// a no-op; after cancellation it stops the publisher's driving work.
	w.mu.Lock()
	sub := w.sub
	w.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return zero, false, w.err
	}
	return w.last, w.seen, nil
}

// waiter is the subscriber backing one await: the last-seen value and a
// one-shot resolution guard.
type waiter[T any] struct {
	mu   sync.Mutex
	sub  observable.Subscription
	last T
	seen bool
	err  error

	once sync.Once
	done chan struct{}
}

// resolve completes the await at most once, even under concurrent delivery
// and cancellation.
func (w *waiter[T]) resolve(err error) {
	w.once.Do(func() {
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
		close(w.done)
	})
}

func (w *waiter[T]) OnSubscribe(s observable.Subscription) {
	w.mu.Lock()
	w.sub = s
	w.mu.Unlock()
	s.Request(observable.Unlimited)
}

func (w *waiter[T]) OnNext(value T) observable.Demand {
	w.mu.Lock()
	w.last = value
	w.seen = true
	w.mu.Unlock()
	return observable.None
}

func (w *waiter[T]) OnComplete() {
	w.resolve(nil)
}

func (w *waiter[T]) OnError(err error) {
	w.resolve(err)
}
