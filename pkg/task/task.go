// Package task adapts one-shot asynchronous computations to publishers and
// back: a running computation becomes a single-item publisher, and a
// publisher can be consumed with asynchronous per-item callbacks.
package task

import (
	"context"

	"github.com/vnykmshr/rxbridge/pkg/metrics"
)

// Priority is a scheduling hint for launched computations. The Go runtime
// does not prioritize goroutines, so the hint carries no scheduling weight;
// it is recorded on the handle and used as a metrics label.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Option configures a launched computation.
type Option func(*options)

type options struct {
	priority Priority
}

// WithPriority sets the priority hint for a launched computation.
func WithPriority(p Priority) Option {
	return func(o *options) {
		o.priority = p
	}
}

// Handle is a one-shot asynchronous computation: it produces exactly one
// result or error, observable through Await or Done.
type Handle[T any] struct {
	priority Priority
	cancel   context.CancelFunc
	done     chan struct{}

	// Written once before done closes; read only after.
	value T
	err   error
}

// Run launches fn in the background immediately and returns its handle. The
// computation receives a context derived from ctx that is also cancelled by
// Handle.Cancel.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) *Handle[T] {
	o := options{priority: PriorityNormal}
	for _, opt := range opts {
		opt(&o)
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &Handle[T]{
		priority: o.priority,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	metrics.DefaultRegistry.TasksLaunched.WithLabelValues(string(o.priority)).Inc()

	go func() {
		defer close(h.done)
		defer cancel()

		h.value, h.err = fn(runCtx)

		if h.err != nil {
			metrics.DefaultRegistry.TasksFailed.WithLabelValues(string(h.priority)).Inc()
		} else {
			metrics.DefaultRegistry.TasksCompleted.WithLabelValues(string(h.priority)).Inc()
		}
	}()

	return h
}

// Await blocks until the computation finishes or ctx is cancelled.
// Cancellation of ctx abandons the wait only; the computation keeps running.
func (h *Handle[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the computation has finished.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Cancel requests cooperative cancellation of the computation via its
// context. The computation still finishes with whatever result or error it
// returns.
func (h *Handle[T]) Cancel() {
	h.cancel()
}

// Priority returns the priority hint the computation was launched with.
func (h *Handle[T]) Priority() Priority {
	return h.priority
}
