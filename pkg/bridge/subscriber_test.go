package bridge

import (
	"sync"
	"time"

	"github.com/vnykmshr/rxbridge/pkg/observable"
)

// recorder is a test subscriber that records everything it receives.
type recorder[T any] struct {
	// initial is requested on subscribe; perItem is returned from OnNext.
	initial observable.Demand
	perItem observable.Demand

	// nextDelay makes deliveries slow, to widen race windows under test.
	nextDelay time.Duration

	mu        sync.Mutex
	sub       observable.Subscription
	items     []T
	completed bool
	err       error
	terminals int
}

func (r *recorder[T]) OnSubscribe(s observable.Subscription) {
	r.mu.Lock()
	r.sub = s
	r.mu.Unlock()
	if r.initial != observable.None {
		s.Request(r.initial)
	}
}

func (r *recorder[T]) OnNext(value T) observable.Demand {
	if r.nextDelay > 0 {
		time.Sleep(r.nextDelay)
	}
	r.mu.Lock()
	r.items = append(r.items, value)
	r.mu.Unlock()
	return r.perItem
}

func (r *recorder[T]) OnComplete() {
	r.mu.Lock()
	r.completed = true
	r.terminals++
	r.mu.Unlock()
}

func (r *recorder[T]) OnError(err error) {
	r.mu.Lock()
	r.err = err
	r.terminals++
	r.mu.Unlock()
}

func (r *recorder[T]) subscription() observable.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub
}

func (r *recorder[T]) itemCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *recorder[T]) snapshot() ([]T, bool, error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]T, len(r.items))
	copy(items, r.items)
	return items, r.completed, r.err, r.terminals
}
