package bridge

import (
	"fmt"

	"github.com/vnykmshr/rxbridge/pkg/observable"
	"github.com/vnykmshr/rxbridge/pkg/source"
)

// Example demonstrates bridging a pull-based source into a publisher.
func Example() {
	done := make(chan struct{})
	var items []int

	FromSource(source.Slice([]int{1, 2, 3})).Subscribe(&observable.SubscriberFuncs[int]{
		Subscribe: func(s observable.Subscription) {
			s.Request(observable.Unlimited)
		},
		Next: func(v int) observable.Demand {
			items = append(items, v)
			return observable.None
		},
		Complete: func() {
			close(done)
		},
	})

	<-done
	fmt.Println(items)
	// Output: [1 2 3]
}

// ExampleFromEmitter demonstrates bridging a push-based channel producer.
func ExampleFromEmitter() {
	ch := make(chan string, 2)
	ch <- "hello"
	ch <- "world"
	close(ch)

	done := make(chan struct{})
	var items []string

	FromEmitter(source.Stream(ch)).Subscribe(&observable.SubscriberFuncs[string]{
		Subscribe: func(s observable.Subscription) {
			s.Request(observable.Unlimited)
		},
		Next: func(v string) observable.Demand {
			items = append(items, v)
			return observable.None
		},
		Complete: func() {
			close(done)
		},
	})

	<-done
	fmt.Println(items)
	// Output: [hello world]
}
