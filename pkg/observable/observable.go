// Package observable defines the demand-based flow control contracts shared by
// all rxbridge components: a Publisher delivers items to a Subscriber only as
// fast as the Subscriber's outstanding Demand allows, and terminates with
// exactly one completion or error event.
package observable

// Subscription is the one-to-one binding between a Subscriber and the
// Publisher it subscribed to.
type Subscription interface {
	// Request adds to the outstanding demand, permitting the publisher to
	// deliver that many additional items.
	Request(d Demand)

	// Cancel detaches the subscriber and stops the publisher's driving work.
	// After Cancel returns no further items or terminal events are delivered.
	Cancel()
}

// Subscriber receives items and exactly one terminal event from a Publisher.
//
// OnSubscribe is called once, before any other method. OnNext is called once
// per delivered item, in producer order, and returns any additional demand the
// subscriber grants; the publisher folds it into the outstanding total.
// Exactly one of OnComplete or OnError is called last.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnNext(value T) Demand
	OnComplete()
	OnError(err error)
}

// Publisher is a cold, single-subscriber source of items with demand-based
// flow control.
type Publisher[T any] interface {
	Subscribe(sub Subscriber[T])
}

// SubscriberFuncs adapts plain functions to the Subscriber interface. Nil
// fields are ignored, except Next which defaults to granting no demand.
type SubscriberFuncs[T any] struct {
	Subscribe func(Subscription)
	Next      func(T) Demand
	Complete  func()
	Error     func(error)
}

// OnSubscribe implements Subscriber.
func (f *SubscriberFuncs[T]) OnSubscribe(s Subscription) {
	if f.Subscribe != nil {
		f.Subscribe(s)
	}
}

// OnNext implements Subscriber.
func (f *SubscriberFuncs[T]) OnNext(value T) Demand {
	if f.Next != nil {
		return f.Next(value)
	}
	return None
}

// OnComplete implements Subscriber.
func (f *SubscriberFuncs[T]) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

// OnError implements Subscriber.
func (f *SubscriberFuncs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}
