package bridge

import (
	"errors"

	"github.com/vnykmshr/rxbridge/pkg/observable"
)

// ErrAlreadySubscribed is delivered to subscribers beyond the first. Bridge
// publishers are cold and single-use: they consume their producer exactly
// once.
var ErrAlreadySubscribed = errors.New("publisher accepts a single subscriber")

// noopSubscription is handed to rejected subscribers so the
// OnSubscribe-before-terminal contract still holds.
type noopSubscription struct{}

func (noopSubscription) Request(observable.Demand) {}
func (noopSubscription) Cancel()                   {}

// reject completes a subscriber that lost the single-use race.
func reject[T any](sub observable.Subscriber[T]) {
	sub.OnSubscribe(noopSubscription{})
	sub.OnError(ErrAlreadySubscribed)
}
