package source

import "context"

// Emission is one outcome of a push-based producer: a value, or a terminal
// error. End-of-stream is signalled by closing the emission channel.
type Emission[T any] struct {
	Value T
	Err   error
}

// Emitter is a push-based producer. Emissions starts the producer and returns
// the channel it emits on; the producer stops when ctx is cancelled and closes
// the channel when the stream ends. Emissions is called at most once per
// Emitter.
type Emitter[T any] interface {
	Emissions(ctx context.Context) <-chan Emission[T]
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc[T any] func(ctx context.Context) <-chan Emission[T]

// Emissions implements Emitter.
func (f EmitterFunc[T]) Emissions(ctx context.Context) <-chan Emission[T] {
	return f(ctx)
}

// Stream creates an Emitter from a channel of values. The stream ends when ch
// is closed; it cannot fail.
func Stream[T any](ch <-chan T) Emitter[T] {
	return EmitterFunc[T](func(ctx context.Context) <-chan Emission[T] {
		out := make(chan Emission[T])
		go func() {
			defer close(out)
			for {
				select {
				case value, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- Emission[T]{Value: value}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	})
}

// Fallible creates an Emitter from a channel of emissions, for producers that
// can terminate with an error. The stream ends when ch is closed or an
// emission carries a non-nil Err.
func Fallible[T any](ch <-chan Emission[T]) Emitter[T] {
	return EmitterFunc[T](func(ctx context.Context) <-chan Emission[T] {
		out := make(chan Emission[T])
		go func() {
			defer close(out)
			for {
				select {
				case e, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- e:
					case <-ctx.Done():
						return
					}
					if e.Err != nil {
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	})
}
