// Package source provides the producer contracts consumed by the bridge
// package: pull-based Sources that yield an item per call, and push-based
// Emitters that deliver items at their own pace.
package source

import (
	"context"
	"sync/atomic"
)

// Source is a pull-based producer. Next is a suspension point: it may block
// until an item is available, and is called at most once concurrently.
type Source[T any] interface {
	// Next returns the next element and true, or the zero value and false
	// once the source is exhausted. A non-nil error terminates the source.
	Next(ctx context.Context) (T, bool, error)

	// Close releases any resources held by the source.
	Close() error
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int64
}

// Slice creates a Source that yields the elements of slice in order.
func Slice[T any](slice []T) Source[T] {
	return &sliceSource[T]{slice: slice}
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	currentIndex := atomic.AddInt64(&s.index, 1) - 1
	if currentIndex >= int64(len(s.slice)) {
		return zero, false, nil
	}

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
		return s.slice[currentIndex], true, nil
	}
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// chanSource implements Source for channels.
type chanSource[T any] struct {
	ch <-chan T
}

// Chan creates a Source that pulls from ch until it is closed.
func Chan[T any](ch <-chan T) Source[T] {
	return &chanSource[T]{ch: ch}
}

func (s *chanSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *chanSource[T]) Close() error {
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() (T, bool)
}

// Generate creates a Source from a generator function. The source is
// exhausted when the generator returns false.
func Generate[T any](generator func() (T, bool)) Source[T] {
	return &generatorSource[T]{generator: generator}
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	default:
		value, ok := s.generator()
		return value, ok, nil
	}
}

func (s *generatorSource[T]) Close() error {
	return nil
}

// emptySource implements Source with no elements.
type emptySource[T any] struct{}

// Empty creates a Source that is immediately exhausted.
func Empty[T any]() Source[T] {
	return &emptySource[T]{}
}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}

// failingSource implements Source that yields elements then fails.
type failingSource[T any] struct {
	src Source[T]
	err error
}

// FailAfter creates a Source that yields the elements of src and then
// terminates with err instead of clean exhaustion.
func FailAfter[T any](src Source[T], err error) Source[T] {
	return &failingSource[T]{src: src, err: err}
}

func (s *failingSource[T]) Next(ctx context.Context) (T, bool, error) {
	value, ok, err := s.src.Next(ctx)
	if err != nil {
		return value, false, err
	}
	if !ok {
		var zero T
		return zero, false, s.err
	}
	return value, true, nil
}

func (s *failingSource[T]) Close() error {
	return s.src.Close()
}
