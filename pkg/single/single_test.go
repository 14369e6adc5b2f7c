package single

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/rxbridge/internal/testutil"
	"github.com/vnykmshr/rxbridge/pkg/bridge"
	"github.com/vnykmshr/rxbridge/pkg/source"
)

func TestLastReturnsLatestValue(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	last, err := Last(ctx, bridge.FromSource(source.Slice([]int{1, 2, 3})))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, last, 3)
}

// End-to-end: async sequence to publisher to awaited result.
func TestLastFromSequence(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pub := bridge.FromSource(source.Slice([]int{10, 20, 30}))
	last, err := Last(ctx, pub)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, last, 30)
}

func TestLastNoOutput(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	_, err := Last(ctx, bridge.FromSource(source.Empty[int]()))
	testutil.AssertErrorIs(t, err, ErrNoOutput)
}

func TestLastImmediateFailure(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("boom")
	_, err := Last(ctx, bridge.FromSource(source.FailAfter(source.Empty[int](), boom)))

	// The failure wins over the no-output error.
	testutil.AssertErrorIs(t, err, boom)
	testutil.AssertEqual(t, errors.Is(err, ErrNoOutput), false)
}

func TestLastFailureAfterValues(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("boom")
	_, err := Last(ctx, bridge.FromSource(source.FailAfter(source.Slice([]int{1, 2}), boom)))

	// A failure completion wins over previously seen values.
	testutil.AssertErrorIs(t, err, boom)
}

func TestTryLastNoOutput(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	_, ok, err := TryLast(ctx, bridge.FromSource(source.Empty[int]()))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestTryLastReturnsLatestValue(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	last, ok, err := TryLast(ctx, bridge.FromSource(source.Slice([]string{"a", "b"})))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, last, "b")
}

func TestLastCancelledBeforeEntry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Checked at entry: the publisher is never subscribed.
	_, err := Last(ctx, bridge.FromSource(source.Slice([]int{1})))
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestLastCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan int) // never closed: the publisher never terminates
	pub := bridge.FromEmitter(source.Stream(ch))

	errs := make(chan error, 1)
	go func() {
		_, err := Last(ctx, pub)
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		testutil.AssertErrorIs(t, err, context.Canceled)
	case <-time.After(testutil.TestTimeout):
		t.Fatal("await did not return after cancellation")
	}
}
