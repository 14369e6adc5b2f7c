package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/rxbridge/internal/testutil"
	"github.com/vnykmshr/rxbridge/pkg/observable"
	"github.com/vnykmshr/rxbridge/pkg/source"
)

func TestFromEmitterDeliversInOrder(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	r := &recorder[int]{initial: observable.Unlimited}
	FromEmitter(source.Stream(ch)).Subscribe(r)

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		_, completed, _, _ := r.snapshot()
		return completed
	})

	items, _, err, terminals := r.snapshot()
	testutil.AssertEqual(t, len(items), 3)
	for i, want := range []int{1, 2, 3} {
		testutil.AssertEqual(t, items[i], want)
	}
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, terminals, 1)
}

// The push bridge buffers items that arrive without demand: requesting one
// item while three are emitted delivers one and holds two for later.
func TestFromEmitterBuffersWithoutDemand(t *testing.T) {
	ch := make(chan int, 3)
	r := &recorder[int]{initial: 1}
	FromEmitter(source.Stream(ch)).Subscribe(r)

	ch <- 1
	ch <- 2
	ch <- 3

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return r.itemCount() == 1
	})

	// Without demand the rest stays buffered, not dropped.
	time.Sleep(30 * time.Millisecond)
	testutil.AssertEqual(t, r.itemCount(), 1)

	r.subscription().Request(2)

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return r.itemCount() == 3
	})

	items, completed, err, _ := r.snapshot()
	testutil.AssertEqual(t, items[0], 1)
	testutil.AssertEqual(t, items[1], 2)
	testutil.AssertEqual(t, items[2], 3)
	testutil.AssertEqual(t, completed, false)
	testutil.AssertNoError(t, err)

	close(ch)
	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		_, completed, _, _ := r.snapshot()
		return completed
	})
	_, _, _, terminals := r.snapshot()
	testutil.AssertEqual(t, terminals, 1)
}

// Concrete scenario: a stream yields 1, 2, then fails. The subscriber sees
// item(1), item(2), failure, and nothing after.
func TestFromEmitterProducerError(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan source.Emission[int], 3)
	ch <- source.Emission[int]{Value: 1}
	ch <- source.Emission[int]{Value: 2}
	ch <- source.Emission[int]{Err: boom}

	r := &recorder[int]{initial: observable.Unlimited}
	FromEmitter(source.Fallible(ch)).Subscribe(r)

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		_, _, err, _ := r.snapshot()
		return err != nil
	})

	items, completed, err, terminals := r.snapshot()
	testutil.AssertEqual(t, len(items), 2)
	testutil.AssertEqual(t, items[0], 1)
	testutil.AssertEqual(t, items[1], 2)
	testutil.AssertEqual(t, completed, false)
	testutil.AssertErrorIs(t, err, boom)
	testutil.AssertEqual(t, terminals, 1)
}

func TestFromEmitterCancelStopsDeliveries(t *testing.T) {
	ch := make(chan int)
	r := &recorder[int]{initial: observable.Unlimited}
	FromEmitter(source.Stream(ch)).Subscribe(r)

	ch <- 1
	ch <- 2

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return r.itemCount() == 2
	})

	r.subscription().Cancel()

	// Emissions after Cancel go nowhere; the producer is stopped via its
	// context, so this send must not be received by the subscriber.
	select {
	case ch <- 3:
	case <-time.After(50 * time.Millisecond):
	}

	time.Sleep(30 * time.Millisecond)
	items, completed, err, terminals := r.snapshot()
	testutil.AssertEqual(t, len(items), 2)
	testutil.AssertEqual(t, completed, false)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, terminals, 0)
}

// A terminal event arriving while a delivery is in flight waits for it, so
// the terminal is still the last event.
func TestFromEmitterTerminalAfterInFlightDelivery(t *testing.T) {
	ch := make(chan int, 1)
	r := &recorder[int]{nextDelay: 30 * time.Millisecond}
	FromEmitter(source.Stream(ch)).Subscribe(r)

	ch <- 1
	time.Sleep(10 * time.Millisecond) // let the item reach the buffer

	// Close the stream mid-delivery.
	time.AfterFunc(10*time.Millisecond, func() { close(ch) })
	r.subscription().Request(1)

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		_, completed, _, _ := r.snapshot()
		return completed
	})

	items, _, err, terminals := r.snapshot()
	testutil.AssertEqual(t, len(items), 1)
	testutil.AssertEqual(t, items[0], 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, terminals, 1)
}

func TestFromEmitterSingleUse(t *testing.T) {
	ch := make(chan int)
	close(ch)
	pub := FromEmitter(source.Stream(ch))

	first := &recorder[int]{}
	pub.Subscribe(first)

	second := &recorder[int]{}
	pub.Subscribe(second)

	_, _, err, terminals := second.snapshot()
	testutil.AssertErrorIs(t, err, ErrAlreadySubscribed)
	testutil.AssertEqual(t, terminals, 1)
}
