package bridge

import (
	"testing"

	"github.com/vnykmshr/rxbridge/internal/testutil"
	"github.com/vnykmshr/rxbridge/pkg/observable"
)

func TestTrackerStartsEmpty(t *testing.T) {
	var tr tracker
	testutil.AssertEqual(t, tr.pending(), observable.None)
	testutil.AssertEqual(t, tr.consumeOne(), false)
	// A failed consume must not go negative.
	testutil.AssertEqual(t, tr.pending(), observable.None)
}

func TestTrackerAddAndConsume(t *testing.T) {
	var tr tracker
	tr.add(2)
	testutil.AssertEqual(t, tr.consumeOne(), true)
	testutil.AssertEqual(t, tr.consumeOne(), true)
	testutil.AssertEqual(t, tr.consumeOne(), false)
	testutil.AssertEqual(t, tr.pending(), observable.None)

	tr.add(1)
	testutil.AssertEqual(t, tr.consumeOne(), true)
	testutil.AssertEqual(t, tr.consumeOne(), false)
}

func TestTrackerUnlimited(t *testing.T) {
	var tr tracker
	tr.add(observable.Unlimited)

	for i := 0; i < 100; i++ {
		testutil.AssertEqual(t, tr.consumeOne(), true)
	}
	// Unlimited is never decremented to a finite value.
	testutil.AssertEqual(t, tr.pending(), observable.Unlimited)

	// Further grants are absorbed.
	tr.add(5)
	testutil.AssertEqual(t, tr.pending(), observable.Unlimited)
}
