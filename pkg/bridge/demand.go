package bridge

import "github.com/vnykmshr/rxbridge/pkg/observable"

// tracker counts the outstanding consumer demand of one subscription. It is
// not safe for concurrent use on its own; every mutation happens under the
// owning subscription's mutex. The count never goes negative, and Unlimited
// demand absorbs further grants without ever being decremented.
type tracker struct {
	outstanding observable.Demand
}

// add folds additional demand into the outstanding total, saturating at
// Unlimited.
func (t *tracker) add(d observable.Demand) {
	t.outstanding = t.outstanding.Add(d)
}

// consumeOne decrements the outstanding demand by one and reports whether it
// succeeded. It always succeeds on Unlimited demand, without decrementing.
func (t *tracker) consumeOne() bool {
	if t.outstanding == observable.Unlimited {
		return true
	}
	if t.outstanding == observable.None {
		return false
	}
	t.outstanding--
	return true
}

// pending returns the current outstanding demand.
func (t *tracker) pending() observable.Demand {
	return t.outstanding
}
