package observable

import "math"

// Demand is the number of additional items a consumer permits a publisher to
// deliver. It is never negative.
type Demand uint64

// Unlimited represents unbounded demand. Adding to Unlimited keeps it
// Unlimited, and consuming from it never reduces it to a finite value.
const Unlimited Demand = math.MaxUint64

// None is the zero demand.
const None Demand = 0

// Add returns the sum of two demands, saturating at Unlimited.
func (d Demand) Add(more Demand) Demand {
	if d == Unlimited || more == Unlimited {
		return Unlimited
	}
	if d > Unlimited-more {
		return Unlimited
	}
	return d + more
}

// IsUnlimited returns true if the demand is the Unlimited sentinel.
func (d Demand) IsUnlimited() bool {
	return d == Unlimited
}
