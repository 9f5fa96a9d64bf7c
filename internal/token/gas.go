package token

import "math"

// GasWithMargin adds a 10% safety margin to a gas estimate, rounding up so
// the limit is never below estimate*1.1. Saturates at math.MaxUint64.
func GasWithMargin(estimate uint64) uint64 {
	margin := estimate / 10
	if estimate%10 != 0 {
		margin++
	}
	if estimate > math.MaxUint64-margin {
		return math.MaxUint64
	}
	return estimate + margin
}
