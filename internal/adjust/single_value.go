package adjust

import "fmt"

// SingleValueMoveAdjuster steps a single scalar move parameter (a
// centre-of-mass or single-bead step size) toward a target acceptance
// band, by a fixed delta per block.
//
// The acceptance ratio always promotes both operands to float64 before
// dividing, so it never truncates to 0 or 1 on an integer code path.
type SingleValueMoveAdjuster struct {
	value         float64
	band          AcceptPercentageRange
	delta         float64
	direction     Direction
	hasLowerLimit bool
	lowerLimit    float64
	hasUpperLimit bool
	upperLimit    float64
	noMovesPolicy NoMovesPolicy
}

// NewSingleValueMoveAdjuster constructs an adjuster starting at initial,
// targeting band, stepping by delta, moving in direction when acceptance
// is below band.Lo.
func NewSingleValueMoveAdjuster(initial float64, band AcceptPercentageRange, delta float64, direction Direction, noMovesPolicy NoMovesPolicy) *SingleValueMoveAdjuster {
	return &SingleValueMoveAdjuster{value: initial, band: band, delta: delta, direction: direction, noMovesPolicy: noMovesPolicy}
}

// WithLowerLimit sets a floor the adjusted value is clamped to.
func (a *SingleValueMoveAdjuster) WithLowerLimit(limit float64) *SingleValueMoveAdjuster {
	a.hasLowerLimit = true
	a.lowerLimit = limit
	return a
}

// WithUpperLimit sets a ceiling the adjusted value is clamped to.
func (a *SingleValueMoveAdjuster) WithUpperLimit(limit float64) *SingleValueMoveAdjuster {
	a.hasUpperLimit = true
	a.upperLimit = limit
	return a
}

// Value returns the current adjusted value.
func (a *SingleValueMoveAdjuster) Value() float64 { return a.value }

// Adjust updates the value from one block's (accepted, total) counts,
// moving by delta toward the acceptance band, or away from it, and
// clamping to any configured limits. Returns an error only when total is
// zero and the policy is Fail.
func (a *SingleValueMoveAdjuster) Adjust(accepted, total int) error {
	if total == 0 {
		if a.noMovesPolicy == Fail {
			return fmt.Errorf("adjust: no moves attempted this block")
		}
		return nil
	}

	ratio := float64(accepted) / float64(total)

	switch {
	case ratio < a.band.Lo:
		a.step(a.direction)
	case ratio > a.band.Hi:
		a.step(opposite(a.direction))
	}

	a.clamp()
	return nil
}

func (a *SingleValueMoveAdjuster) step(direction Direction) {
	if direction == Positive {
		a.value += a.delta
	} else {
		a.value -= a.delta
	}
}

func (a *SingleValueMoveAdjuster) clamp() {
	if a.hasLowerLimit && a.value < a.lowerLimit {
		a.value = a.lowerLimit
	}
	if a.hasUpperLimit && a.value > a.upperLimit {
		a.value = a.upperLimit
	}
}

func opposite(d Direction) Direction {
	if d == Positive {
		return Negative
	}
	return Positive
}
