package adjust

import "fmt"

// BisectionLevelMoveAdjuster steps the bisection move's (upperLevelFrac,
// lowerLevel) pair toward a target acceptance band. Decreasing the
// fraction past 0 carries into lowerLevel decreasing by 1, with the
// fraction wrapping to 1-delta; increasing past 1 is symmetric. lowerLevel
// never drops below 1; if a decrement would, the pair clamps to (0.0, 1).
type BisectionLevelMoveAdjuster struct {
	fraction      float64
	lowerLevel    int
	band          AcceptPercentageRange
	delta         float64
	direction     Direction
	noMovesPolicy NoMovesPolicy
}

// NewBisectionLevelMoveAdjuster constructs an adjuster starting at
// (initialFraction, initialLowerLevel). initialLowerLevel must be >= 1.
func NewBisectionLevelMoveAdjuster(initialFraction float64, initialLowerLevel int, band AcceptPercentageRange, delta float64, direction Direction, noMovesPolicy NoMovesPolicy) *BisectionLevelMoveAdjuster {
	if initialLowerLevel < 1 {
		initialLowerLevel = 1
	}
	return &BisectionLevelMoveAdjuster{
		fraction:      initialFraction,
		lowerLevel:    initialLowerLevel,
		band:          band,
		delta:         delta,
		direction:     direction,
		noMovesPolicy: noMovesPolicy,
	}
}

// UpperLevelFrac returns the current fraction of proposals made at
// lowerLevel+1 rather than lowerLevel.
func (a *BisectionLevelMoveAdjuster) UpperLevelFrac() float64 { return a.fraction }

// LowerLevel returns the current base bisection level.
func (a *BisectionLevelMoveAdjuster) LowerLevel() int { return a.lowerLevel }

// Adjust updates (fraction, lowerLevel) from one block's (accepted, total)
// counts. Returns an error only when total is zero and the policy is Fail.
func (a *BisectionLevelMoveAdjuster) Adjust(accepted, total int) error {
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

	return nil
}

func (a *BisectionLevelMoveAdjuster) step(direction Direction) {
	if direction == Positive {
		a.fraction += a.delta
		if a.fraction >= 1.0 {
			a.lowerLevel++
			a.fraction -= 1.0
		}
		return
	}

	a.fraction -= a.delta
	if a.fraction < 0.0 {
		if a.lowerLevel <= 1 {
			a.fraction = 0.0
			a.lowerLevel = 1
			return
		}
		a.lowerLevel--
		a.fraction = 1.0 - a.delta
	}
}
