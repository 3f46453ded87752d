package potential

import "math"

// ThreeBodyCombined blends the tabulated ThreeBodyParaH2 surface with its
// analytic Axilrod-Teller-Muto tail, the same short/long-range blending
// shape the four-body extrapolated pipeline uses: a cubic Hermite
// smoothstep over the triplet's minimum side length between a lower and
// upper cutoff.
//
// This uses the standard triangle-shape coordinates for an isotropic
// three-body surface: R the mean side length, s the root-mean-square
// asymmetry of the three sides relative to R, and cosPhi the cosine of
// the angle at vertex 0 via the law of cosines. See DESIGN.md for this
// Open Question decision.
type ThreeBodyCombined struct {
	surface    *ThreeBodyParaH2
	lowerShort float64
	upperShort float64
}

// NewThreeBodyCombined constructs the blended potential. lowerShort and
// upperShort bound the smoothstep transition in minimum side length: below
// lowerShort, pure grid surface; above upperShort, pure ATM tail.
func NewThreeBodyCombined(surface *ThreeBodyParaH2, lowerShort, upperShort float64) *ThreeBodyCombined {
	return &ThreeBodyCombined{surface: surface, lowerShort: lowerShort, upperShort: upperShort}
}

// Energy implements TripletPotential. The grid lookup's error (distance
// triple maps outside the tabulated (R,s,cosPhi) range) is treated the
// same way the four-body point wrapper treats sampling failures: it falls
// back to the analytic tail rather than propagating, since this sits on
// the handler/estimator hot path where Energy must not return an error.
func (c *ThreeBodyCombined) Energy(dist01, dist02, dist12 float64) float64 {
	minSide := math.Min(dist01, math.Min(dist02, dist12))
	tailWeight := smooth01(minSide, c.lowerShort, c.upperShort)
	tail := c.surface.LongRangeTailEnergy(dist01, dist02, dist12)

	if tailWeight >= 1.0 {
		return tail
	}

	r, s, cosPhi := triangleShapeCoordinates(dist01, dist02, dist12)
	gridEnergy, err := c.surface.Energy(r, s, cosPhi)
	if err != nil {
		return tail
	}

	return (1.0-tailWeight)*gridEnergy + tailWeight*tail
}

// triangleShapeCoordinates converts a triplet's three side lengths into
// (mean separation, asymmetry, included-angle cosine).
func triangleShapeCoordinates(dist01, dist02, dist12 float64) (r, s, cosPhi float64) {
	r = (dist01 + dist02 + dist12) / 3.0

	d0 := dist01 - r
	d1 := dist02 - r
	d2 := dist12 - r
	variance := (d0*d0 + d1*d1 + d2*d2) / 3.0
	s = math.Sqrt(variance) / r

	cosPhi = (dist01*dist01 + dist02*dist02 - dist12*dist12) / (2.0 * dist01 * dist02)
	return r, s, cosPhi
}

// smooth01 mirrors fourbody.Smooth01's contract (0 below a, 1 above b,
// cubic Hermite in between); duplicated here rather than imported since
// fourbody already depends on this package.
func smooth01(x, a, b float64) float64 {
	if x <= a {
		return 0.0
	}
	if x >= b {
		return 1.0
	}
	t := (x - a) / (b - a)
	return t * t * (3.0 - 2.0*t)
}
