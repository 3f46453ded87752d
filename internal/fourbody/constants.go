// Package fourbody implements the extrapolated four-body potential
// pipeline: range classification, permutation/reciprocal transforms, a
// trained rescaling regression model, short-range extrapolation, and
// long-range analytic mixing.
package fourbody

import "math"

// Cutoffs bundles the distance thresholds that drive range classification
// and the short-range/mid-range/long-range blends. All distances are in
// the same units as the six pairwise side lengths being classified
// (angstroms, by convention of the rest of the engine).
type Cutoffs struct {
	LowerShort float64
	UpperShort float64
	LowerMixed float64
	UpperMixed float64

	// ReciprocalMultiplier is the fixed multiplier f in the transform
	// s <- f/s applied before permutation canonicalization.
	ReciprocalMultiplier float64

	// SlopeMin/SlopeMax bound the short-range linear/exponential blend
	// window (see short_range.go ReduceShort).
	SlopeMin float64
	SlopeMax float64

	// AnchorEpsilon is the small separation between the two short-range
	// extrapolation anchors r_lo and r_hi = r_lo + AnchorEpsilon.
	AnchorEpsilon float64
}

// DispersionEnvelope parametrizes g(x) = A*exp(-alpha*x) + C/x^12, the
// function the rescaling model's raw output is multiplied by to recover a
// physical energy.
type DispersionEnvelope struct {
	A     float64
	Alpha float64
	C     float64
}

// Evaluate computes g(avgDist).
func (e DispersionEnvelope) Evaluate(avgDist float64) float64 {
	x12 := avgDist * avgDist * avgDist * avgDist * avgDist * avgDist
	x12 *= x12
	return e.A*math.Exp(-e.Alpha*avgDist) + e.C/x12
}
