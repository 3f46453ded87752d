package fourbody

import (
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/potential"
)

// MixLongRange blends the analytic long-range dispersion with an
// ab-initio-regime energy per §4.E step 8: for MIXED_* ranges, convex
// combine by alpha = Smooth01(avg, lowerMixed, upperMixed); for LONG,
// return the dispersion alone; ABINITIO_* never reaches this function.
func MixLongRange(r Range, disp, abInitio, avg float64, cutoffs Cutoffs) float64 {
	switch r {
	case RangeLong:
		return disp
	case RangeMixedShort, RangeMixedShortMid, RangeMixedMid:
		alpha := Smooth01(avg, cutoffs.LowerMixed, cutoffs.UpperMixed)
		return alpha*disp + (1-alpha)*abInitio
	default:
		return abInitio
	}
}

// EvaluateDispersion evaluates the Bade four-body dispersion potential on
// the six periodic separation vectors of a quadruplet.
func EvaluateDispersion(disp *potential.FourBodyDispersion, sep [6]geom.Point) (float64, error) {
	return disp.Energy(sep)
}
