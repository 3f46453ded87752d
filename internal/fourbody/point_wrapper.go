package fourbody

import "github.com/sarat-asymmetrica/pimc/internal/geom"

// PeriodicQuadrupletPoint adapts a Pipeline to point arguments, suitable
// for synchronous per-move Metropolis evaluation: it folds four points
// into Attard separation coordinates, runs them through the pipeline as a
// single-sample batch, and returns the resulting energy directly.
//
// Move performers that evaluate many quadruplets per proposal should
// prefer BufferedExtrapolatedPotential instead, batching samples through
// the same Pipeline before reading back the accumulated total.
type PeriodicQuadrupletPoint struct {
	pipeline *Pipeline
	box      geom.Box
}

// NewPeriodicQuadrupletPoint constructs the wrapper over pipeline and box.
func NewPeriodicQuadrupletPoint(pipeline *Pipeline, box geom.Box) *PeriodicQuadrupletPoint {
	return &PeriodicQuadrupletPoint{pipeline: pipeline, box: box}
}

// Energy returns the extrapolated four-body energy for p0..p3 under
// periodic boundary conditions. Any pipeline error collapses to zero
// energy, since the synchronous Handler contract has no error return; the
// buffered path should be preferred wherever errors must propagate.
func (w *PeriodicQuadrupletPoint) Energy(p0, p1, p2, p3 geom.Point) float64 {
	points := [4]geom.Point{p0, p1, p2, p3}
	sep := geom.FourBodySeparationPoints(points, w.box)
	sides := geom.FourBodySideLengths(points, w.box)

	dispEnergy, err := EvaluateDispersion(w.pipeline.dispersion, sep)
	if err != nil {
		return 0.0
	}

	energies, err := w.pipeline.EvaluateBatch([][6]float64{sides}, []float64{dispEnergy})
	if err != nil || len(energies) == 0 {
		return 0.0
	}
	return energies[0]
}
