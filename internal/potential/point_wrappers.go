package potential

import "github.com/sarat-asymmetrica/pimc/internal/geom"

// PairPotential is any potential that is a pure function of a single
// distance (or squared distance, by convention of the concrete type).
type PairPotential interface {
	Energy(distance float64) float64
}

// TripletPotential is any potential that is a pure function of three side
// lengths.
type TripletPotential interface {
	Energy(dist01, dist02, dist12 float64) float64
}

// PeriodicPairPoint adapts a distance-based pair potential to point
// arguments, computing the periodic minimum-image distance internally, and
// offers a within_box_cutoff fast-reject variant for sweep loops.
type PeriodicPairPoint struct {
	pot            PairPotential
	box            geom.Box
	cutoffDistance float64
}

// NewPeriodicPairPoint constructs the wrapper over pot and box.
func NewPeriodicPairPoint(pot PairPotential, box geom.Box) *PeriodicPairPoint {
	return &PeriodicPairPoint{pot: pot, box: box, cutoffDistance: box.CutoffDistance()}
}

// Energy returns the pair energy between p0 and p1 under periodic boundary
// conditions, with no cutoff applied.
func (w *PeriodicPairPoint) Energy(p0, p1 geom.Point) float64 {
	return w.pot.Energy(geom.DistancePeriodic(p0, p1, w.box))
}

// WithinBoxCutoff returns the pair energy, or 0 if the periodic distance
// exceeds the box cutoff, a cheap rejection during pair sweeps.
func (w *PeriodicPairPoint) WithinBoxCutoff(p0, p1 geom.Point) float64 {
	distance := geom.DistancePeriodic(p0, p1, w.box)
	if distance < w.cutoffDistance {
		return w.pot.Energy(distance)
	}
	return 0.0
}

// PeriodicTripletDistance adapts a distance-triple potential to point
// arguments under periodic boundary conditions, using the Attard
// separation-coordinate convention to build unambiguous side lengths.
//
// WithinBoxCutoff follows the published Attard convention: centre on one
// point, fold the other two into minimum-image via the
// geom.ThreeBodySeparationPoints routine, and reject if any resulting side
// length exceeds the box cutoff.
type PeriodicTripletDistance struct {
	pot            TripletPotential
	box            geom.Box
	cutoffDistance float64
}

// NewPeriodicTripletDistance constructs the wrapper over pot and box.
func NewPeriodicTripletDistance(pot TripletPotential, box geom.Box) *PeriodicTripletDistance {
	return &PeriodicTripletDistance{pot: pot, box: box, cutoffDistance: box.CutoffDistance()}
}

// Energy returns the triplet energy for p0, p1, p2 under periodic boundary
// conditions, with no cutoff applied.
func (w *PeriodicTripletDistance) Energy(p0, p1, p2 geom.Point) float64 {
	sides := geom.ThreeBodySideLengths([3]geom.Point{p0, p1, p2}, w.box)
	return w.pot.Energy(sides[0], sides[1], sides[2])
}

// WithinBoxCutoff returns the triplet energy, or 0 if any of the three
// Attard side lengths exceeds the box cutoff.
func (w *PeriodicTripletDistance) WithinBoxCutoff(p0, p1, p2 geom.Point) float64 {
	sides := geom.ThreeBodySideLengths([3]geom.Point{p0, p1, p2}, w.box)
	if sides[0] > w.cutoffDistance || sides[1] > w.cutoffDistance || sides[2] > w.cutoffDistance {
		return 0.0
	}
	return w.pot.Energy(sides[0], sides[1], sides[2])
}
