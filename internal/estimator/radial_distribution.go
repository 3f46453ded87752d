package estimator

import (
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/histogram"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// DistanceCalculator computes the distance this histogram update should
// bin, letting callers choose a periodic or non-periodic convention.
type DistanceCalculator func(p0, p1 geom.Point) float64

// UpdateRadialDistributionFunctionHistogram bins the pairwise distance of
// every pair of beads (timeslices t0 < t1) belonging to the same
// particle's worldline: every within-worldline pair, not only
// imaginary-time neighbours, and not cross-particle pairs (that distinction is
// what separates this from the pair-potential sweep in pair.go).
func UpdateRadialDistributionFunctionHistogram(h *histogram.Histogram, distance DistanceCalculator, w *worldline.Worldlines) error {
	nParticles := w.NParticles()
	nTimeslices := w.NTimeslices()

	for i := 0; i < nParticles; i++ {
		for t0 := 0; t0 < nTimeslices-1; t0++ {
			p0 := w.Get(t0, i)
			for t1 := t0 + 1; t1 < nTimeslices; t1++ {
				p1 := w.Get(t1, i)
				if err := h.Add(distance(p0, p1)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// UpdateCentroidRadialDistributionFunctionHistogram bins the pairwise
// distance between every unordered pair of particle centroids.
func UpdateCentroidRadialDistributionFunctionHistogram(h *histogram.Histogram, env *environment.Environment, distance DistanceCalculator, w *worldline.Worldlines) error {
	nParticles := env.NParticles()

	centroids := make([]geom.Point, nParticles)
	for i := 0; i < nParticles; i++ {
		centroids[i] = w.Centroid(i)
	}

	for i0 := 0; i0 < nParticles-1; i0++ {
		for i1 := i0 + 1; i1 < nParticles; i1++ {
			if err := h.Add(distance(centroids[i0], centroids[i1])); err != nil {
				return err
			}
		}
	}
	return nil
}
