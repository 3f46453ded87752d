package estimator

import (
	"math"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// RMSCentroidDistance computes the root-mean-square distance of every
// particle's beads from its own centroid, averaged over timeslices inside
// the square root and over particles outside it.
func RMSCentroidDistance(w *worldline.Worldlines) float64 {
	nParticles := w.NParticles()
	nTimeslices := w.NTimeslices()

	var total float64
	for i := 0; i < nParticles; i++ {
		centroid := w.Centroid(i)
		for t := 0; t < nTimeslices; t++ {
			total += geom.DistanceSquared(w.Get(t, i), centroid)
		}
	}

	return math.Sqrt(total/float64(nTimeslices)) / float64(nParticles)
}

// AbsoluteCentroidDistance computes the mean (not root-mean-square)
// distance of every particle's beads from its own centroid.
func AbsoluteCentroidDistance(w *worldline.Worldlines) float64 {
	nParticles := w.NParticles()
	nTimeslices := w.NTimeslices()

	var total float64
	for i := 0; i < nParticles; i++ {
		centroid := w.Centroid(i)
		for t := 0; t < nTimeslices; t++ {
			total += geom.Distance(w.Get(t, i), centroid)
		}
	}

	return total / float64(nTimeslices*nParticles)
}
