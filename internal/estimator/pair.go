package estimator

import (
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// PeriodicPairPoint is the pair-potential contract this estimator reads
// from, matching potential.PeriodicPairPoint's cutoff-rejecting
// WithinBoxCutoff method.
type PeriodicPairPoint interface {
	WithinBoxCutoff(p0, p1 geom.Point) float64
}

// TotalPairPotentialEnergy sums pot's energy over every unordered pair of
// particles within every timeslice, then averages over timeslices (the
// primitive-action estimator treats every timeslice as an independent
// classical configuration to average over).
func TotalPairPotentialEnergy(w *worldline.Worldlines, pot PeriodicPairPoint) float64 {
	var total float64
	nTimeslices := w.NTimeslices()

	for t := 0; t < nTimeslices; t++ {
		timeslice := w.Timeslice(t)
		n := len(timeslice)
		for i0 := 0; i0 < n-1; i0++ {
			p0 := timeslice[i0]
			for i1 := i0 + 1; i1 < n; i1++ {
				total += pot.WithinBoxCutoff(p0, timeslice[i1])
			}
		}
	}

	return total / float64(nTimeslices)
}
