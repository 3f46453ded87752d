package estimator

import (
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// PeriodicTripletPoint is the triplet-potential contract this estimator
// reads from, matching potential.PeriodicTripletDistance's cutoff-rejecting
// WithinBoxCutoff method.
type PeriodicTripletPoint interface {
	WithinBoxCutoff(p0, p1, p2 geom.Point) float64
}

// TotalTripletPotentialEnergy sums pot's energy over every unordered triple
// of particles within every timeslice, then averages over timeslices.
func TotalTripletPotentialEnergy(w *worldline.Worldlines, pot PeriodicTripletPoint) float64 {
	var total float64
	nTimeslices := w.NTimeslices()

	for t := 0; t < nTimeslices; t++ {
		timeslice := w.Timeslice(t)
		n := len(timeslice)
		for i0 := 0; i0 < n-2; i0++ {
			p0 := timeslice[i0]
			for i1 := i0 + 1; i1 < n-1; i1++ {
				p1 := timeslice[i1]
				for i2 := i1 + 1; i2 < n; i2++ {
					total += pot.WithinBoxCutoff(p0, p1, timeslice[i2])
				}
			}
		}
	}

	return total / float64(nTimeslices)
}
