package estimator

import (
	"math"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// BufferedQuadrupletPotential is the accumulator contract this estimator
// feeds, matching fourbody.BufferedExtrapolatedPotential.
type BufferedQuadrupletPotential interface {
	AddSample(sides [6]float64, sep [6]geom.Point) error
	ExtractEnergy() (float64, error)
}

// TimesliceQuadrupletPotentialEnergy sweeps every quadruplet of particles
// in one timeslice, pre-rejecting by pairwise squared distance against
// cutoffDistance before constructing Attard side lengths, buffering
// surviving samples into pot, and returning the flushed total.
//
// Each outer particle i0 is treated as the box centre: every other point
// is shifted into its minimum image relative to i0 before the pairwise
// cutoff checks, a "shift points together" optimization where pairwise
// distances among the shifted points approximate, rather than exactly
// reproduce, independent minimum images; a deliberate trade of exactness
// for a single shift per outer particle instead of one per pair.
func TimesliceQuadrupletPotentialEnergy(points []geom.Point, pot BufferedQuadrupletPotential, box geom.Box, cutoffDistance float64) (float64, error) {
	n := len(points)
	if n < 4 {
		return 0.0, nil
	}

	cutoffSq := cutoffDistance * cutoffDistance

	for i0 := 0; i0 < n-3; i0++ {
		shifted := geom.ShiftPointsTogether(i0, box, points)

		for i1 := i0 + 1; i1 < n-2; i1++ {
			dist01Sq := geom.DistanceSquared(shifted[i0], shifted[i1])
			if dist01Sq > cutoffSq {
				continue
			}

			for i2 := i1 + 1; i2 < n-1; i2++ {
				dist02Sq := geom.DistanceSquared(shifted[i0], shifted[i2])
				if dist02Sq > cutoffSq {
					continue
				}
				dist12Sq := geom.DistanceSquared(shifted[i1], shifted[i2])
				if dist12Sq > cutoffSq {
					continue
				}

				for i3 := i2 + 1; i3 < n; i3++ {
					dist03Sq := geom.DistanceSquared(shifted[i0], shifted[i3])
					if dist03Sq > cutoffSq {
						continue
					}
					dist13Sq := geom.DistanceSquared(shifted[i1], shifted[i3])
					if dist13Sq > cutoffSq {
						continue
					}
					dist23Sq := geom.DistanceSquared(shifted[i2], shifted[i3])
					if dist23Sq > cutoffSq {
						continue
					}

					sides := [6]float64{
						math.Sqrt(dist01Sq),
						math.Sqrt(dist02Sq),
						math.Sqrt(dist03Sq),
						math.Sqrt(dist12Sq),
						math.Sqrt(dist13Sq),
						math.Sqrt(dist23Sq),
					}
					sep := geom.FourBodySeparationPoints([4]geom.Point{points[i0], points[i1], points[i2], points[i3]}, box)

					if err := pot.AddSample(sides, sep); err != nil {
						return 0.0, err
					}
				}
			}
		}
	}

	return pot.ExtractEnergy()
}

// TotalQuadrupletPotentialEnergyPeriodic sums the quadruplet energy over
// every timeslice, averaging the result over timeslices.
func TotalQuadrupletPotentialEnergyPeriodic(w *worldline.Worldlines, pot BufferedQuadrupletPotential, box geom.Box, cutoffDistance float64) (float64, error) {
	var total float64
	nTimeslices := w.NTimeslices()

	for t := 0; t < nTimeslices; t++ {
		e, err := TimesliceQuadrupletPotentialEnergy(w.Timeslice(t), pot, box, cutoffDistance)
		if err != nil {
			return 0.0, err
		}
		total += e
	}

	return total / float64(nTimeslices), nil
}
