// Package estimator implements the per-block observables: primitive
// kinetic energy, total pair/triplet/quadruplet potential energy, centroid
// distance statistics, and the histograms they feed.
package estimator

import (
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// PrimitiveKineticEnergy evaluates the primitive kinetic energy estimator
// given the accumulated sum of squared imaginary-time-neighbour distances
// across every particle's closed worldline.
func PrimitiveKineticEnergy(env *environment.Environment, totalDistSquared float64, ndim int) float64 {
	nParticles := env.NParticles()
	tau := env.ThermodynamicTau()
	beta := env.ThermodynamicBeta()
	lambda := env.ThermodynamicLambda()

	thermal := 0.5 * float64(ndim*nParticles) / tau
	vibrationCorrection := totalDistSquared / (4.0 * tau * beta * lambda)

	return thermal - vibrationCorrection
}

// TotalPrimitiveKineticEnergy sums squared imaginary-time-neighbour
// distances over every particle's closed worldline (beads P-1 and 0 are
// neighbours) and reduces via PrimitiveKineticEnergy.
func TotalPrimitiveKineticEnergy(w *worldline.Worldlines, env *environment.Environment, ndim int) float64 {
	var totalDistSquared float64
	n := w.NTimeslices()

	for i := 0; i < w.NParticles(); i++ {
		for t := 0; t < n; t++ {
			current := w.Get(t, i)
			next := w.Get(t+1, i)
			diff := current.Sub(next)
			totalDistSquared += diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z
		}
	}

	return PrimitiveKineticEnergy(env, totalDistSquared, ndim)
}
