package potential

// fshPairDistanceAdapter adapts FSHPair's squared-distance Energy to the
// plain-distance PairPotential contract PeriodicPairPoint calls through,
// squaring the distance back before lookup. The grid's own domain error
// (distance outside the tabulated range, long-range tail disabled) is
// swallowed to 0 rather than propagated, since PairPotential.Energy sits
// on the handler hot path and cannot return an error.
type fshPairDistanceAdapter struct {
	inner *FSHPair
}

// AsPairPotential wraps f so it satisfies PairPotential.
func (f *FSHPair) AsPairPotential() PairPotential {
	return fshPairDistanceAdapter{inner: f}
}

func (a fshPairDistanceAdapter) Energy(distance float64) float64 {
	energy, err := a.inner.Energy(distance * distance)
	if err != nil {
		return 0.0
	}
	return energy
}
