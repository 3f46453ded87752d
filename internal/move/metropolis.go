// Package move implements the Monte Carlo move performers: centre-of-mass
// translation, single-bead displacement, and multi-level bisection. Every
// performer follows the same Metropolis template: evaluate, mutate,
// re-evaluate, then accept or restore, against the handler/worldline
// abstractions here.
package move

import "math"

// accept applies the Metropolis criterion to an energy change at inverse
// temperature step tau: always accept a non-increasing change, otherwise
// accept with probability exp(-deltaE*tau).
func accept(deltaE, tau, u float64) bool {
	if deltaE <= 0 {
		return true
	}
	return u < math.Exp(-deltaE*tau)
}
