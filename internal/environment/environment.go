// Package environment derives the thermodynamic constants every move
// performer, potential, and estimator is parametrized by.
package environment

import (
	"fmt"
	"math"
)

// Environment holds the derived thermodynamic quantities of a PIMC run:
// beta = 1/(kT), tau = beta/P, lambda = hbar^2/(2m), plus the particle and
// timeslice counts every estimator needs.
type Environment struct {
	nParticles  int
	nTimeslices int
	beta        float64
	tau         float64
	lambda      float64
}

// New constructs an Environment from temperature (kelvin-equivalent energy
// units matching the potentials in use, i.e. already converted so that
// beta = 1/temperature), hbarSquaredOverTwoM (lambda = hbar^2/(2m), already
// converted to the potentials' units and stored as given), particle count,
// and timeslice count.
func New(temperature, hbarSquaredOverTwoM float64, nParticles, nTimeslices int) (*Environment, error) {
	if temperature <= 0 {
		return nil, fmt.Errorf("environment: temperature must be positive, found %e", temperature)
	}
	if nParticles < 1 {
		return nil, fmt.Errorf("environment: n_particles must be positive, found %d", nParticles)
	}
	if nTimeslices < 1 {
		return nil, fmt.Errorf("environment: n_timeslices must be positive, found %d", nTimeslices)
	}

	beta := 1.0 / temperature
	tau := beta / float64(nTimeslices)

	return &Environment{
		nParticles:  nParticles,
		nTimeslices: nTimeslices,
		beta:        beta,
		tau:         tau,
		lambda:      hbarSquaredOverTwoM,
	}, nil
}

// NParticles returns the number of particles.
func (e *Environment) NParticles() int { return e.nParticles }

// NTimeslices returns the number of imaginary-time slices per worldline.
func (e *Environment) NTimeslices() int { return e.nTimeslices }

// ThermodynamicBeta returns beta = 1/(kT).
func (e *Environment) ThermodynamicBeta() float64 { return e.beta }

// ThermodynamicTau returns tau = beta/P.
func (e *Environment) ThermodynamicTau() float64 { return e.tau }

// ThermodynamicLambda returns lambda = hbar^2/(2m).
func (e *Environment) ThermodynamicLambda() float64 { return e.lambda }

// BisectionSigma returns the standard deviation sqrt(2^k * lambda * tau) of
// the Gaussian noise used to propose a bead at bisection sublevel k.
func (e *Environment) BisectionSigma(levelExponent int) float64 {
	scale := 1.0
	for i := 0; i < levelExponent; i++ {
		scale *= 2.0
	}
	return math.Sqrt(scale * e.lambda * e.tau)
}

// SingleBeadSigma returns the standard deviation sqrt(lambda*tau) of the
// Gaussian noise used to propose a single-bead move.
func (e *Environment) SingleBeadSigma() float64 {
	return math.Sqrt(e.lambda * e.tau)
}
