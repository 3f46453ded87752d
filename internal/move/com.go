package move

import (
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// CentreOfMass proposes a uniform random displacement and applies it to
// every bead of one particle simultaneously (all timeslices move
// together, so the particle's internal kinetic action is untouched).
//
// This performer applies the full Metropolis accept/reject template,
// restoring every bead of the particle on rejection.
type CentreOfMass struct {
	h        handler.Handler
	stepSize float64
}

// NewCentreOfMass constructs a CentreOfMass move performer with the given
// maximum per-axis displacement magnitude.
func NewCentreOfMass(h handler.Handler, stepSize float64) *CentreOfMass {
	return &CentreOfMass{h: h, stepSize: stepSize}
}

// SetStepSize overwrites the maximum per-axis displacement magnitude, the
// knob the COM step-size adjuster tunes once per equilibration block.
func (m *CentreOfMass) SetStepSize(stepSize float64) {
	m.stepSize = stepSize
}

// StepSize returns the current maximum per-axis displacement magnitude.
func (m *CentreOfMass) StepSize() float64 {
	return m.stepSize
}

// Propose attempts one centre-of-mass translation of particle i, using r
// for random draws and tau as the Metropolis time step. Returns whether
// the move was accepted.
func (m *CentreOfMass) Propose(w *worldline.Worldlines, i int, tau float64, r *rng.PRNGWrapper) bool {
	before := energyAcrossTimeslices(m.h, w, i)

	var delta geom.Point
	delta.X = r.UniformAB(-m.stepSize, m.stepSize)
	delta.Y = r.UniformAB(-m.stepSize, m.stepSize)
	delta.Z = r.UniformAB(-m.stepSize, m.stepSize)

	snapshot := w.SnapshotParticle(i)
	for t := 0; t < w.NTimeslices(); t++ {
		w.Set(t, i, w.Get(t, i).Add(delta))
	}

	after := energyAcrossTimeslices(m.h, w, i)
	deltaE := after - before

	if accept(deltaE, tau, r.Uniform01()) {
		return true
	}

	w.RestoreParticle(i, snapshot)
	return false
}

// energyAcrossTimeslices sums a handler's energy for particle i over every
// timeslice of w, the total interaction energy a centre-of-mass move must
// compare before and after, since it touches every timeslice at once.
func energyAcrossTimeslices(h handler.Handler, w *worldline.Worldlines, i int) float64 {
	var total float64
	for t := 0; t < w.NTimeslices(); t++ {
		total += h.Energy(i, w.Timeslice(t))
	}
	return total
}
