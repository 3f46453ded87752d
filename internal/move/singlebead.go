package move

import (
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// SingleBead proposes a new position for one particle at one timeslice:
// the midpoint of its two imaginary-time neighbours, perturbed by Gaussian
// noise with standard deviation sqrt(lambda*tau).
type SingleBead struct {
	h handler.Handler
}

// NewSingleBead constructs a SingleBead move performer.
func NewSingleBead(h handler.Handler) *SingleBead {
	return &SingleBead{h: h}
}

// Propose attempts one single-bead displacement of particle i at
// timeslice t. Returns whether the move was accepted.
func (m *SingleBead) Propose(w *worldline.Worldlines, env *environment.Environment, i, t int, r *rng.PRNGWrapper) bool {
	before := m.h.Energy(i, w.Timeslice(t))

	original := w.Get(t, i)
	prev := w.Get(t-1, i)
	next := w.Get(t+1, i)
	midpoint := prev.Add(next).Scale(0.5)

	sigma := env.SingleBeadSigma()
	proposed := midpoint.Add(geom.Point{
		X: r.Normal(0, sigma),
		Y: r.Normal(0, sigma),
		Z: r.Normal(0, sigma),
	})

	w.Set(t, i, proposed)
	after := m.h.Energy(i, w.Timeslice(t))
	deltaE := after - before

	if accept(deltaE, env.ThermodynamicTau(), r.Uniform01()) {
		return true
	}

	w.Set(t, i, original)
	return false
}
