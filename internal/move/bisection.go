package move

import (
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// Triple is one (left, mid, right) timeslice index triple touched at a
// bisection sublevel, all taken modulo the number of timeslices.
type Triple struct {
	Left, Mid, Right int
}

// BisectionLevelManager enumerates the midpoint triples a bisection move
// must visit at a given level, one sublevel at a time.
type BisectionLevelManager struct {
	startTimeslice int
	level          int
	nTimeslices    int
}

// NewBisectionLevelManager constructs a manager for a segment of 2^level
// beads starting at startTimeslice.
func NewBisectionLevelManager(startTimeslice, level, nTimeslices int) *BisectionLevelManager {
	return &BisectionLevelManager{startTimeslice: startTimeslice, level: level, nTimeslices: nTimeslices}
}

// Triples returns the 2^sublevel midpoint triples visited at the given
// sublevel (0-indexed, from 0 to level-1). At sublevel s, each triple spans
// right-left = 2^(level-s) timeslices, with mid the exact midpoint.
func (b *BisectionLevelManager) Triples(sublevel int) []Triple {
	segLen := 1 << uint(b.level-sublevel)
	numTriples := 1 << uint(sublevel)

	triples := make([]Triple, numTriples)
	for k := 0; k < numTriples; k++ {
		left := b.startTimeslice + k*segLen
		right := left + segLen
		mid := (left + right) / 2
		triples[k] = Triple{
			Left:  modIndex(left, b.nTimeslices),
			Mid:   modIndex(mid, b.nTimeslices),
			Right: modIndex(right, b.nTimeslices),
		}
	}
	return triples
}

func modIndex(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Bisection implements the multi-level bisection move: at each sublevel of
// a randomly chosen level (lowerLevel or lowerLevel+1, the latter with
// probability upperLevelFrac), propose new midpoints for every triple in
// that sublevel and accept or abort the entire move via Metropolis.
type Bisection struct {
	h              handler.Handler
	upperLevelFrac float64
	lowerLevel     int
}

// NewBisection constructs a Bisection move performer. lowerLevel must be
// >= 1 and upperLevelFrac must be in [0, 1).
func NewBisection(h handler.Handler, upperLevelFrac float64, lowerLevel int) *Bisection {
	return &Bisection{h: h, upperLevelFrac: upperLevelFrac, lowerLevel: lowerLevel}
}

// SetLevelParams overwrites (upperLevelFrac, lowerLevel), the pair the
// bisection level adjuster tunes once per equilibration block.
func (m *Bisection) SetLevelParams(upperLevelFrac float64, lowerLevel int) {
	m.upperLevelFrac = upperLevelFrac
	m.lowerLevel = lowerLevel
}

// Propose attempts one bisection move of particle i rooted at startTimeslice.
// Returns whether the move was accepted (all sublevels passed).
func (m *Bisection) Propose(w *worldline.Worldlines, env *environment.Environment, i, startTimeslice int, r *rng.PRNGWrapper) bool {
	level := m.lowerLevel
	if r.Uniform01() < m.upperLevelFrac {
		level++
	}

	snapshot := w.SnapshotParticle(i)
	manager := NewBisectionLevelManager(startTimeslice, level, w.NTimeslices())
	tau := env.ThermodynamicTau()

	for s := 0; s < level; s++ {
		triples := manager.Triples(s)
		before := sumTripleEnergies(m.h, w, i, triples)

		sigma := env.BisectionSigma(level - s - 1)
		for _, tr := range triples {
			left := w.Get(tr.Left, i)
			right := w.Get(tr.Right, i)
			midpoint := left.Add(right).Scale(0.5)
			proposed := midpoint.Add(geom.Point{
				X: r.Normal(0, sigma),
				Y: r.Normal(0, sigma),
				Z: r.Normal(0, sigma),
			})
			w.Set(tr.Mid, i, proposed)
		}

		after := sumTripleEnergies(m.h, w, i, triples)
		deltaE := after - before

		if !accept(deltaE, tau, r.Uniform01()) {
			w.RestoreParticle(i, snapshot)
			return false
		}
	}

	return true
}

// sumTripleEnergies sums particle i's handler energy at the mid timeslice
// of every triple, the quantity the bisection sublevel's Metropolis test
// compares before and after proposing new midpoints.
func sumTripleEnergies(h handler.Handler, w *worldline.Worldlines, i int, triples []Triple) float64 {
	var total float64
	for _, tr := range triples {
		total += h.Energy(i, w.Timeslice(tr.Mid))
	}
	return total
}
