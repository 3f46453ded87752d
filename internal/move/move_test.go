package move

import (
	"math"
	"testing"

	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

// squaredNormHandler returns the squared norm of the subject particle's own
// position, a trivial confining potential sufficient to exercise
// accept/reject without depending on the handler package's real
// interaction handlers.
type squaredNormHandler struct{}

func (squaredNormHandler) Energy(particle int, timeslice []geom.Point) float64 {
	return geom.NormSquared(timeslice[particle])
}

func newTestEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.New(2.0, 0.5, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func newTestWorldlines(t *testing.T) *worldline.Worldlines {
	t.Helper()
	init := []geom.Point{{X: 0, Y: 0, Z: 0}, {X: 5, Y: 0, Z: 0}, {X: 0, Y: 5, Z: 0}, {X: 0, Y: 0, Z: 5}}
	w, err := worldline.New(8, init)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestAccept(t *testing.T) {
	if !accept(-1.0, 1.0, 0.999) {
		t.Error("non-increasing energy change must always accept")
	}
	if !accept(0.0, 1.0, 0.999) {
		t.Error("zero energy change must always accept")
	}
	// deltaE*tau large enough that exp(-deltaE*tau) is effectively 0
	if accept(100.0, 1.0, 0.0000001) {
		t.Error("very unfavourable change with u just above exp(-deltaE*tau) should reject")
	}
	if !accept(0.01, 1.0, 0.0) {
		t.Error("u=0 should always accept (0 < any positive probability)")
	}
}

func TestCentreOfMassRestoresOnReject(t *testing.T) {
	w := newTestWorldlines(t)
	com := NewCentreOfMass(squaredNormHandler{}, 1000.0) // huge step forces an energy increase

	r := rng.NewFromSeed(1)
	// run several proposals; at least one should reject given the huge step
	anyRejected := false
	for i := 0; i < 20; i++ {
		before := w.SnapshotParticle(0)
		if !com.Propose(w, 0, 1.0, r) {
			anyRejected = true
			after := w.SnapshotParticle(0)
			for tSlice := range before {
				if before[tSlice] != after[tSlice] {
					t.Errorf("rejected COM move should restore particle 0 at timeslice %d: before=%+v after=%+v", tSlice, before[tSlice], after[tSlice])
				}
			}
			break
		}
	}
	if !anyRejected {
		t.Skip("no rejection observed in this random stream; not a correctness failure")
	}
}

func TestCentreOfMassSetStepSize(t *testing.T) {
	com := NewCentreOfMass(squaredNormHandler{}, 0.1)
	if com.StepSize() != 0.1 {
		t.Fatalf("StepSize = %f, want 0.1", com.StepSize())
	}
	com.SetStepSize(0.5)
	if com.StepSize() != 0.5 {
		t.Errorf("StepSize after SetStepSize = %f, want 0.5", com.StepSize())
	}
}

func TestCentreOfMassMovesEveryTimeslice(t *testing.T) {
	w := newTestWorldlines(t)
	com := NewCentreOfMass(squaredNormHandler{}, 0.01) // tiny step, near-certain accept near origin
	r := rng.NewFromSeed(2)

	accepted := com.Propose(w, 1, 1.0, r)
	if !accepted {
		t.Skip("move rejected by chance; not a correctness failure")
	}
	// every timeslice of particle 1 should carry the same new position
	first := w.Get(0, 1)
	for tSlice := 1; tSlice < w.NTimeslices(); tSlice++ {
		if w.Get(tSlice, 1) != first {
			t.Errorf("timeslice %d diverged from timeslice 0 after a COM move: %+v vs %+v", tSlice, w.Get(tSlice, 1), first)
		}
	}
}

func TestSingleBeadProposalKeepsBeadFinite(t *testing.T) {
	w := newTestWorldlines(t)
	env := newTestEnv(t)
	sb := NewSingleBead(squaredNormHandler{})
	r := rng.NewFromSeed(3)

	sb.Propose(w, env, 0, 2, r)
	// whether accepted or rejected, the worldline must remain internally
	// consistent: the proposed bead (timeslice 2, particle 0) must be a
	// real, non-NaN point
	p := w.Get(2, 0)
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		t.Error("single-bead proposal produced NaN coordinates")
	}
}

func TestBisectionLevelManagerTriples(t *testing.T) {
	m := NewBisectionLevelManager(0, 2, 8)

	sublevel0 := m.Triples(0)
	if len(sublevel0) != 1 {
		t.Fatalf("sublevel 0 should produce 1 triple, got %d", len(sublevel0))
	}
	want := Triple{Left: 0, Mid: 2, Right: 4}
	if sublevel0[0] != want {
		t.Errorf("sublevel 0 triple = %+v, want %+v", sublevel0[0], want)
	}

	sublevel1 := m.Triples(1)
	if len(sublevel1) != 2 {
		t.Fatalf("sublevel 1 should produce 2 triples, got %d", len(sublevel1))
	}
}

func TestBisectionLevelManagerWrapsModularly(t *testing.T) {
	m := NewBisectionLevelManager(6, 2, 8)
	triples := m.Triples(0)
	// left=6, right=10 -> wraps to 2; mid=8 -> wraps to 0
	want := Triple{Left: 6, Mid: 0, Right: 2}
	if triples[0] != want {
		t.Errorf("wrapped triple = %+v, want %+v", triples[0], want)
	}
}

func TestBisectionSetLevelParams(t *testing.T) {
	b := NewBisection(squaredNormHandler{}, 0.1, 2)
	b.SetLevelParams(0.3, 4)
	if b.upperLevelFrac != 0.3 || b.lowerLevel != 4 {
		t.Errorf("SetLevelParams did not update fields: frac=%f level=%d", b.upperLevelFrac, b.lowerLevel)
	}
}

func TestBisectionProposeLeavesWorldlineConsistent(t *testing.T) {
	w := newTestWorldlines(t)
	env := newTestEnv(t)
	b := NewBisection(squaredNormHandler{}, 0.0, 2)
	r := rng.NewFromSeed(4)

	before := w.Snapshot()
	accepted := b.Propose(w, env, 0, 0, r)
	if !accepted {
		after := w.Snapshot()
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("rejected bisection move should fully restore particle 0, index %d: before=%+v after=%+v", i, before[i], after[i])
			}
		}
	}
}
