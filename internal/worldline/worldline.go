// Package worldline implements the bead-storage data model: a rectangular
// (timeslice, particle) array of Points, stored timeslice-major so that
// every timeslice is a contiguous slice.
package worldline

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// Worldlines stores every particle's beads across every imaginary-time
// slice. Storage is timeslice-major: beads[t*nParticles : (t+1)*nParticles]
// is the t-th timeslice, contiguous in memory. This layout is load-bearing
// for the hot paths in the handler and estimator packages, which take the
// address of a timeslice slice.
type Worldlines struct {
	beads       []geom.Point
	nTimeslices int
	nParticles  int
}

// New constructs a Worldlines with nTimeslices x nParticles beads, all
// initialized to initial[i] for particle i across every timeslice (the
// classical zero-temperature starting configuration fed by the lattice
// generator).
func New(nTimeslices int, initial []geom.Point) (*Worldlines, error) {
	if nTimeslices < 1 {
		return nil, fmt.Errorf("worldline: n_timeslices must be positive, found %d", nTimeslices)
	}
	nParticles := len(initial)
	if nParticles < 1 {
		return nil, fmt.Errorf("worldline: at least one particle is required")
	}

	beads := make([]geom.Point, nTimeslices*nParticles)
	for t := 0; t < nTimeslices; t++ {
		copy(beads[t*nParticles:(t+1)*nParticles], initial)
	}

	return &Worldlines{beads: beads, nTimeslices: nTimeslices, nParticles: nParticles}, nil
}

// NTimeslices returns the number of imaginary-time slices.
func (w *Worldlines) NTimeslices() int { return w.nTimeslices }

// NParticles returns the number of particles.
func (w *Worldlines) NParticles() int { return w.nParticles }

func (w *Worldlines) index(t, i int) int {
	return t*w.nParticles + i
}

// Get returns the bead of particle i at timeslice t, both taken modulo
// their respective extents so that callers may pass indices outside
// [0, n).
func (w *Worldlines) Get(t, i int) geom.Point {
	t = mod(t, w.nTimeslices)
	i = mod(i, w.nParticles)
	return w.beads[w.index(t, i)]
}

// Set overwrites the bead of particle i at timeslice t.
func (w *Worldlines) Set(t, i int, p geom.Point) {
	t = mod(t, w.nTimeslices)
	i = mod(i, w.nParticles)
	w.beads[w.index(t, i)] = p
}

// Timeslice returns the contiguous slice of all particles' beads at
// timeslice t. The returned slice aliases internal storage: callers may
// take its address, but must not retain it across a Set call that could
// reallocate (Worldlines never reallocates after New, so this is safe for
// the lifetime of the instance).
func (w *Worldlines) Timeslice(t int) []geom.Point {
	t = mod(t, w.nTimeslices)
	return w.beads[t*w.nParticles : (t+1)*w.nParticles]
}

// Centroid returns the arithmetic mean of particle i's beads across every
// timeslice.
func (w *Worldlines) Centroid(i int) geom.Point {
	i = mod(i, w.nParticles)
	var sum geom.Point
	for t := 0; t < w.nTimeslices; t++ {
		sum = sum.Add(w.beads[w.index(t, i)])
	}
	return sum.Scale(1.0 / float64(w.nTimeslices))
}

// Snapshot returns a deep copy of the full bead array, timeslice-major, for
// restore-on-reject or checkpointing.
func (w *Worldlines) Snapshot() []geom.Point {
	out := make([]geom.Point, len(w.beads))
	copy(out, w.beads)
	return out
}

// Restore overwrites every bead from a snapshot previously returned by
// Snapshot.
func (w *Worldlines) Restore(snapshot []geom.Point) {
	copy(w.beads, snapshot)
}

// SnapshotParticle returns a copy of every bead belonging to particle i,
// ordered by timeslice, for cheaply restoring a single-particle move.
func (w *Worldlines) SnapshotParticle(i int) []geom.Point {
	i = mod(i, w.nParticles)
	out := make([]geom.Point, w.nTimeslices)
	for t := 0; t < w.nTimeslices; t++ {
		out[t] = w.beads[w.index(t, i)]
	}
	return out
}

// RestoreParticle overwrites every bead of particle i from a snapshot
// previously returned by SnapshotParticle.
func (w *Worldlines) RestoreParticle(i int, snapshot []geom.Point) {
	i = mod(i, w.nParticles)
	for t := 0; t < w.nTimeslices; t++ {
		w.beads[w.index(t, i)] = snapshot[t]
	}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
