// Package handler implements the interaction handlers consumed by move
// performers: each exposes (particle_index, worldline_timeslice) -> energy,
// summing whichever pair/triplet/quadruplet potential it wraps over
// whichever set of "other" particles it considers, either every other
// particle in the box, or only those currently listed in a centroid
// adjacency matrix row.
package handler

import (
	"github.com/sarat-asymmetrica/pimc/internal/adjacency"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// Handler is the contract every interaction handler satisfies: given a
// particle index and the timeslice (the contiguous slice of every
// particle's bead at one imaginary-time slice), return that particle's
// total interaction energy with the rest of the system at that slice.
type Handler interface {
	Energy(particle int, timeslice []geom.Point) float64
}

// PairPotential is any potential reachable from two points.
type PairPotential interface {
	Energy(p0, p1 geom.Point) float64
}

// TripletPotential is any potential reachable from three points.
type TripletPotential interface {
	Energy(p0, p1, p2 geom.Point) float64
}

// QuadrupletPotential is any potential reachable from four points.
type QuadrupletPotential interface {
	Energy(p0, p1, p2, p3 geom.Point) float64
}

// FullPairHandler sums pair energies between a particle and every other
// particle in the same timeslice.
type FullPairHandler struct {
	pot PairPotential
}

// NewFullPairHandler constructs a FullPairHandler over pot.
func NewFullPairHandler(pot PairPotential) *FullPairHandler {
	return &FullPairHandler{pot: pot}
}

// Energy implements Handler.
func (h *FullPairHandler) Energy(particle int, timeslice []geom.Point) float64 {
	p := timeslice[particle]
	var total float64
	for j, other := range timeslice {
		if j == particle {
			continue
		}
		total += h.pot.Energy(p, other)
	}
	return total
}

// FullTripletHandler sums triplet energies over every unordered pair of
// "other" particles (excluding the subject particle) in the timeslice.
type FullTripletHandler struct {
	pot TripletPotential
}

// NewFullTripletHandler constructs a FullTripletHandler over pot.
func NewFullTripletHandler(pot TripletPotential) *FullTripletHandler {
	return &FullTripletHandler{pot: pot}
}

// Energy implements Handler.
func (h *FullTripletHandler) Energy(particle int, timeslice []geom.Point) float64 {
	p := timeslice[particle]
	var total float64
	n := len(timeslice)
	for j := 0; j < n; j++ {
		if j == particle {
			continue
		}
		for k := j + 1; k < n; k++ {
			if k == particle {
				continue
			}
			total += h.pot.Energy(p, timeslice[j], timeslice[k])
		}
	}
	return total
}

// NearestNeighbourPair sums pair energies only over particles currently
// listed in the subject's adjacency matrix row.
type NearestNeighbourPair struct {
	pot PairPotential
	adj *adjacency.Matrix
}

// NewNearestNeighbourPair constructs a NearestNeighbourPair handler.
func NewNearestNeighbourPair(pot PairPotential, adj *adjacency.Matrix) *NearestNeighbourPair {
	return &NearestNeighbourPair{pot: pot, adj: adj}
}

// Energy implements Handler.
func (h *NearestNeighbourPair) Energy(particle int, timeslice []geom.Point) float64 {
	p := timeslice[particle]
	var total float64
	for _, j := range h.adj.Neighbours(particle) {
		total += h.pot.Energy(p, timeslice[j])
	}
	return total
}

// NearestNeighbourTriplet sums triplet energies over every unordered pair
// within the subject's adjacency matrix row.
type NearestNeighbourTriplet struct {
	pot TripletPotential
	adj *adjacency.Matrix
}

// NewNearestNeighbourTriplet constructs a NearestNeighbourTriplet handler.
func NewNearestNeighbourTriplet(pot TripletPotential, adj *adjacency.Matrix) *NearestNeighbourTriplet {
	return &NearestNeighbourTriplet{pot: pot, adj: adj}
}

// Energy implements Handler.
func (h *NearestNeighbourTriplet) Energy(particle int, timeslice []geom.Point) float64 {
	p := timeslice[particle]
	neighbours := h.adj.Neighbours(particle)
	var total float64
	for a := 0; a < len(neighbours); a++ {
		for b := a + 1; b < len(neighbours); b++ {
			total += h.pot.Energy(p, timeslice[neighbours[a]], timeslice[neighbours[b]])
		}
	}
	return total
}

// NearestNeighbourQuadruplet sums quadruplet energies over every unordered
// triple within the subject's adjacency matrix row.
type NearestNeighbourQuadruplet struct {
	pot QuadrupletPotential
	adj *adjacency.Matrix
}

// NewNearestNeighbourQuadruplet constructs a NearestNeighbourQuadruplet
// handler.
func NewNearestNeighbourQuadruplet(pot QuadrupletPotential, adj *adjacency.Matrix) *NearestNeighbourQuadruplet {
	return &NearestNeighbourQuadruplet{pot: pot, adj: adj}
}

// Energy implements Handler.
func (h *NearestNeighbourQuadruplet) Energy(particle int, timeslice []geom.Point) float64 {
	p := timeslice[particle]
	neighbours := h.adj.Neighbours(particle)
	var total float64
	for a := 0; a < len(neighbours); a++ {
		for b := a + 1; b < len(neighbours); b++ {
			for c := b + 1; c < len(neighbours); c++ {
				total += h.pot.Energy(p, timeslice[neighbours[a]], timeslice[neighbours[b]], timeslice[neighbours[c]])
			}
		}
	}
	return total
}
