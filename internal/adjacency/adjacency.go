// Package adjacency implements the per-particle neighbour-list cache used
// to accelerate nearest-neighbour interaction handlers.
package adjacency

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// Matrix is a fixed-capacity N x N neighbour index grid plus an N-entry
// length vector: row i's first Lengths[i] entries of Indices[i] are the
// particle indices currently considered neighbours of i.
type Matrix struct {
	n       int
	indices [][]int
	lengths []int
}

// New constructs an empty Matrix for n particles.
func New(n int) (*Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("adjacency: n must be positive, found %d", n)
	}

	indices := make([][]int, n)
	for i := range indices {
		indices[i] = make([]int, n)
	}

	return &Matrix{n: n, indices: indices, lengths: make([]int, n)}, nil
}

// ClearAll empties every row.
func (m *Matrix) ClearAll() {
	for i := range m.lengths {
		m.lengths[i] = 0
	}
}

// Clear empties row i.
func (m *Matrix) Clear(i int) {
	m.lengths[i] = 0
}

// AddSymmetric records j as a neighbour of i and i as a neighbour of j.
func (m *Matrix) AddSymmetric(i, j int) {
	m.indices[i][m.lengths[i]] = j
	m.lengths[i]++
	m.indices[j][m.lengths[j]] = i
	m.lengths[j]++
}

// Neighbours returns the current neighbour list of particle i. The returned
// slice aliases internal storage and is only valid until the next refresh.
func (m *Matrix) Neighbours(i int) []int {
	return m.indices[i][:m.lengths[i]]
}

// N returns the particle count the matrix was constructed for.
func (m *Matrix) N() int {
	return m.n
}

// CentroidSource is the minimal worldline contract the refresh routine
// needs: a centroid accessor and a particle count.
type CentroidSource interface {
	NParticles() int
	Centroid(i int) geom.Point
}

// Refresh rebuilds m from scratch using the periodic squared distance
// between every pair of particle centroids, connecting i and j whenever
// that distance is within cutoffSquared. This is the one globally
// synchronizing step the driver performs once per block (per interaction
// order, each with its own cutoff).
func Refresh(m *Matrix, source CentroidSource, box geom.Box, cutoffSquared float64) {
	m.ClearAll()

	n := source.NParticles()
	centroids := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		centroids[i] = source.Centroid(i)
	}

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if geom.DistanceSquaredPeriodic(centroids[i], centroids[j], box) <= cutoffSquared {
				m.AddSymmetric(i, j)
			}
		}
	}
}
