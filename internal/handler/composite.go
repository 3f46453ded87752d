package handler

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/adjacency"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// entry pairs one handler with the adjacency matrix (if any) it depends on
// and the cutoff that matrix should be refreshed with. Full* handlers carry
// a nil matrix and are skipped during refresh.
type entry struct {
	handler       Handler
	adj           *adjacency.Matrix
	cutoffSquared float64
}

// Composite sums several handlers' energies and owns the single refresh
// protocol that keeps every handler's adjacency matrix in sync at the
// start of each block: one refresh pass, driven by Composite, that every
// nearest-neighbour handler's matrix shares.
type Composite struct {
	entries []entry
}

// NewComposite constructs an empty Composite.
func NewComposite() *Composite {
	return &Composite{}
}

// AddHandler registers h with no adjacency dependency (e.g. a Full*
// handler, or one whose matrix is managed elsewhere).
func (c *Composite) AddHandler(h Handler) {
	c.entries = append(c.entries, entry{handler: h})
}

// AddNearestNeighbourHandler registers h alongside the adjacency matrix it
// reads from and the squared cutoff distance Composite should refresh that
// matrix with.
func (c *Composite) AddNearestNeighbourHandler(h Handler, adj *adjacency.Matrix, cutoffSquared float64) {
	c.entries = append(c.entries, entry{handler: h, adj: adj, cutoffSquared: cutoffSquared})
}

// Energy implements Handler by summing every registered handler's energy.
func (c *Composite) Energy(particle int, timeslice []geom.Point) float64 {
	var total float64
	for _, e := range c.entries {
		total += e.handler.Energy(particle, timeslice)
	}
	return total
}

// RefreshAdjacency rebuilds every registered handler's adjacency matrix
// from the current centroids, each with its own cutoff. This is the only
// globally synchronizing step inside a block, run at the start of each
// block (and before the first one).
func (c *Composite) RefreshAdjacency(source adjacency.CentroidSource, box geom.Box) {
	for _, e := range c.entries {
		if e.adj == nil {
			continue
		}
		adjacency.Refresh(e.adj, source, box, e.cutoffSquared)
	}
}

// AdjacencyMatrix returns the k-th registered handler's adjacency matrix,
// letting the driver inspect or separately manage a specific order's
// neighbour list. Returns an error if k is out of range or that handler has
// no adjacency dependency.
func (c *Composite) AdjacencyMatrix(k int) (*adjacency.Matrix, error) {
	if k < 0 || k >= len(c.entries) {
		return nil, fmt.Errorf("handler: adjacency matrix index %d out of range [0,%d)", k, len(c.entries))
	}
	if c.entries[k].adj == nil {
		return nil, fmt.Errorf("handler: registered handler %d has no adjacency matrix", k)
	}
	return c.entries[k].adj, nil
}
