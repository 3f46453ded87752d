// Package grid implements dense row-major numeric grids and the uniform 1D
// linear / 3D trilinear interpolators built on top of them.
package grid

import "fmt"

// Shape3D is the (n0, n1, n2) extent of a Grid3D.
type Shape3D struct {
	N0, N1, N2 int
}

// Grid3D is a dense row-major 3D array addressed as
// data[i0*n1*n2 + i1*n2 + i2].
type Grid3D struct {
	data  []float64
	shape Shape3D
}

// NewGrid3D constructs a Grid3D, requiring len(data) == n0*n1*n2.
func NewGrid3D(data []float64, shape Shape3D) (*Grid3D, error) {
	want := shape.N0 * shape.N1 * shape.N2
	if len(data) != want {
		return nil, fmt.Errorf("grid: data length %d does not match shape %+v (want %d)", len(data), shape, want)
	}
	return &Grid3D{data: data, shape: shape}, nil
}

// Shape returns the grid's extent.
func (g *Grid3D) Shape() Shape3D {
	return g.shape
}

// At returns the element at (i0, i1, i2).
func (g *Grid3D) At(i0, i1, i2 int) float64 {
	return g.data[i0*g.shape.N1*g.shape.N2+i1*g.shape.N2+i2]
}

// Grid2D is a dense row-major 2D array addressed as data[i0*n1+i1].
type Grid2D struct {
	data   []float64
	n0, n1 int
}

// NewGrid2D constructs a Grid2D, requiring len(data) == n0*n1.
func NewGrid2D(data []float64, n0, n1 int) (*Grid2D, error) {
	if len(data) != n0*n1 {
		return nil, fmt.Errorf("grid: data length %d does not match shape (%d,%d)", len(data), n0, n1)
	}
	return &Grid2D{data: data, n0: n0, n1: n1}, nil
}

// At returns the element at (i0, i1).
func (g *Grid2D) At(i0, i1 int) float64 {
	return g.data[i0*g.n1+i1]
}
