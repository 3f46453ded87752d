// Package geom implements the fixed-dimension Cartesian geometry primitives
// the rest of the engine is built on: points, periodic boxes, and the
// minimum-image distance kernels that every potential and move performer
// depends on.
package geom

import "math"

// NDIM is the fixed spatial dimensionality the engine operates in: 3, the
// only value the simulation ever instantiates.
const NDIM = 3

// Point is a 3D Cartesian vector: a single bead position, a displacement, or
// a centroid.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y, -p.Z}
}

// At returns the i-th component of p (0=X, 1=Y, 2=Z).
func (p Point) At(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// SetAt returns a copy of p with its i-th component replaced by v.
func (p Point) SetAt(i int, v float64) Point {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// Dot returns the dot product of p and q.
func Dot(p, q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// NormSquared returns |p|^2.
func NormSquared(p Point) float64 {
	return Dot(p, p)
}

// Norm returns |p|.
func Norm(p Point) float64 {
	return math.Sqrt(NormSquared(p))
}

// DistanceSquared returns |p - q|^2.
func DistanceSquared(p, q Point) float64 {
	return NormSquared(p.Sub(q))
}

// Distance returns |p - q|.
func Distance(p, q Point) float64 {
	return math.Sqrt(DistanceSquared(p, q))
}
