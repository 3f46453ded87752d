package geom

import "math"

// cartesianTranslation implements the Attard (1992) box-relative
// translation used to build unambiguous multi-point separation
// coordinates. math.Round's round-half-away-from-zero behaviour matches
// the folding convention periodicFold uses in box.go.
func cartesianTranslation(xi, xj, boxSide float64) float64 {
	unroundedShift := (xi - xj) / boxSide
	return boxSide * math.Round(unroundedShift)
}

// ThreeBodySeparation holds the three pairwise side coordinates of a
// triplet along a single axis.
type ThreeBodySeparation struct {
	Coord01, Coord02, Coord12 float64
}

func threeBodySeparationCoordinates(x0, x1, x2, boxSide float64) ThreeBodySeparation {
	trans01 := cartesianTranslation(x0, x1, boxSide)
	trans02 := cartesianTranslation(x0, x2, boxSide)

	x01 := x0 - x1 - trans01
	x02 := x0 - x2 - trans02
	// x12 must be built from the other two translations rather than its own
	// direct cartesianTranslation call: doing the latter reintroduces
	// ambiguous triangles.
	x12 := x1 - x2 + trans01 - trans02

	return ThreeBodySeparation{Coord01: x01, Coord02: x02, Coord12: x12}
}

// ThreeBodySeparationPoints returns the three periodic separation vectors
// (p0-p1, p0-p2, p1-p2) for a triplet, built with the Attard convention so
// that the resulting side lengths never form an ambiguous triangle.
func ThreeBodySeparationPoints(points [3]Point, box Box) [3]Point {
	var sep01, sep02, sep12 Point
	for dim := 0; dim < NDIM; dim++ {
		c := threeBodySeparationCoordinates(points[0].At(dim), points[1].At(dim), points[2].At(dim), box.At(dim))
		sep01 = sep01.SetAt(dim, c.Coord01)
		sep02 = sep02.SetAt(dim, c.Coord02)
		sep12 = sep12.SetAt(dim, c.Coord12)
	}
	return [3]Point{sep01, sep02, sep12}
}

// ThreeBodySideLengths returns the three Attard side lengths (|p0-p1|,
// |p0-p2|, |p1-p2|) for a triplet under periodic boundary conditions.
func ThreeBodySideLengths(points [3]Point, box Box) [3]float64 {
	sep := ThreeBodySeparationPoints(points, box)
	return [3]float64{Norm(sep[0]), Norm(sep[1]), Norm(sep[2])}
}

// FourBodySeparationPoints generalizes the Attard convention to four points,
// producing the six periodic separation vectors of a quadruplet (tetrahedron
// edges), all referenced consistently off particle 0 the same way the
// three-body case references off particle 0. Edge order: 01,02,03,12,13,23.
func FourBodySeparationPoints(points [4]Point, box Box) [6]Point {
	var out [6]Point
	for dim := 0; dim < NDIM; dim++ {
		x0 := points[0].At(dim)
		x1 := points[1].At(dim)
		x2 := points[2].At(dim)
		x3 := points[3].At(dim)

		t01 := cartesianTranslation(x0, x1, box.At(dim))
		t02 := cartesianTranslation(x0, x2, box.At(dim))
		t03 := cartesianTranslation(x0, x3, box.At(dim))

		c01 := x0 - x1 - t01
		c02 := x0 - x2 - t02
		c03 := x0 - x3 - t03
		c12 := x1 - x2 + t01 - t02
		c13 := x1 - x3 + t01 - t03
		c23 := x2 - x3 + t02 - t03

		out[0] = out[0].SetAt(dim, c01)
		out[1] = out[1].SetAt(dim, c02)
		out[2] = out[2].SetAt(dim, c03)
		out[3] = out[3].SetAt(dim, c12)
		out[4] = out[4].SetAt(dim, c13)
		out[5] = out[5].SetAt(dim, c23)
	}
	return out
}

// FourBodySideLengths returns the six Attard side lengths of a quadruplet,
// in the order 01,02,03,12,13,23.
func FourBodySideLengths(points [4]Point, box Box) [6]float64 {
	sep := FourBodySeparationPoints(points, box)
	var lengths [6]float64
	for i, s := range sep {
		lengths[i] = Norm(s)
	}
	return lengths
}
