package potential

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/constants"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// FourBodyDispersion is the analytic four-body dispersion potential for a
// tetrahedron of points: it sums three contributions, one per way of
// splitting the tetrahedron's six edges into a 4-cycle through all four
// points plus a pair of opposite diagonal edges left out of that cycle,
// each rescaled by the cycle's own edge-length product cubed.
type FourBodyDispersion struct {
	coefficient float64
}

// NewFourBodyDispersion constructs the potential, rejecting a negative
// coefficient.
func NewFourBodyDispersion(coefficient float64) (*FourBodyDispersion, error) {
	if coefficient < 0.0 {
		return nil, fmt.Errorf("potential: four-body dispersion coefficient must be positive, found %e", coefficient)
	}
	return &FourBodyDispersion{coefficient: coefficient}, nil
}

// directedVector holds a separation's magnitude and unit direction.
type directedVector struct {
	length float64
	unit   geom.Point
}

func newDirectedVector(p geom.Point) (directedVector, error) {
	length := geom.Norm(p)
	if length < constants.EpsilonCartesianZeroDivide {
		return directedVector{}, fmt.Errorf("potential: four-body dispersion encountered a near-zero separation")
	}
	return directedVector{length: length, unit: p.Scale(1.0 / length)}, nil
}

// Energy evaluates the dispersion energy for the tetrahedron formed by the
// four Attard-convention separation vectors between p0..p3 (see
// geom.FourBodySeparationPoints). sep must be ordered 01,02,03,12,13,23.
func (d *FourBodyDispersion) Energy(sep [6]geom.Point) (float64, error) {
	dv := make([]directedVector, 6)
	for i, s := range sep {
		v, err := newDirectedVector(s)
		if err != nil {
			return 0, err
		}
		dv[i] = v
	}

	// edge indices: 0=01 1=02 2=03 3=12 4=13 5=23
	d01, d02, d03, d12, d13, d23 := dv[0], dv[1], dv[2], dv[3], dv[4], dv[5]

	// Each term walks a 4-cycle through all four points, leaving out the
	// opposite pair of diagonal edges: term1 leaves out (02,13), term2
	// leaves out (03,12), term3 leaves out (01,23). The signed unit vectors
	// below trace each cycle as a closed path consistent with the shared
	// 0<i<j edge convention the separations were built from.
	term1 := quadrupletContribution(
		d01.unit.Neg(), d12.unit.Neg(), d23.unit.Neg(), d03.unit,
		d01.length, d12.length, d23.length, d03.length,
	)
	term2 := quadrupletContribution(
		d01.unit.Neg(), d13.unit.Neg(), d23.unit, d02.unit,
		d01.length, d13.length, d23.length, d02.length,
	)
	term3 := quadrupletContribution(
		d02.unit.Neg(), d12.unit, d13.unit.Neg(), d03.unit,
		d02.length, d12.length, d13.length, d03.length,
	)

	return -d.coefficient * (term1 + term2 + term3), nil
}

// quadrupletContribution evaluates one cycle's contribution: given its four
// consecutive edge directions v1..v4 and magnitudes m1..m4, it forms the six
// pairwise dot products among them and combines the sum of their squares,
// the sum of the four leave-one-out triple products, and the single product
// around the full cycle, scaled by the cycle's own edge-length product
// cubed.
func quadrupletContribution(v1, v2, v3, v4 geom.Point, m1, m2, m3, m4 float64) float64 {
	d12 := geom.Dot(v1, v2)
	d13 := geom.Dot(v1, v3)
	d14 := geom.Dot(v1, v4)
	d23 := geom.Dot(v2, v3)
	d24 := geom.Dot(v2, v4)
	d34 := geom.Dot(v3, v4)

	sumSquares := d12*d12 + d13*d13 + d14*d14 + d23*d23 + d24*d24 + d34*d34
	sumTriples := d12*d23*d13 + d12*d24*d14 + d13*d34*d14 + d23*d34*d24
	cycleProduct := d12 * d23 * d34 * d14

	numerator := 2.0 * (-1.0 + sumSquares - 3.0*sumTriples + 9.0*cycleProduct)

	prodMags := m1 * m2 * m3 * m4
	return numerator / (prodMags * prodMags * prodMags)
}
