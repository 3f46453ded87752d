// Package lattice implements a minimal Bravais-lattice generator producing
// the initial bead positions a simulation starts from: the classical
// zero-temperature configuration every particle's worldline is seeded at
// before the first block.
//
// This is a deliberately minimal subset of a fuller unit-cell/space-group
// library: only the two conventional cells the para-hydrogen solid
// literature actually uses, FCC and HCP, replicated along three axes.
// General non-Bravais cells and arbitrary space groups are out of scope.
package lattice

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
)

// Structure selects which conventional unit cell basis to replicate.
type Structure string

const (
	// FCC is the face-centred-cubic conventional cell (4-point basis).
	FCC Structure = "fcc"
	// HCP is the hexagonal-close-packed cell (2-point basis, c/a ratio).
	HCP Structure = "hcp"
)

// fccBasis returns the four fractional-coordinate basis points of the
// conventional FCC cell.
func fccBasis() [4]geom.Point {
	return [4]geom.Point{
		{X: 0.0, Y: 0.0, Z: 0.0},
		{X: 0.5, Y: 0.5, Z: 0.0},
		{X: 0.5, Y: 0.0, Z: 0.5},
		{X: 0.0, Y: 0.5, Z: 0.5},
	}
}

// hcpBasis returns the two fractional-coordinate basis points of the
// conventional HCP cell.
func hcpBasis() [2]geom.Point {
	return [2]geom.Point{
		{X: 0.0, Y: 0.0, Z: 0.0},
		{X: 2.0 / 3.0, Y: 1.0 / 3.0, Z: 0.5},
	}
}

// Spec describes the lattice a simulation should be seeded from.
type Spec struct {
	Structure       Structure
	LatticeConstant float64
	CRatio          float64 // only used for HCP; ratio of the c axis to a
	ReplicasDim0    int
	ReplicasDim1    int
	ReplicasDim2    int
}

// Generate replicates spec's basis across its replica counts and returns
// the flat list of particle positions plus the periodic box they sit in.
func Generate(spec Spec) ([]geom.Point, geom.Box, error) {
	if spec.LatticeConstant <= 0.0 {
		return nil, geom.Box{}, fmt.Errorf("lattice: lattice constant must be positive, found %e", spec.LatticeConstant)
	}
	if spec.ReplicasDim0 < 1 || spec.ReplicasDim1 < 1 || spec.ReplicasDim2 < 1 {
		return nil, geom.Box{}, fmt.Errorf("lattice: replica counts must be positive, found (%d, %d, %d)", spec.ReplicasDim0, spec.ReplicasDim1, spec.ReplicasDim2)
	}

	a := spec.LatticeConstant
	cAxis := a
	var basis []geom.Point

	switch spec.Structure {
	case FCC:
		b := fccBasis()
		basis = b[:]
	case HCP:
		if spec.CRatio <= 0.0 {
			return nil, geom.Box{}, fmt.Errorf("lattice: c/a ratio must be positive for hcp, found %e", spec.CRatio)
		}
		cAxis = a * spec.CRatio
		b := hcpBasis()
		basis = b[:]
	default:
		return nil, geom.Box{}, fmt.Errorf("lattice: unsupported structure %q", spec.Structure)
	}

	var points []geom.Point
	for i := 0; i < spec.ReplicasDim0; i++ {
		for j := 0; j < spec.ReplicasDim1; j++ {
			for k := 0; k < spec.ReplicasDim2; k++ {
				for _, b := range basis {
					points = append(points, geom.Point{
						X: (b.X + float64(i)) * a,
						Y: (b.Y + float64(j)) * a,
						Z: b.Z*cAxis + float64(k)*cAxis,
					})
				}
			}
		}
	}

	box, err := geom.NewBox(a*float64(spec.ReplicasDim0), a*float64(spec.ReplicasDim1), cAxis*float64(spec.ReplicasDim2))
	if err != nil {
		return nil, geom.Box{}, fmt.Errorf("lattice: %w", err)
	}

	return points, box, nil
}
