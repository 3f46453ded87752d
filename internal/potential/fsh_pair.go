package potential

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarat-asymmetrica/pimc/internal/grid"
)

// FSHPair is the tabulated two-body para-hydrogen potential from J. Phys.
// Chem. A 199, 12551 (2015), taking the squared pair distance and returning
// an interaction energy, with an optional analytic C6/r^6 tail beyond the
// table's range.
type FSHPair struct {
	interpolator    *grid.RegularLinearInterpolator
	c6MultipoleCoef float64
	r2Max           float64
	longRangeTail   bool
}

// NewFSHPair constructs a tabulated potential from a list of energies
// uniformly spaced over [r2Min, r2Max]. When longRangeTail is true,
// distances beyond r2Max use the fitted C6/r^6 analytic form instead of
// failing.
func NewFSHPair(energies []float64, r2Min, r2Max float64, longRangeTail bool) (*FSHPair, error) {
	interp, err := grid.NewRegularLinearInterpolator(energies, r2Min, r2Max)
	if err != nil {
		return nil, err
	}

	c6 := calculateC6MultipoleCoeff(energies, r2Min, r2Max)

	return &FSHPair{interpolator: interp, c6MultipoleCoef: c6, r2Max: r2Max, longRangeTail: longRangeTail}, nil
}

// calculateC6MultipoleCoeff fits the C6 coefficient of the analytic tail
// from the last two table entries.
func calculateC6MultipoleCoeff(energies []float64, r2Min, r2Max float64) float64 {
	size := len(energies)
	r2Step := (r2Max - r2Min) / float64(size-1)

	energyStep := energies[size-1] - energies[size-2]

	r2Last := r2Max
	r2SecLast := r2Max - r2Step

	r2Term0 := r2SecLast * r2SecLast * r2SecLast
	r2Term1 := r2Last * r2Last * r2Last

	return energyStep / (1.0/r2Term0 - 1.0/r2Term1)
}

// Energy returns the interaction energy at squared distance r2.
func (f *FSHPair) Energy(r2 float64) (float64, error) {
	if f.longRangeTail && r2 >= f.r2Max {
		r2Cubed := r2 * r2 * r2
		return f.c6MultipoleCoef / r2Cubed, nil
	}
	return f.interpolator.At(r2)
}

// LoadFSHPair reads a two-column (r^2, energy) whitespace-delimited text
// file and constructs the tabulated potential.
func LoadFSHPair(path string, longRangeTail bool) (*FSHPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("potential: unable to open FSH pair data file %q: %w", path, err)
	}
	defer f.Close()

	r2s, energies, err := readTwoColumnFile(f)
	if err != nil {
		return nil, err
	}
	if len(r2s) < 2 {
		return nil, fmt.Errorf("potential: FSH pair data file %q must contain at least two rows", path)
	}
	for i := 1; i < len(r2s); i++ {
		if r2s[i] <= r2s[i-1] {
			return nil, fmt.Errorf("potential: FSH pair data file %q is not monotonically increasing in r^2 at row %d (%e <= %e)", path, i, r2s[i], r2s[i-1])
		}
	}

	return NewFSHPair(energies, r2s[0], r2s[len(r2s)-1], longRangeTail)
}

func readTwoColumnFile(r io.Reader) ([]float64, []float64, error) {
	scanner := bufio.NewScanner(r)

	var xs, ys []float64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("potential: malformed data line %q", line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("potential: malformed first column %q: %w", fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("potential: malformed second column %q: %w", fields[1], err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("potential: failed reading data file: %w", err)
	}

	return xs, ys, nil
}
