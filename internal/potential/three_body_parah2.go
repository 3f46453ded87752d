package potential

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarat-asymmetrica/pimc/internal/constants"
	"github.com/sarat-asymmetrica/pimc/internal/grid"
)

// ThreeBodyParaH2 is the isotropic three-body potential energy surface for
// para-hydrogen published in J. Chem. Phys. 156, 044301 (2022), a
// trilinear-interpolated table over (R, s, cos(phi)) with an
// Axilrod-Teller-Muto long-range tail.
type ThreeBodyParaH2 struct {
	interpolator *grid.TrilinearInterpolator
	atm          *AxilrodTellerMuto
}

// NewThreeBodyParaH2 constructs the potential from a pre-built
// interpolator and ATM tail coefficient.
func NewThreeBodyParaH2(interpolator *grid.TrilinearInterpolator, c9Coefficient float64) (*ThreeBodyParaH2, error) {
	atm, err := NewAxilrodTellerMuto(c9Coefficient)
	if err != nil {
		return nil, err
	}
	return &ThreeBodyParaH2{interpolator: interpolator, atm: atm}, nil
}

// Energy evaluates the interpolated surface at (r, s, cosPhi), the
// published coordinate triple.
func (p *ThreeBodyParaH2) Energy(r, s, cosPhi float64) (float64, error) {
	return p.interpolator.At(r, s, cosPhi)
}

// LongRangeTailEnergy evaluates the Axilrod-Teller-Muto tail for a triplet
// of distances, for use beyond the interpolated table's range.
func (p *ThreeBodyParaH2) LongRangeTailEnergy(dist01, dist02, dist12 float64) float64 {
	return p.atm.Energy(dist01, dist02, dist12)
}

// LoadThreeBodyParaH2 reads the grid-shape/axis-limits header followed by a
// flattened row-major energy table. c9CoefficientOverride, if non-nil,
// replaces the published Hinde (2008) default.
func LoadThreeBodyParaH2(path string, c9CoefficientOverride *float64) (*ThreeBodyParaH2, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("potential: unable to open three-body data file %q: %w", path, err)
	}
	defer f.Close()

	g, rLimits, sLimits, uLimits, err := readThreeBodyGridFile(f)
	if err != nil {
		return nil, err
	}

	interpolator, err := grid.NewTrilinearInterpolator(g, rLimits, sLimits, uLimits)
	if err != nil {
		return nil, err
	}

	coefficient := constants.C9ATMCoefficientHinde2008
	if c9CoefficientOverride != nil {
		coefficient = *c9CoefficientOverride
	}

	return NewThreeBodyParaH2(interpolator, coefficient)
}

func readThreeBodyGridFile(r io.Reader) (*grid.Grid3D, grid.AxisLimits, grid.AxisLimits, grid.AxisLimits, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var tokens []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, fmt.Errorf("potential: failed reading three-body data file: %w", err)
	}

	if len(tokens) < 9 {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, fmt.Errorf("potential: three-body data file header is incomplete")
	}

	var rSize, sSize, uSize int
	if _, err := fmt.Sscanf(tokens[0], "%d", &rSize); err != nil {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, err
	}
	if _, err := fmt.Sscanf(tokens[1], "%d", &sSize); err != nil {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, err
	}
	if _, err := fmt.Sscanf(tokens[2], "%d", &uSize); err != nil {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, err
	}

	limits := make([]float64, 6)
	for i := 0; i < 6; i++ {
		if _, err := fmt.Sscanf(tokens[3+i], "%g", &limits[i]); err != nil {
			return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, err
		}
	}

	rLimits := grid.AxisLimits{Min: limits[0], Max: limits[1]}
	sLimits := grid.AxisLimits{Min: limits[2], Max: limits[3]}
	uLimits := grid.AxisLimits{Min: limits[4], Max: limits[5]}

	nElements := rSize * sSize * uSize
	energyTokens := tokens[9:]
	if len(energyTokens) != nElements {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, fmt.Errorf(
			"potential: three-body data file expected %d energies, found %d", nElements, len(energyTokens))
	}

	energies := make([]float64, nElements)
	for i, tok := range energyTokens {
		if _, err := fmt.Sscanf(tok, "%g", &energies[i]); err != nil {
			return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, fmt.Errorf("potential: malformed energy value %q: %w", tok, err)
		}
	}

	g, err := grid.NewGrid3D(energies, grid.Shape3D{N0: rSize, N1: sSize, N2: uSize})
	if err != nil {
		return nil, grid.AxisLimits{}, grid.AxisLimits{}, grid.AxisLimits{}, err
	}

	return g, rLimits, sLimits, uLimits, nil
}
