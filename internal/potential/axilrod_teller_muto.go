package potential

import "fmt"

// AxilrodTellerMuto is the textbook three-body dispersion potential using
// the 1 + 3*cos(theta1)*cos(theta2)*cos(theta3) angular form.
type AxilrodTellerMuto struct {
	c9Coefficient float64
}

// NewAxilrodTellerMuto constructs the potential, rejecting a negative C9
// coefficient.
func NewAxilrodTellerMuto(c9Coefficient float64) (*AxilrodTellerMuto, error) {
	if c9Coefficient < 0.0 {
		return nil, fmt.Errorf("potential: Axilrod-Teller-Muto c9 coefficient must be positive, found %e", c9Coefficient)
	}
	return &AxilrodTellerMuto{c9Coefficient: c9Coefficient}, nil
}

// Energy returns the three-body interaction energy for the triangle with
// side lengths dist01, dist02, dist12.
func (atm *AxilrodTellerMuto) Energy(dist01, dist02, dist12 float64) float64 {
	dist01Sq := dist01 * dist01
	dist02Sq := dist02 * dist02
	dist12Sq := dist12 * dist12

	cos1Numer := dist01Sq + dist02Sq - dist12Sq
	cos2Numer := dist01Sq + dist12Sq - dist02Sq
	cos3Numer := dist02Sq + dist12Sq - dist01Sq

	cosDenom := 8.0 * dist01Sq * dist12Sq * dist02Sq
	fterm := 3.0 * cos1Numer * cos2Numer * cos3Numer / cosDenom

	denom := dist01Sq * dist02Sq * dist12Sq * dist01 * dist02 * dist12

	return atm.c9Coefficient * (1.0 + fterm) / denom
}
