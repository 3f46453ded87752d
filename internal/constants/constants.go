// Package constants holds physical constants and published potential
// parameters used throughout the simulation.
//
// PHYSICIST: values carried in wavenumber/angstrom units unless noted,
// matching the convention used by the published para-hydrogen literature.
package constants

const (
	// HbarJouleSeconds is Planck's constant divided by 2*pi, in joule-seconds.
	HbarJouleSeconds = 1.054571817e-34

	// BoltzmannJoulePerKelvin is the Boltzmann constant in joules per kelvin.
	BoltzmannJoulePerKelvin = 1.380649e-23

	// WavenumberPerJoule converts joules to wavenumbers (cm^-1).
	WavenumberPerJoule = 5.03411656e22

	// KelvinToWavenumber converts a temperature in kelvin to an energy in
	// wavenumbers via k_B.
	KelvinToWavenumber = BoltzmannJoulePerKelvin * WavenumberPerJoule

	// ParaHydrogenMassAMU is the mass of a para-hydrogen molecule in atomic
	// mass units.
	ParaHydrogenMassAMU = 2.01588

	// AMUToKg converts atomic mass units to kilograms.
	AMUToKg = 1.66053906660e-27
)

// Published Lennard-Jones parameters for para-hydrogen, from paragraph 3 of
// page 354 of Eur. Phys. J. D 56, 353-358 (2010) (Warnecke et al.), converted
// from kelvin/angstrom to wavenumber/angstrom.
const (
	LennardJonesWarnecke2010WellDepth    = 23.77
	LennardJonesWarnecke2010ParticleSize = 2.96
)

// C9ATMCoefficientHinde2008 is the published Axilrod-Teller-Muto dispersion
// coefficient for para-hydrogen trimers, used as the default when a data
// file does not supply its own value, from Hinde (2008).
const C9ATMCoefficientHinde2008 = 34336.0

// EpsilonCartesianZeroDivide guards divisions by near-zero vector norms in
// dispersion potentials.
const EpsilonCartesianZeroDivide = 1.0e-8

// EpsilonBoxSeparation is the tolerance used when comparing two box side
// vectors for approximate equality.
const EpsilonBoxSeparation = 1.0e-8
