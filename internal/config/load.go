package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/sarat-asymmetrica/pimc/internal/constants"
	"github.com/sarat-asymmetrica/pimc/internal/lattice"
)

// Load decodes a Config from a TOML file at path and resolves its derived
// fields, aggregating every validation violation found.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Resolve validates every strictly-positive-required field, aggregating
// all violations (not just the first) into a single error, then computes
// the Derived substruct: box sides and initial particle positions from the
// lattice spec, and beta/tau/lambda from the physics spec.
func (c *Config) Resolve() error {
	var violations []error

	requirePositiveInt(&violations, "simulation.first_block_index", c.Simulation.FirstBlockIndex, true)
	requirePositiveInt(&violations, "simulation.n_equilibrium_blocks", c.Simulation.NEquilibriumBlocks, true)
	requirePositiveInt(&violations, "simulation.n_passes", c.Simulation.NPasses, false)
	requirePositiveInt(&violations, "simulation.n_timeslices", c.Simulation.NTimeslices, false)
	requirePositiveInt(&violations, "simulation.bisection_level", c.Simulation.BisectionLevel, false)
	requirePositiveInt(&violations, "simulation.writer_batch_size", c.Simulation.WriterBatchSize, false)
	requirePositiveInt(&violations, "simulation.n_save_worldlines_every", c.Simulation.NSaveWorldlinesEvery, false)
	if c.Simulation.LastBlockIndex <= c.Simulation.FirstBlockIndex {
		violations = append(violations, fmt.Errorf("simulation.last_block_index (%d) must exceed first_block_index (%d)", c.Simulation.LastBlockIndex, c.Simulation.FirstBlockIndex))
	}

	requirePositiveFloat(&violations, "physics.temperature", c.Physics.Temperature)
	requirePositiveFloat(&violations, "physics.density", c.Physics.Density)
	requirePositiveFloat(&violations, "physics.particle_mass_amu", c.Physics.ParticleMassAMU)

	requirePositiveFloat(&violations, "moves.centre_of_mass_step_size", c.Moves.CentreOfMassStepSize)
	if c.Moves.BisectionRatio < 0.0 || c.Moves.BisectionRatio >= 1.0 {
		violations = append(violations, fmt.Errorf("moves.bisection_ratio must be in [0,1), found %e", c.Moves.BisectionRatio))
	}

	requirePositiveFloat(&violations, "lattice.lattice_constant", c.Lattice.LatticeConstant)
	requirePositiveInt(&violations, "lattice.n_cells_dim0", c.Lattice.NCellsDim0, false)
	requirePositiveInt(&violations, "lattice.n_cells_dim1", c.Lattice.NCellsDim1, false)
	requirePositiveInt(&violations, "lattice.n_cells_dim2", c.Lattice.NCellsDim2, false)

	if len(violations) > 0 {
		return fmt.Errorf("config: %d validation violation(s): %w", len(violations), errors.Join(violations...))
	}

	spec := lattice.Spec{
		Structure:       lattice.Structure(c.Lattice.Structure),
		LatticeConstant: c.Lattice.LatticeConstant,
		CRatio:          c.Lattice.CRatio,
		ReplicasDim0:    c.Lattice.NCellsDim0,
		ReplicasDim1:    c.Lattice.NCellsDim1,
		ReplicasDim2:    c.Lattice.NCellsDim2,
	}
	basis, box, err := lattice.Generate(spec)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	massKg := c.Physics.ParticleMassAMU * constants.AMUToKg
	hbarSq := constants.HbarJouleSeconds * constants.HbarJouleSeconds
	// hbar^2/(2m) in SI is joule*metre^2; convert to wavenumber*angstrom^2,
	// the energy/length convention every potential in this engine uses.
	const metersToAngstromSquared = 1e20
	lambda := (hbarSq / (2.0 * massKg)) * constants.WavenumberPerJoule * metersToAngstromSquared

	temperatureEnergy := c.Physics.Temperature * constants.KelvinToWavenumber
	beta := 1.0 / temperatureEnergy
	tau := beta / float64(c.Simulation.NTimeslices)

	c.Derived = Derived{
		Box:          box,
		Beta:         beta,
		Tau:          tau,
		Lambda:       lambda,
		InitialBasis: basis,
		NParticles:   len(basis),
	}

	return nil
}

func requirePositiveInt(violations *[]error, field string, value int, allowZero bool) {
	if allowZero && value < 0 {
		*violations = append(*violations, fmt.Errorf("%s must be non-negative, found %d", field, value))
		return
	}
	if !allowZero && value < 1 {
		*violations = append(*violations, fmt.Errorf("%s must be positive, found %d", field, value))
	}
}

func requirePositiveFloat(violations *[]error, field string, value float64) {
	if value <= 0.0 {
		*violations = append(*violations, fmt.Errorf("%s must be positive, found %e", field, value))
	}
}
