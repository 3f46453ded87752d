// Package config implements TOML-backed configuration loading for both the
// main simulation driver and the worldline-evaluation tool, following the
// nested-struct-plus-derived-fields pattern: substructs decode directly
// from TOML tags, and a Derived substruct is computed once by Resolve
// after decode, aggregating every validation violation it finds rather
// than failing on the first.
package config

import "github.com/sarat-asymmetrica/pimc/internal/geom"

// SimulationConfig controls the block/pass loop.
type SimulationConfig struct {
	FirstBlockIndex      int `toml:"first_block_index"`
	LastBlockIndex       int `toml:"last_block_index"`
	NEquilibriumBlocks   int `toml:"n_equilibrium_blocks"`
	NPasses              int `toml:"n_passes"`
	NTimeslices          int `toml:"n_timeslices"`
	BisectionLevel       int `toml:"bisection_level"`
	WriterBatchSize      int `toml:"writer_batch_size"`
	NSaveWorldlinesEvery int `toml:"n_save_worldlines_every"`
}

// PhysicsConfig controls the thermodynamic and material parameters.
type PhysicsConfig struct {
	Temperature     float64 `toml:"temperature"`
	Density         float64 `toml:"density"`
	ParticleMassAMU float64 `toml:"particle_mass_amu"`
}

// MovesConfig controls move-performer step sizes and their adjusters.
type MovesConfig struct {
	CentreOfMassStepSize     float64 `toml:"centre_of_mass_step_size"`
	BisectionRatio           float64 `toml:"bisection_ratio"`
	AcceptPercentageLow      float64 `toml:"accept_percentage_low"`
	AcceptPercentageHigh     float64 `toml:"accept_percentage_high"`
	AdjustmentDelta          float64 `toml:"adjustment_delta"`
	FreezeStepSizeAdjustment bool    `toml:"freeze_step_size_adjustment"`
}

// IOConfig controls input/output paths.
type IOConfig struct {
	OutputDirpath          string `toml:"output_dirpath"`
	WorldlinesDirpath      string `toml:"worldlines_dirpath"`
	CheckpointFilepath     string `toml:"checkpoint_filepath"`
	PRNGStateFilepath      string `toml:"prng_state_filepath"`
	TwoBodyFilepath        string `toml:"two_body_filepath"`
	ThreeBodyFilepath      string `toml:"three_body_filepath"`
	RescalingModelFilepath string `toml:"rescaling_model_filepath"`
	RadialDistFilepath     string `toml:"radial_distribution_filepath"`
	CentroidRDFFilepath    string `toml:"centroid_radial_distribution_filepath"`
	Seed                   uint64 `toml:"seed"`
}

// FourBodyCutoffsConfig mirrors fourbody.Cutoffs for TOML decoding.
type FourBodyCutoffsConfig struct {
	LowerShort           float64 `toml:"lower_short"`
	UpperShort           float64 `toml:"upper_short"`
	LowerMixed           float64 `toml:"lower_mixed"`
	UpperMixed           float64 `toml:"upper_mixed"`
	ReciprocalMultiplier float64 `toml:"reciprocal_multiplier"`
	SlopeMin             float64 `toml:"slope_min"`
	SlopeMax             float64 `toml:"slope_max"`
	AnchorEpsilon        float64 `toml:"anchor_epsilon"`
}

// FourBodyEnvelopeConfig mirrors fourbody.DispersionEnvelope.
type FourBodyEnvelopeConfig struct {
	A     float64 `toml:"a"`
	Alpha float64 `toml:"alpha"`
	C     float64 `toml:"c"`
}

// FourBodyDerescaleConfig mirrors fourbody.DerescaleParams.
type FourBodyDerescaleConfig struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
}

// FourBodyConfig controls whether the extrapolated four-body potential is
// evaluated, and every parameter its pipeline needs.
type FourBodyConfig struct {
	Enabled               bool                    `toml:"enabled"`
	DispersionCoefficient float64                 `toml:"dispersion_coefficient"`
	LinearModelWeights    [6]float64              `toml:"linear_model_weights"`
	LinearModelBias       float64                 `toml:"linear_model_bias"`
	Cutoffs               FourBodyCutoffsConfig   `toml:"cutoffs"`
	Envelope              FourBodyEnvelopeConfig  `toml:"envelope"`
	Derescale             FourBodyDerescaleConfig `toml:"derescale"`
}

// ThreeBodyConfig controls the short/long-range blend boundary of the
// triplet potential, and an optional override of the published ATM
// coefficient.
type ThreeBodyConfig struct {
	LowerShort        float64 `toml:"lower_short"`
	UpperShort        float64 `toml:"upper_short"`
	C9Override        float64 `toml:"c9_override"`
	UseC9Override     bool    `toml:"use_c9_override"`
}

// TwoBodyConfig controls the tabulated pair potential's analytic tail.
type TwoBodyConfig struct {
	LongRangeTail bool `toml:"long_range_tail"`
}

// PotentialsConfig bundles every interaction order's tunable parameters.
type PotentialsConfig struct {
	TwoBody   TwoBodyConfig   `toml:"two_body"`
	ThreeBody ThreeBodyConfig `toml:"three_body"`
	FourBody  FourBodyConfig  `toml:"four_body"`
}

// LatticeConfig controls the initial worldline seeding.
type LatticeConfig struct {
	Structure       string `toml:"structure"`
	LatticeConstant float64 `toml:"lattice_constant"`
	CRatio          float64 `toml:"c_ratio"`
	NCellsDim0      int    `toml:"n_cells_dim0"`
	NCellsDim1      int    `toml:"n_cells_dim1"`
	NCellsDim2      int    `toml:"n_cells_dim2"`
}

// Derived holds the quantities computed from the decoded config once, by
// Resolve, rather than re-derived at every use site.
type Derived struct {
	Box          geom.Box
	Beta         float64
	Tau          float64
	Lambda       float64
	InitialBasis []geom.Point
	NParticles   int
}

// Config is the root simulation configuration tree.
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Physics    PhysicsConfig    `toml:"physics"`
	Moves      MovesConfig      `toml:"moves"`
	IO         IOConfig         `toml:"io"`
	Lattice    LatticeConfig    `toml:"lattice"`
	Potentials PotentialsConfig `toml:"potentials"`

	Derived Derived `toml:"-"`
}
