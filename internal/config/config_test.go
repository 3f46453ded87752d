package config

import (
	"math"
	"testing"
)

func validConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			FirstBlockIndex:      0,
			LastBlockIndex:       100,
			NEquilibriumBlocks:   10,
			NPasses:              1,
			NTimeslices:          8,
			BisectionLevel:       2,
			WriterBatchSize:      50,
			NSaveWorldlinesEvery: 10,
		},
		Physics: PhysicsConfig{
			Temperature:     2.0,
			Density:         0.02,
			ParticleMassAMU: 2.0,
		},
		Moves: MovesConfig{
			CentreOfMassStepSize: 0.5,
			BisectionRatio:       0.5,
		},
		Lattice: LatticeConfig{
			Structure:       "fcc",
			LatticeConstant: 5.0,
			NCellsDim0:      2,
			NCellsDim1:      2,
			NCellsDim2:      2,
		},
	}
}

func TestResolveValidConfigComputesDerived(t *testing.T) {
	c := validConfig()
	if err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Derived.NParticles != 4*2*2*2 {
		t.Errorf("NParticles = %d, want %d", c.Derived.NParticles, 4*8)
	}
	if len(c.Derived.InitialBasis) != c.Derived.NParticles {
		t.Errorf("InitialBasis length = %d, want %d", len(c.Derived.InitialBasis), c.Derived.NParticles)
	}
	if c.Derived.Beta <= 0 {
		t.Errorf("Beta = %f, want positive", c.Derived.Beta)
	}
	wantTau := c.Derived.Beta / float64(c.Simulation.NTimeslices)
	if math.Abs(c.Derived.Tau-wantTau) > 1e-15 {
		t.Errorf("Tau = %e, want %e", c.Derived.Tau, wantTau)
	}
	if c.Derived.Lambda <= 0 {
		t.Errorf("Lambda = %f, want positive", c.Derived.Lambda)
	}
}

func TestResolveAggregatesMultipleViolations(t *testing.T) {
	c := validConfig()
	c.Physics.Temperature = -1
	c.Physics.Density = 0
	c.Lattice.LatticeConstant = 0

	err := c.Resolve()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"temperature", "density", "lattice_constant"} {
		if !containsSubstring(msg, want) {
			t.Errorf("error message %q missing reference to %q", msg, want)
		}
	}
}

func TestResolveRejectsLastBlockNotExceedingFirst(t *testing.T) {
	c := validConfig()
	c.Simulation.LastBlockIndex = c.Simulation.FirstBlockIndex
	if err := c.Resolve(); err == nil {
		t.Error("expected error when last_block_index does not exceed first_block_index")
	}
}

func TestResolveRejectsBisectionRatioOutOfRange(t *testing.T) {
	c := validConfig()
	c.Moves.BisectionRatio = 1.0
	if err := c.Resolve(); err == nil {
		t.Error("expected error for bisection_ratio == 1.0")
	}
	c2 := validConfig()
	c2.Moves.BisectionRatio = -0.1
	if err := c2.Resolve(); err == nil {
		t.Error("expected error for negative bisection_ratio")
	}
}

func TestResolvePropagatesLatticeError(t *testing.T) {
	c := validConfig()
	c.Lattice.Structure = "bcc"
	if err := c.Resolve(); err == nil {
		t.Error("expected error for unsupported lattice structure")
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
