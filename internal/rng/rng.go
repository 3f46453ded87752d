// Package rng wraps math/rand/v2's PCG source with the runtime-parametrized
// distribution surface the move performers need, plus byte-stable state
// serialization for checkpoint/resume.
//
// PCG is the one PRNG in the ecosystem on hand that satisfies both halves
// of the contract at once: a uniform/normal/integer distribution API whose
// parameters are decided at runtime, and native
// encoding.BinaryMarshaler/BinaryUnmarshaler support for the state
// round-trip §8.12 requires. See DESIGN.md for why this is the one ambient
// concern deliberately left on the standard library.
package rng

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// PRNGWrapper owns a PCG-backed generator and exposes the distribution
// draws every move performer needs.
type PRNGWrapper struct {
	source *rand.PCG
	rnd    *rand.Rand
}

// NewFromSeed constructs a PRNGWrapper seeded deterministically from a
// single 64-bit seed.
func NewFromSeed(seed uint64) *PRNGWrapper {
	source := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	return &PRNGWrapper{source: source, rnd: rand.New(source)}
}

// Uniform01 draws from the uniform distribution over [0, 1).
func (p *PRNGWrapper) Uniform01() float64 {
	return p.rnd.Float64()
}

// UniformAB draws from the uniform distribution over [a, b) (or (b, a] if
// b < a, matching the reference's "works whether a > b or b > a" contract).
func (p *PRNGWrapper) UniformAB(a, b float64) float64 {
	return p.rnd.Float64()*(b-a) + a
}

// Normal01 draws from the standard normal distribution (mean 0, stddev 1).
func (p *PRNGWrapper) Normal01() float64 {
	return p.rnd.NormFloat64()
}

// Normal draws from a normal distribution with the given mean and standard
// deviation.
func (p *PRNGWrapper) Normal(mean, stddev float64) float64 {
	return p.rnd.NormFloat64()*stddev + mean
}

// UniformIntN draws a uniformly distributed integer in [0, n).
func (p *PRNGWrapper) UniformIntN(n int) int {
	return p.rnd.IntN(n)
}

// State is the serializable form of a PRNGWrapper: the PCG source's own
// binary state, captured via its native encoding.BinaryMarshaler.
type State struct {
	PCGState []byte `json:"pcg_state"`
}

// MarshalState captures the generator's current state.
func (p *PRNGWrapper) MarshalState() (State, error) {
	data, err := p.source.MarshalBinary()
	if err != nil {
		return State{}, fmt.Errorf("rng: failed to marshal PCG state: %w", err)
	}
	return State{PCGState: data}, nil
}

// RestoreState overwrites the generator's state from a previously captured
// State, after which the next draws are identical to an uninterrupted run
// that had reached the same point.
func (p *PRNGWrapper) RestoreState(s State) error {
	if err := p.source.UnmarshalBinary(s.PCGState); err != nil {
		return fmt.Errorf("rng: failed to unmarshal PCG state: %w", err)
	}
	p.rnd = rand.New(p.source)
	return nil
}

// EncodeStateJSON serializes a State to its on-disk JSON representation.
func EncodeStateJSON(s State) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeStateJSON parses a State from its on-disk JSON representation.
func DecodeStateJSON(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("rng: failed to decode PRNG state file: %w", err)
	}
	return s, nil
}
