package fourbody

import "github.com/sarat-asymmetrica/pimc/internal/geom"

// DefaultBufferCapacity is the number of quadruplet samples accumulated
// before BufferedExtrapolatedPotential automatically flushes through the
// pipeline. Batching amortizes the regression model's per-call overhead
// across many quadruplets evaluated within the same Monte Carlo move.
const DefaultBufferCapacity = 1024

type pendingSample struct {
	sides [6]float64
	sep   [6]geom.Point
}

// BufferedExtrapolatedPotential accumulates quadruplet samples and defers
// their evaluation until the buffer fills or the caller explicitly extracts
// the accumulated energy, batching the expensive regression-model inference
// per §4.E's final paragraph.
type BufferedExtrapolatedPotential struct {
	pipeline *Pipeline
	capacity int
	pending  []pendingSample
	energy   float64
}

// NewBufferedExtrapolatedPotential constructs an accumulator over the given
// pipeline with DefaultBufferCapacity. Use WithCapacity to override it.
func NewBufferedExtrapolatedPotential(pipeline *Pipeline) *BufferedExtrapolatedPotential {
	return &BufferedExtrapolatedPotential{
		pipeline: pipeline,
		capacity: DefaultBufferCapacity,
	}
}

// WithCapacity overrides the default flush threshold; it must be called
// before any samples are added.
func (b *BufferedExtrapolatedPotential) WithCapacity(capacity int) *BufferedExtrapolatedPotential {
	if capacity > 0 {
		b.capacity = capacity
	}
	return b
}

// AddSample queues one quadruplet's six pairwise side lengths (already
// Attard-separation-coordinate folded) and its six periodic separation
// vectors (needed only to evaluate the analytic dispersion tail). Flushes
// automatically once the buffer reaches capacity.
func (b *BufferedExtrapolatedPotential) AddSample(sides [6]float64, sep [6]geom.Point) error {
	b.pending = append(b.pending, pendingSample{sides: sides, sep: sep})
	if len(b.pending) >= b.capacity {
		return b.flush()
	}
	return nil
}

// ExtractEnergy flushes any remaining buffered samples through the
// pipeline, returns the total accumulated energy, and resets the
// accumulator so it can be reused for the next block.
func (b *BufferedExtrapolatedPotential) ExtractEnergy() (float64, error) {
	if err := b.flush(); err != nil {
		return 0, err
	}
	total := b.energy
	b.energy = 0
	return total, nil
}

// Pending reports how many samples are currently buffered and unflushed.
func (b *BufferedExtrapolatedPotential) Pending() int {
	return len(b.pending)
}

func (b *BufferedExtrapolatedPotential) flush() error {
	if len(b.pending) == 0 {
		return nil
	}

	samples := make([][6]float64, len(b.pending))
	dispersionEnergies := make([]float64, len(b.pending))
	for i, p := range b.pending {
		samples[i] = p.sides
		e, err := EvaluateDispersion(b.pipeline.dispersion, p.sep)
		if err != nil {
			return err
		}
		dispersionEnergies[i] = e
	}

	energies, err := b.pipeline.EvaluateBatch(samples, dispersionEnergies)
	if err != nil {
		return err
	}
	for _, e := range energies {
		b.energy += e
	}

	b.pending = b.pending[:0]
	return nil
}
