package fourbody

import (
	"fmt"

	"github.com/sarat-asymmetrica/pimc/internal/potential"
)

// Pipeline ties together classification, the permutation/reciprocal
// transform, the rescaling model, short-range extrapolation, and
// long-range mixing into the per-sample extrapolated four-body energy.
type Pipeline struct {
	cutoffs   Cutoffs
	envelope  DispersionEnvelope
	derescale DerescaleParams
	model     RescalingModel
	dispersion *potential.FourBodyDispersion
}

// NewPipeline constructs a Pipeline from its tuned constants and
// collaborators.
func NewPipeline(cutoffs Cutoffs, envelope DispersionEnvelope, derescale DerescaleParams, model RescalingModel, dispersion *potential.FourBodyDispersion) *Pipeline {
	return &Pipeline{cutoffs: cutoffs, envelope: envelope, derescale: derescale, model: model, dispersion: dispersion}
}

// sampleRow describes the batch rows owed to one input sample, and how to
// reduce the model's outputs for those rows back into a single energy.
type sampleRow struct {
	sample   int
	rowStart int
	rowCount int
	rng      Range
	avg      float64
	minSide  float64
	anchors  ShortRangeAnchors
}

// EvaluateBatch runs the full pipeline over a batch of six-tuples of
// pairwise side lengths and the matching precomputed dispersion energies
// (used only for MIXED_*/LONG samples), returning one energy per sample.
func (p *Pipeline) EvaluateBatch(samples [][6]float64, dispersionEnergies []float64) ([]float64, error) {
	if len(samples) != len(dispersionEnergies) {
		return nil, fmt.Errorf("fourbody: samples and dispersionEnergies must be the same length (%d vs %d)", len(samples), len(dispersionEnergies))
	}

	var batch [][6]float64
	rows := make([]sampleRow, len(samples))

	for i, sides := range samples {
		rng := Classify(sides, p.cutoffs)
		avg := average(sides)
		minSide := MinSide(sides)

		row := sampleRow{sample: i, rng: rng, avg: avg, minSide: minSide, rowStart: len(batch)}

		switch BatchRowsRequired(rng) {
		case 0:
			// LONG: analytic only, no model rows
		case 1:
			batch = append(batch, transformRow(sides, p.cutoffs))
			row.rowCount = 1
		case 2:
			shortRows, anchors := BuildShortRangeRows(sides, minSide, p.cutoffs)
			batch = append(batch, transformRow(shortRows[0], p.cutoffs), transformRow(shortRows[1], p.cutoffs))
			row.anchors = anchors
			row.rowCount = 2
		case 3:
			shortRows, anchors := BuildShortRangeRows(sides, minSide, p.cutoffs)
			batch = append(batch, transformRow(shortRows[0], p.cutoffs), transformRow(shortRows[1], p.cutoffs), transformRow(sides, p.cutoffs))
			row.anchors = anchors
			row.rowCount = 3
		}

		rows[i] = row
	}

	var inferred []float64
	if len(batch) > 0 {
		if err := checkBatchShape(batch); err != nil {
			return nil, err
		}
		raw, err := p.model.Infer(batch)
		if err != nil {
			return nil, fmt.Errorf("fourbody: rescaling model inference failed: %w", err)
		}
		inferred = make([]float64, len(raw))
		for i, y := range raw {
			inferred[i] = Derescale(y, p.derescale, p.envelope, rows[sampleOwning(rows, i)].avg)
		}
	}

	out := make([]float64, len(samples))
	for _, row := range rows {
		abInitio := p.reduceRow(row, inferred)
		out[row.sample] = MixLongRange(row.rng, dispersionEnergies[row.sample], abInitio, row.avg, p.cutoffs)
	}

	return out, nil
}

// sampleOwning finds which sample a flattened batch row index belongs to,
// by scanning the row ranges recorded during batch construction.
func sampleOwning(rows []sampleRow, flatIndex int) int {
	for _, r := range rows {
		if flatIndex >= r.rowStart && flatIndex < r.rowStart+r.rowCount {
			return r.sample
		}
	}
	return 0
}

func (p *Pipeline) reduceRow(row sampleRow, inferred []float64) float64 {
	switch row.rowCount {
	case 0:
		return 0.0
	case 1:
		return inferred[row.rowStart]
	case 2:
		anchors := row.anchors
		anchors.YLo = inferred[row.rowStart]
		anchors.YHi = inferred[row.rowStart+1]
		return ReduceShort(anchors, p.cutoffs.SlopeMin, p.cutoffs.SlopeMax)
	case 3:
		anchors := row.anchors
		anchors.YLo = inferred[row.rowStart]
		anchors.YHi = inferred[row.rowStart+1]
		short := ReduceShort(anchors, p.cutoffs.SlopeMin, p.cutoffs.SlopeMax)
		mid := inferred[row.rowStart+2]
		alpha := Smooth01(row.minSide, p.cutoffs.LowerShort, p.cutoffs.UpperShort)
		return (1-alpha)*short + alpha*mid
	default:
		return 0.0
	}
}

func transformRow(sides [6]float64, cutoffs Cutoffs) [6]float64 {
	reciprocal := Reciprocal(sides, cutoffs.ReciprocalMultiplier)
	return CanonicalizeMinPermutation(reciprocal)
}
