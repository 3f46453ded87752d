package fourbody

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"
)

// RescalingModel is the forward-inference contract the extrapolation
// pipeline depends on. It only assumes a batched forward pass, so tests
// can substitute an identity or fixed-linear stub implementing the same
// interface in place of a trained model.
type RescalingModel interface {
	// Infer returns one scalar per row of batch, where each row is the
	// canonicalized, reciprocal-transformed six-tuple for one sample.
	Infer(batch [][6]float64) ([]float64, error)
}

// LinearRescalingModel is the default RescalingModel: a linear-in-features
// model (weights + bias) evaluated via gonum's blas32 dot product. The
// weights and bias are loaded as plain configuration values alongside the
// rest of the simulation setup.
type LinearRescalingModel struct {
	weights blas32.Vector
	bias    float64
}

// NewLinearRescalingModel constructs a model from six feature weights and
// a bias term.
func NewLinearRescalingModel(weights [6]float64, bias float64) *LinearRescalingModel {
	data := make([]float32, 6)
	for i, w := range weights {
		data[i] = float32(w)
	}
	return &LinearRescalingModel{
		weights: blas32.Vector{N: 6, Data: data, Inc: 1},
		bias:    bias,
	}
}

// Infer evaluates the linear model on every row of batch.
func (m *LinearRescalingModel) Infer(batch [][6]float64) ([]float64, error) {
	out := make([]float64, len(batch))
	for i, row := range batch {
		data := make([]float32, 6)
		for j, v := range row {
			data[j] = float32(v)
		}
		rowVec := blas32.Vector{N: 6, Data: data, Inc: 1}
		dot := blas32.Dot(rowVec, m.weights)
		out[i] = float64(dot) + m.bias
	}
	return out, nil
}

// DerescaleParams holds the affine inversion (a, b) in y = (a*y_res + b) *
// g(avg_dist), undoing the training-time affine rescaling applied to raw
// model outputs.
type DerescaleParams struct {
	A float64
	B float64
}

// Derescale applies the full de-rescaling transform to one raw model
// output, given the envelope function g and the sample's average distance.
func Derescale(yRescaled float64, params DerescaleParams, envelope DispersionEnvelope, avgDist float64) float64 {
	return (params.A*yRescaled + params.B) * envelope.Evaluate(avgDist)
}

// IdentityRescalingModel is a test stub returning the mean of each row's
// transformed side lengths, useful for pipeline wiring tests that don't
// care about physical accuracy.
type IdentityRescalingModel struct{}

// Infer implements RescalingModel by returning the row-wise average.
func (IdentityRescalingModel) Infer(batch [][6]float64) ([]float64, error) {
	out := make([]float64, len(batch))
	for i, row := range batch {
		total := 0.0
		for _, v := range row {
			total += v
		}
		out[i] = total / 6.0
	}
	return out, nil
}

// checkBatchShape validates that every row of a batch has the expected
// width; blas32 row vectors assume this invariant silently, so callers
// constructing row vectors by hand must check it explicitly.
func checkBatchShape(batch [][6]float64) error {
	if len(batch) == 0 {
		return fmt.Errorf("fourbody: rescaling model invoked on an empty batch")
	}
	return nil
}
