package grid

import (
	"math"
	"testing"
)

func TestNewGrid3DRejectsMismatchedLength(t *testing.T) {
	if _, err := NewGrid3D([]float64{1, 2, 3}, Shape3D{N0: 2, N1: 2, N2: 2}); err == nil {
		t.Error("expected error for mismatched data length")
	}
}

func TestGrid3DAtIndexesRowMajor(t *testing.T) {
	// shape (2,2,2): data[i0*4 + i1*2 + i2]
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	g, err := NewGrid3D(data, Shape3D{N0: 2, N1: 2, N2: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.At(1, 0, 1); got != 5 {
		t.Errorf("At(1,0,1) = %f, want 5", got)
	}
	if got := g.At(0, 1, 0); got != 2 {
		t.Errorf("At(0,1,0) = %f, want 2", got)
	}
}

func TestNewGrid2DRejectsMismatchedLength(t *testing.T) {
	if _, err := NewGrid2D([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("expected error for mismatched data length")
	}
}

func TestGrid2DAtIndexesRowMajor(t *testing.T) {
	g, err := NewGrid2D([]float64{0, 1, 2, 3, 4, 5}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.At(1, 2); got != 5 {
		t.Errorf("At(1,2) = %f, want 5", got)
	}
}

func TestNewRegularLinearInterpolatorRejectsTooFewPoints(t *testing.T) {
	if _, err := NewRegularLinearInterpolator([]float64{1.0}, 0.0, 1.0); err == nil {
		t.Error("expected error for fewer than two samples")
	}
}

func TestNewRegularLinearInterpolatorRejectsInvertedRange(t *testing.T) {
	if _, err := NewRegularLinearInterpolator([]float64{1.0, 2.0}, 1.0, 0.0); err == nil {
		t.Error("expected error for xmin >= xmax")
	}
}

func TestRegularLinearInterpolatorExactAtSamplePoints(t *testing.T) {
	r, err := NewRegularLinearInterpolator([]float64{0.0, 10.0, 20.0}, 0.0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range map[float64]float64{0.0: 0.0, 1.0: 10.0, 2.0: 20.0} {
		got, err := r.At(x)
		if err != nil {
			t.Fatalf("At(%f): %v", x, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("At(%f) = %f, want %f", x, got, want)
		}
	}
}

func TestRegularLinearInterpolatorMidpoint(t *testing.T) {
	r, err := NewRegularLinearInterpolator([]float64{0.0, 10.0}, 0.0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.At(1.0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("At(1.0) = %f, want 5.0", got)
	}
}

func TestRegularLinearInterpolatorRejectsOutOfRange(t *testing.T) {
	r, err := NewRegularLinearInterpolator([]float64{0.0, 10.0}, 0.0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.At(-0.1); err == nil {
		t.Error("expected error for x below xmin")
	}
	if _, err := r.At(2.1); err == nil {
		t.Error("expected error for x above xmax")
	}
}

func TestNewTrilinearInterpolatorRejectsUndersizedGrid(t *testing.T) {
	g, err := NewGrid3D([]float64{1}, Shape3D{N0: 1, N1: 1, N2: 1})
	if err != nil {
		t.Fatal(err)
	}
	limits := AxisLimits{Min: 0, Max: 1}
	if _, err := NewTrilinearInterpolator(g, limits, limits, limits); err == nil {
		t.Error("expected error for undersized grid")
	}
}

func TestTrilinearInterpolatorExactAtCorners(t *testing.T) {
	// 2x2x2 grid: value = i0*4 + i1*2 + i2 at each corner
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	g, err := NewGrid3D(data, Shape3D{N0: 2, N1: 2, N2: 2})
	if err != nil {
		t.Fatal(err)
	}
	limits := AxisLimits{Min: 0, Max: 1}
	tri, err := NewTrilinearInterpolator(g, limits, limits, limits)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tri.At(1.0, 0.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("At corner (1,0,1) = %f, want 5.0", got)
	}
}

func TestTrilinearInterpolatorCentreIsMeanOfCorners(t *testing.T) {
	data := []float64{0, 0, 0, 0, 8, 8, 8, 8}
	g, err := NewGrid3D(data, Shape3D{N0: 2, N1: 2, N2: 2})
	if err != nil {
		t.Fatal(err)
	}
	limits := AxisLimits{Min: 0, Max: 1}
	tri, err := NewTrilinearInterpolator(g, limits, limits, limits)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tri.At(0.5, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-4.0) > 1e-9 {
		t.Errorf("centre value = %f, want 4.0", got)
	}
}

func TestTrilinearInterpolatorRejectsOutOfRange(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	g, err := NewGrid3D(data, Shape3D{N0: 2, N1: 2, N2: 2})
	if err != nil {
		t.Fatal(err)
	}
	limits := AxisLimits{Min: 0, Max: 1}
	tri, err := NewTrilinearInterpolator(g, limits, limits, limits)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tri.At(1.5, 0.5, 0.5); err == nil {
		t.Error("expected error for r outside range")
	}
}
