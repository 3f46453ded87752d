package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Point{1, 2, 3}
	q := Point{4, -1, 0.5}

	if got := p.Add(q); got != (Point{5, 1, 3.5}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := p.Sub(q); got != (Point{-3, 3, 2.5}) {
		t.Errorf("Sub: got %+v", got)
	}
	if got := p.Scale(2); got != (Point{2, 4, 6}) {
		t.Errorf("Scale: got %+v", got)
	}
	if got := p.Neg(); got != (Point{-1, -2, -3}) {
		t.Errorf("Neg: got %+v", got)
	}
}

func TestPointAtSetAt(t *testing.T) {
	p := Point{1, 2, 3}
	for i, want := range []float64{1, 2, 3} {
		if got := p.At(i); got != want {
			t.Errorf("At(%d) = %f, want %f", i, got, want)
		}
	}
	q := p.SetAt(1, 9)
	if q.Y != 9 || p.Y != 2 {
		t.Errorf("SetAt must not mutate receiver: p=%+v q=%+v", p, q)
	}
}

func TestDistance(t *testing.T) {
	p := Point{0, 0, 0}
	q := Point{3, 4, 0}
	if got := Distance(p, q); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Distance = %f, want 5.0", got)
	}
	if got := DistanceSquared(p, q); math.Abs(got-25.0) > 1e-12 {
		t.Errorf("DistanceSquared = %f, want 25.0", got)
	}
}

func TestNewBoxRejectsNonPositiveSides(t *testing.T) {
	cases := []struct {
		x, y, z float64
	}{
		{0, 1, 1},
		{1, -1, 1},
		{1, 1, 0},
	}
	for _, c := range cases {
		if _, err := NewBox(c.x, c.y, c.z); err == nil {
			t.Errorf("NewBox(%v, %v, %v) should have failed", c.x, c.y, c.z)
		}
	}
	if _, err := NewBox(1, 2, 3); err != nil {
		t.Errorf("NewBox(1,2,3) unexpected error: %v", err)
	}
}

func TestCutoffDistanceIsHalfShortestSide(t *testing.T) {
	b, err := NewBox(10, 6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.CutoffDistance(); got != 3.0 {
		t.Errorf("CutoffDistance = %f, want 3.0", got)
	}
	if got := b.CutoffDistanceSquared(); got != 9.0 {
		t.Errorf("CutoffDistanceSquared = %f, want 9.0", got)
	}
}

func TestDistancePeriodicMinimumImage(t *testing.T) {
	b, err := NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	p := Point{0.5, 0, 0}
	q := Point{9.5, 0, 0}
	// direct separation is 9.0, but the minimum image wraps to 1.0
	if got := DistancePeriodic(p, q, b); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("DistancePeriodic = %f, want 1.0", got)
	}
}

func TestDistancePeriodicHalfIntegerRoundsAwayFromZero(t *testing.T) {
	b, err := NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	// separation of exactly L/2 must fold to a single well-defined sign,
	// not be left ambiguous by banker's rounding.
	p := Point{0, 0, 0}
	q := Point{5, 0, 0}
	if got := DistancePeriodic(p, q, b); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("DistancePeriodic at half box = %f, want 5.0", got)
	}
}

func TestSeparationPeriodicMatchesDistance(t *testing.T) {
	b, err := NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	p := Point{0.5, 1.0, -2.0}
	q := Point{9.5, 8.5, 2.0}
	sep := SeparationPeriodic(p, q, b)
	if got := Norm(sep); math.Abs(got-DistancePeriodic(p, q, b)) > 1e-9 {
		t.Errorf("norm of separation (%f) does not match DistancePeriodic (%f)", got, DistancePeriodic(p, q, b))
	}
}

func TestShiftPointsTogetherPivotBecomesOrigin(t *testing.T) {
	b, err := NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	points := []Point{{1, 1, 1}, {2, 2, 2}, {9.5, 1, 1}}
	out := ShiftPointsTogether(0, b, points)
	if out[0] != (Point{0, 0, 0}) {
		t.Errorf("pivot should shift to origin, got %+v", out[0])
	}
	if got := Distance(out[2], Point{}); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("wrapped point distance = %f, want 1.5 (minimum image)", got)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Box{Sides: [NDIM]float64{10, 10, 10}}
	c := Box{Sides: [NDIM]float64{10.0001, 10, 10}}
	if !ApproxEqual(a, c, 1e-4) {
		t.Error("boxes within tolerance should compare approximately equal")
	}
	if ApproxEqual(a, c, 1e-12) {
		t.Error("boxes outside tolerance should not compare approximately equal")
	}
}
