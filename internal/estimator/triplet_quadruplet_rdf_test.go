package estimator

import (
	"errors"
	"math"
	"testing"

	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/histogram"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

type constTripletPotential struct{ v float64 }

func (c constTripletPotential) WithinBoxCutoff(p0, p1, p2 geom.Point) float64 { return c.v }

func TestTotalTripletPotentialEnergySumsOverUnorderedTriples(t *testing.T) {
	init := []geom.Point{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0},
	}
	w, err := worldline.New(3, init)
	if err != nil {
		t.Fatal(err)
	}
	got := TotalTripletPotentialEnergy(w, constTripletPotential{v: 1.5})
	// 4 particles -> C(4,3)=4 triples per timeslice, identical across timeslices
	want := 4.0 * 1.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("TotalTripletPotentialEnergy = %f, want %f", got, want)
	}
}

type recordingQuadrupletPotential struct {
	samples int
	total   float64
}

func (r *recordingQuadrupletPotential) AddSample(sides [6]float64, sep [6]geom.Point) error {
	r.samples++
	return nil
}

func (r *recordingQuadrupletPotential) ExtractEnergy() (float64, error) {
	return r.total, nil
}

func TestTimesliceQuadrupletPotentialEnergyBelowFourParticlesIsZero(t *testing.T) {
	box, err := geom.NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	points := []geom.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}
	pot := &recordingQuadrupletPotential{}
	got, err := TimesliceQuadrupletPotentialEnergy(points, pot, box, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.0 {
		t.Errorf("energy with < 4 particles = %f, want 0", got)
	}
	if pot.samples != 0 {
		t.Errorf("samples recorded with < 4 particles = %d, want 0", pot.samples)
	}
}

func TestTimesliceQuadrupletPotentialEnergySamplesWellSeparatedQuadruplet(t *testing.T) {
	box, err := geom.NewBox(100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	points := []geom.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	pot := &recordingQuadrupletPotential{total: 7.0}
	got, err := TimesliceQuadrupletPotentialEnergy(points, pot, box, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if pot.samples != 1 {
		t.Errorf("samples recorded for one quadruplet within cutoff = %d, want 1", pot.samples)
	}
	if got != 7.0 {
		t.Errorf("extracted energy = %f, want 7.0", got)
	}
}

func TestTimesliceQuadrupletPotentialEnergyRejectsBeyondCutoff(t *testing.T) {
	box, err := geom.NewBox(100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	points := []geom.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 50, Y: 0, Z: 0},
		{X: 0, Y: 50, Z: 0},
		{X: 0, Y: 0, Z: 50},
	}
	pot := &recordingQuadrupletPotential{}
	if _, err := TimesliceQuadrupletPotentialEnergy(points, pot, box, 1.0); err != nil {
		t.Fatal(err)
	}
	if pot.samples != 0 {
		t.Errorf("samples recorded for a quadruplet outside cutoff = %d, want 0", pot.samples)
	}
}

func TestTimesliceQuadrupletPotentialEnergyPropagatesAddSampleError(t *testing.T) {
	box, err := geom.NewBox(100, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	points := []geom.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	pot := &failingQuadrupletPotential{}
	if _, err := TimesliceQuadrupletPotentialEnergy(points, pot, box, 5.0); err == nil {
		t.Error("expected AddSample error to propagate")
	}
}

type failingQuadrupletPotential struct{}

func (failingQuadrupletPotential) AddSample(sides [6]float64, sep [6]geom.Point) error {
	return errors.New("boom")
}

func (failingQuadrupletPotential) ExtractEnergy() (float64, error) { return 0, nil }

func TestUpdateRadialDistributionFunctionHistogramBinsWithinWorldlinePairs(t *testing.T) {
	h, err := histogram.New(10, 0.0, 10.0, histogram.Drop)
	if err != nil {
		t.Fatal(err)
	}
	init := []geom.Point{{X: 0, Y: 0, Z: 0}}
	w, err := worldline.New(3, init)
	if err != nil {
		t.Fatal(err)
	}
	w.Set(0, 0, geom.Point{X: 0, Y: 0, Z: 0})
	w.Set(1, 0, geom.Point{X: 1, Y: 0, Z: 0})
	w.Set(2, 0, geom.Point{X: 2, Y: 0, Z: 0})

	dist := func(p0, p1 geom.Point) float64 { return geom.Distance(p0, p1) }
	if err := UpdateRadialDistributionFunctionHistogram(h, dist, w); err != nil {
		t.Fatal(err)
	}
	// 3 timeslices for a single particle -> C(3,2)=3 within-worldline pairs binned
	if got := sumCounts(h); got != 3 {
		t.Errorf("histogram count = %d, want 3", got)
	}
}

func sumCounts(h *histogram.Histogram) int64 {
	var total int64
	for _, c := range h.Counts() {
		total += c
	}
	return total
}

func TestUpdateCentroidRadialDistributionFunctionHistogramBinsParticlePairs(t *testing.T) {
	h, err := histogram.New(10, 0.0, 10.0, histogram.Drop)
	if err != nil {
		t.Fatal(err)
	}
	init := []geom.Point{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	w, err := worldline.New(4, init)
	if err != nil {
		t.Fatal(err)
	}
	env, err := environment.New(2.0, 0.5, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	dist := func(p0, p1 geom.Point) float64 { return geom.Distance(p0, p1) }
	if err := UpdateCentroidRadialDistributionFunctionHistogram(h, env, dist, w); err != nil {
		t.Fatal(err)
	}
	// 3 particles -> C(3,2)=3 centroid pairs binned
	if got := sumCounts(h); got != 3 {
		t.Errorf("histogram count = %d, want 3", got)
	}
}
