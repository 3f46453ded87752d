package simulation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sarat-asymmetrica/pimc/internal/adjust"
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/move"
	"github.com/sarat-asymmetrica/pimc/internal/potential"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
	"github.com/sarat-asymmetrica/pimc/internal/writer"
)

func newTestDriver(t *testing.T, outputDir string) *Driver {
	t.Helper()

	box, err := geom.NewBox(20, 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	init := []geom.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
		{X: 0, Y: 4, Z: 0},
	}
	w, err := worldline.New(4, init)
	if err != nil {
		t.Fatal(err)
	}
	env, err := environment.New(50.0, 12.0, len(init), w.NTimeslices())
	if err != nil {
		t.Fatal(err)
	}
	r := rng.NewFromSeed(7)

	lj, err := potential.NewLennardJones(24.0, 2.96)
	if err != nil {
		t.Fatal(err)
	}
	pairPoint := potential.NewPeriodicPairPoint(lj, box)

	atm, err := potential.NewAxilrodTellerMuto(0.0)
	if err != nil {
		t.Fatal(err)
	}
	tripletPoint := potential.NewPeriodicTripletDistance(atm, box)

	composite := handler.NewComposite()
	composite.AddHandler(handler.NewFullPairHandler(pairPoint))
	composite.AddHandler(handler.NewFullTripletHandler(tripletPoint))

	com := move.NewCentreOfMass(composite, 0.2)
	singleBead := move.NewSingleBead(composite)
	bisection := move.NewBisection(composite, 0.5, 1)

	trackers := Trackers{
		COM:        adjust.NewMoveSuccessTracker(),
		SingleBead: adjust.NewMoveSuccessTracker(),
		Bisection:  adjust.NewMoveSuccessTracker(),
	}
	band := adjust.AcceptPercentageRange{Lo: 0.2, Hi: 0.5}
	adjusters := Adjusters{
		COM:        adjust.NewSingleValueMoveAdjuster(0.2, band, 0.01, adjust.Positive, adjust.Drop),
		SingleBead: adjust.NewSingleValueMoveAdjuster(0.1, band, 0.01, adjust.Positive, adjust.Drop),
		Bisection:  adjust.NewBisectionLevelMoveAdjuster(0.5, 1, band, 0.05, adjust.Positive, adjust.Drop),
	}
	estimators := Estimators{
		Pair:               pairPoint,
		Triplet:            tripletPoint,
		Quadruplet:         nil,
		EvaluateQuadruplet: false,
	}
	writers := Writers{
		Kinetic:                  writer.NewBlockWriter(filepath.Join(outputDir, "kinetic.dat"), "# kinetic\n"),
		PairPotential:            writer.NewBlockWriter(filepath.Join(outputDir, "pair.dat"), "# pair\n"),
		TripletPotential:         writer.NewBlockWriter(filepath.Join(outputDir, "triplet.dat"), "# triplet\n"),
		QuadrupletPotential:      writer.NewBlockWriter(filepath.Join(outputDir, "quadruplet.dat"), "# quadruplet\n"),
		RMSCentroidDistance:      writer.NewBlockWriter(filepath.Join(outputDir, "rms.dat"), "# rms\n"),
		AbsoluteCentroidDistance: writer.NewBlockWriter(filepath.Join(outputDir, "abs.dat"), "# abs\n"),
		Timing:                   writer.NewTimingWriter(filepath.Join(outputDir, "timing.dat")),
	}
	worldlinesDir := filepath.Join(outputDir, "worldlines")
	if err := os.MkdirAll(worldlinesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	paths := Paths{
		OutputDirpath:      outputDir,
		WorldlinesDirpath:  worldlinesDir,
		CheckpointFilepath: filepath.Join(outputDir, "checkpoint.toml"),
		PRNGStateFilepath:  filepath.Join(outputDir, "prng.json"),
	}
	schedule := Schedule{
		FirstBlockIndex:          0,
		LastBlockIndex:           3,
		NEquilibriumBlocks:       1,
		NPasses:                  1,
		WriterBatchSize:          1,
		NSaveWorldlinesEvery:     1,
		FreezeStepSizeAdjustment: false,
	}

	return New(w, env, box, r, composite, com, singleBead, bisection,
		trackers, adjusters, estimators, Histograms{}, writers, paths, schedule, nil)
}

func TestDriverRunCompletesWithoutError(t *testing.T) {
	dir := t.TempDir()
	d := newTestDriver(t, dir)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"kinetic.dat", "pair.dat", "triplet.dat", "rms.dat", "abs.dat", "timing.dat", "checkpoint.toml", "prng.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s to exist: %v", name, err)
		}
	}
}

func TestDriverRunStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	d := newTestDriver(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run with cancelled context: %v", err)
	}
	// no blocks should have been attempted, so no kinetic output exists
	if _, err := os.Stat(filepath.Join(dir, "kinetic.dat")); err == nil {
		t.Error("expected no output files when context is already cancelled")
	}
}

func TestDriverResumeFromSeedsState(t *testing.T) {
	dir := t.TempDir()
	d := newTestDriver(t, dir)
	d.ResumeFrom(writer.Checkpoint{
		MostRecentBlockIndex:            5,
		MostRecentSavedWorldlineIndex:   5,
		IsAtLeastOneWorldlineIndexSaved: true,
		IsEquilibrationComplete:         true,
	})
	if !d.equilibrationComplete {
		t.Error("expected equilibrationComplete to be seeded true")
	}
	if !d.isAtLeastOneWorldlineIndexSaved {
		t.Error("expected isAtLeastOneWorldlineIndexSaved to be seeded true")
	}
	if d.mostRecentSavedWorldlineIndex != 5 {
		t.Errorf("mostRecentSavedWorldlineIndex = %d, want 5", d.mostRecentSavedWorldlineIndex)
	}
}
