package main

import (
	"fmt"
	"path/filepath"

	"github.com/sarat-asymmetrica/pimc/internal/adjacency"
	"github.com/sarat-asymmetrica/pimc/internal/adjust"
	"github.com/sarat-asymmetrica/pimc/internal/config"
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/fourbody"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/histogram"
	"github.com/sarat-asymmetrica/pimc/internal/move"
	"github.com/sarat-asymmetrica/pimc/internal/potential"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/simulation"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
	"github.com/sarat-asymmetrica/pimc/internal/writer"
)

// components bundles every constructed object the driver needs, built once
// by build() from a resolved Config.
type components struct {
	worldlines *worldline.Worldlines
	env        *environment.Environment
	composite  *handler.Composite
	com        *move.CentreOfMass
	singleBead *move.SingleBead
	bisection  *move.Bisection
	r          *rng.PRNGWrapper
	estimators simulation.Estimators
	histograms simulation.Histograms
}

// build constructs every stateful component a run needs from a resolved
// Config: worldlines, environment, the potential stack (two/three/optional
// four-body), adjacency-backed handlers, move performers sharing them, the
// PRNG, and the per-block estimator/histogram bundle.
func build(cfg *config.Config) (*components, error) {
	w, err := worldline.New(cfg.Simulation.NTimeslices, cfg.Derived.InitialBasis)
	if err != nil {
		return nil, fmt.Errorf("worldlines: %w", err)
	}

	// Resolve already computed beta/tau with the same temperature
	// conversion; reuse it rather than re-deriving from Physics.Temperature.
	temperatureEnergy := 1.0 / cfg.Derived.Beta
	env, err := environment.New(temperatureEnergy, cfg.Derived.Lambda, cfg.Derived.NParticles, cfg.Simulation.NTimeslices)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	box := cfg.Derived.Box

	twoBody, err := potential.LoadFSHPair(cfg.IO.TwoBodyFilepath, cfg.Potentials.TwoBody.LongRangeTail)
	if err != nil {
		return nil, fmt.Errorf("two-body potential: %w", err)
	}
	pairPoint := potential.NewPeriodicPairPoint(twoBody.AsPairPotential(), box)

	var c9Override *float64
	if cfg.Potentials.ThreeBody.UseC9Override {
		v := cfg.Potentials.ThreeBody.C9Override
		c9Override = &v
	}
	threeBodySurface, err := potential.LoadThreeBodyParaH2(cfg.IO.ThreeBodyFilepath, c9Override)
	if err != nil {
		return nil, fmt.Errorf("three-body potential: %w", err)
	}
	threeBodyCombined := potential.NewThreeBodyCombined(threeBodySurface, cfg.Potentials.ThreeBody.LowerShort, cfg.Potentials.ThreeBody.UpperShort)
	tripletPoint := potential.NewPeriodicTripletDistance(threeBodyCombined, box)

	cutoffSquared := box.CutoffDistanceSquared()

	composite := handler.NewComposite()

	pairAdj, err := adjacency.New(cfg.Derived.NParticles)
	if err != nil {
		return nil, fmt.Errorf("pair adjacency: %w", err)
	}
	composite.AddNearestNeighbourHandler(handler.NewNearestNeighbourPair(pairPoint, pairAdj), pairAdj, cutoffSquared)

	tripletAdj, err := adjacency.New(cfg.Derived.NParticles)
	if err != nil {
		return nil, fmt.Errorf("triplet adjacency: %w", err)
	}
	composite.AddNearestNeighbourHandler(handler.NewNearestNeighbourTriplet(tripletPoint, tripletAdj), tripletAdj, cutoffSquared)

	estimators := simulation.Estimators{
		Pair:    pairPoint,
		Triplet: tripletPoint,
	}

	if cfg.Potentials.FourBody.Enabled {
		pipeline, err := buildFourBodyPipeline(cfg.Potentials.FourBody)
		if err != nil {
			return nil, err
		}
		quadPoint := fourbody.NewPeriodicQuadrupletPoint(pipeline, box)

		quadAdj, err := adjacency.New(cfg.Derived.NParticles)
		if err != nil {
			return nil, fmt.Errorf("quadruplet adjacency: %w", err)
		}
		composite.AddNearestNeighbourHandler(handler.NewNearestNeighbourQuadruplet(quadPoint, quadAdj), quadAdj, cutoffSquared)

		estimators.Quadruplet = fourbody.NewBufferedExtrapolatedPotential(pipeline)
		estimators.EvaluateQuadruplet = true
		estimators.QuadrupletCutoff = box.CutoffDistance()
	}

	com := move.NewCentreOfMass(composite, cfg.Moves.CentreOfMassStepSize)
	singleBead := move.NewSingleBead(composite)
	bisection := move.NewBisection(composite, cfg.Moves.BisectionRatio, cfg.Simulation.BisectionLevel)

	r := rng.NewFromSeed(cfg.IO.Seed)

	radialHist, err := histogram.New(512, 0.0, box.CutoffDistance(), histogram.Drop)
	if err != nil {
		return nil, fmt.Errorf("radial distribution histogram: %w", err)
	}
	centroidHist, err := histogram.New(512, 0.0, box.CutoffDistance(), histogram.Drop)
	if err != nil {
		return nil, fmt.Errorf("centroid radial distribution histogram: %w", err)
	}

	histograms := simulation.Histograms{
		RadialDistribution:         radialHist,
		CentroidRadialDistribution: centroidHist,
		Distance: func(p0, p1 geom.Point) float64 {
			return geom.DistancePeriodic(p0, p1, box)
		},
	}

	return &components{
		worldlines: w,
		env:        env,
		composite:  composite,
		com:        com,
		singleBead: singleBead,
		bisection:  bisection,
		r:          r,
		estimators: estimators,
		histograms: histograms,
	}, nil
}

// buildFourBodyPipeline constructs the extrapolated four-body potential
// pipeline from a FourBodyConfig, shared by the live driver's construction
// and the worldline-evaluation tool's re-evaluation path.
func buildFourBodyPipeline(fb config.FourBodyConfig) (*fourbody.Pipeline, error) {
	dispersion, err := potential.NewFourBodyDispersion(fb.DispersionCoefficient)
	if err != nil {
		return nil, fmt.Errorf("four-body dispersion: %w", err)
	}
	model := fourbody.NewLinearRescalingModel(fb.LinearModelWeights, fb.LinearModelBias)
	cutoffs := fourbody.Cutoffs{
		LowerShort:           fb.Cutoffs.LowerShort,
		UpperShort:           fb.Cutoffs.UpperShort,
		LowerMixed:           fb.Cutoffs.LowerMixed,
		UpperMixed:           fb.Cutoffs.UpperMixed,
		ReciprocalMultiplier: fb.Cutoffs.ReciprocalMultiplier,
		SlopeMin:             fb.Cutoffs.SlopeMin,
		SlopeMax:             fb.Cutoffs.SlopeMax,
		AnchorEpsilon:        fb.Cutoffs.AnchorEpsilon,
	}
	envelope := fourbody.DispersionEnvelope{A: fb.Envelope.A, Alpha: fb.Envelope.Alpha, C: fb.Envelope.C}
	derescale := fourbody.DerescaleParams{A: fb.Derescale.A, B: fb.Derescale.B}

	return fourbody.NewPipeline(cutoffs, envelope, derescale, model, dispersion), nil
}

// buildWriters constructs every output file writer under cfg's output
// directory.
func buildWriters(cfg *config.Config) simulation.Writers {
	dir := cfg.IO.OutputDirpath
	return simulation.Writers{
		Kinetic:                  writer.DefaultKineticWriter(dir),
		PairPotential:            writer.DefaultPairPotentialWriter(dir),
		TripletPotential:         writer.DefaultTripletPotentialWriter(dir),
		QuadrupletPotential:      writer.DefaultQuadrupletPotentialWriter(dir),
		RMSCentroidDistance:      writer.DefaultRMSCentroidDistanceWriter(dir),
		AbsoluteCentroidDistance: writer.DefaultAbsoluteCentroidDistanceWriter(dir),
		Timing:                   writer.DefaultTimingWriter(dir),
	}
}

func buildPaths(cfg *config.Config) simulation.Paths {
	return simulation.Paths{
		OutputDirpath:       cfg.IO.OutputDirpath,
		WorldlinesDirpath:   cfg.IO.WorldlinesDirpath,
		CheckpointFilepath:  cfg.IO.CheckpointFilepath,
		PRNGStateFilepath:   cfg.IO.PRNGStateFilepath,
		RadialDistFilepath:  filepath.Join(cfg.IO.OutputDirpath, cfg.IO.RadialDistFilepath),
		CentroidRDFFilepath: filepath.Join(cfg.IO.OutputDirpath, cfg.IO.CentroidRDFFilepath),
	}
}

func buildSchedule(cfg *config.Config) simulation.Schedule {
	return simulation.Schedule{
		FirstBlockIndex:          cfg.Simulation.FirstBlockIndex,
		LastBlockIndex:           cfg.Simulation.LastBlockIndex,
		NEquilibriumBlocks:       cfg.Simulation.NEquilibriumBlocks,
		NPasses:                  cfg.Simulation.NPasses,
		WriterBatchSize:          cfg.Simulation.WriterBatchSize,
		NSaveWorldlinesEvery:     cfg.Simulation.NSaveWorldlinesEvery,
		FreezeStepSizeAdjustment: cfg.Moves.FreezeStepSizeAdjustment,
	}
}

func buildAdjusters(cfg *config.Config) simulation.Adjusters {
	band := adjust.AcceptPercentageRange{Lo: cfg.Moves.AcceptPercentageLow, Hi: cfg.Moves.AcceptPercentageHigh}

	com := adjust.NewSingleValueMoveAdjuster(cfg.Moves.CentreOfMassStepSize, band, cfg.Moves.AdjustmentDelta, adjust.Positive, adjust.Drop).
		WithLowerLimit(1e-6)

	bisection := adjust.NewBisectionLevelMoveAdjuster(cfg.Moves.BisectionRatio, cfg.Simulation.BisectionLevel, band, cfg.Moves.AdjustmentDelta, adjust.Positive, adjust.Drop)

	return simulation.Adjusters{COM: com, Bisection: bisection}
}

func buildTrackers() simulation.Trackers {
	return simulation.Trackers{
		COM:        adjust.NewMoveSuccessTracker(),
		SingleBead: adjust.NewMoveSuccessTracker(),
		Bisection:  adjust.NewMoveSuccessTracker(),
	}
}
