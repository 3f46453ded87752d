// Package simulation implements the per-block driver loop: move passes,
// adjacency refresh, conditional estimator evaluation, step-size
// adjustment, and periodic writer/checkpoint flushing.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarat-asymmetrica/pimc/internal/adjust"
	"github.com/sarat-asymmetrica/pimc/internal/environment"
	"github.com/sarat-asymmetrica/pimc/internal/estimator"
	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/handler"
	"github.com/sarat-asymmetrica/pimc/internal/histogram"
	"github.com/sarat-asymmetrica/pimc/internal/move"
	"github.com/sarat-asymmetrica/pimc/internal/rng"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
	"github.com/sarat-asymmetrica/pimc/internal/writer"
)

// Trackers bundles the move-success counters the adjusters read from,
// reset once per block.
type Trackers struct {
	COM        *adjust.MoveSuccessTracker
	SingleBead *adjust.MoveSuccessTracker
	Bisection  *adjust.MoveSuccessTracker
}

// Adjusters bundles the step-size/level controllers tuned during
// equilibration.
type Adjusters struct {
	COM        *adjust.SingleValueMoveAdjuster
	SingleBead *adjust.SingleValueMoveAdjuster
	Bisection  *adjust.BisectionLevelMoveAdjuster
}

// Estimators bundles the periodic potentials and cutoff this driver
// evaluates once per post-equilibration block. Quadruplet is optional:
// when EvaluateQuadruplet is false, Quadruplet may be nil and is skipped.
type Estimators struct {
	Pair               estimator.PeriodicPairPoint
	Triplet            estimator.PeriodicTripletPoint
	Quadruplet         estimator.BufferedQuadrupletPotential
	EvaluateQuadruplet bool
	QuadrupletCutoff   float64
}

// Histograms bundles the radial-distribution accumulators updated once per
// post-equilibration block.
type Histograms struct {
	RadialDistribution         *histogram.Histogram
	CentroidRadialDistribution *histogram.Histogram
	Distance                   estimator.DistanceCalculator
}

// Writers bundles every output file this driver flushes.
type Writers struct {
	Kinetic                  *writer.BlockWriter
	PairPotential            *writer.BlockWriter
	TripletPotential         *writer.BlockWriter
	QuadrupletPotential      *writer.BlockWriter
	RMSCentroidDistance      *writer.BlockWriter
	AbsoluteCentroidDistance *writer.BlockWriter
	Timing                   *writer.TimingWriter
}

// Paths bundles every filesystem location the driver reads or writes
// outside the buffered block writers.
type Paths struct {
	OutputDirpath       string
	WorldlinesDirpath    string
	CheckpointFilepath   string
	PRNGStateFilepath    string
	RadialDistFilepath   string
	CentroidRDFFilepath  string
}

// Schedule controls the block loop's bounds and cadence.
type Schedule struct {
	FirstBlockIndex          int
	LastBlockIndex           int
	NEquilibriumBlocks       int
	NPasses                  int
	WriterBatchSize          int
	NSaveWorldlinesEvery     int
	FreezeStepSizeAdjustment bool
}

// Driver owns every stateful component of a running simulation and
// advances it one block at a time.
type Driver struct {
	w   *worldline.Worldlines
	env *environment.Environment
	box geom.Box
	r   *rng.PRNGWrapper

	composite  *handler.Composite
	com        *move.CentreOfMass
	singleBead *move.SingleBead
	bisection  *move.Bisection

	trackers   Trackers
	adjusters  Adjusters
	estimators Estimators
	histograms Histograms
	writers    Writers
	paths      Paths
	schedule   Schedule

	equilibrationComplete           bool
	mostRecentSavedWorldlineIndex   int
	isAtLeastOneWorldlineIndexSaved bool

	log *slog.Logger
}

// New constructs a Driver from its fully-wired components. Callers (the
// CLI's run command) are responsible for constructing the composite
// handler, move performers sharing it, and every writer/estimator/path
// bundle before calling New.
func New(
	w *worldline.Worldlines,
	env *environment.Environment,
	box geom.Box,
	r *rng.PRNGWrapper,
	composite *handler.Composite,
	com *move.CentreOfMass,
	singleBead *move.SingleBead,
	bisection *move.Bisection,
	trackers Trackers,
	adjusters Adjusters,
	estimators Estimators,
	histograms Histograms,
	writers Writers,
	paths Paths,
	schedule Schedule,
	log *slog.Logger,
) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		w: w, env: env, box: box, r: r,
		composite: composite, com: com, singleBead: singleBead, bisection: bisection,
		trackers: trackers, adjusters: adjusters, estimators: estimators,
		histograms: histograms, writers: writers, paths: paths, schedule: schedule,
		log: log.With("component", "driver"),
	}
}

// ResumeFrom seeds the driver's completed-state bookkeeping from a
// previously read checkpoint, so a resumed run picks up equilibration and
// worldline-snapshot cadence where the prior run left off.
func (d *Driver) ResumeFrom(c writer.Checkpoint) {
	d.equilibrationComplete = c.IsEquilibrationComplete
	d.mostRecentSavedWorldlineIndex = c.MostRecentSavedWorldlineIndex
	d.isAtLeastOneWorldlineIndexSaved = c.IsAtLeastOneWorldlineIndexSaved
}

// Run advances the block loop from schedule.FirstBlockIndex up to (not
// including) schedule.LastBlockIndex, checking ctx between blocks only;
// a block in progress always runs to completion before the loop can stop.
func (d *Driver) Run(ctx context.Context) error {
	for b := d.schedule.FirstBlockIndex; b < d.schedule.LastBlockIndex; b++ {
		select {
		case <-ctx.Done():
			d.log.Info("stopping before block", "block", b, "reason", ctx.Err())
			return nil
		default:
		}

		if err := d.runBlock(b); err != nil {
			return fmt.Errorf("simulation: block %d failed: %w", b, err)
		}
	}
	return nil
}

func (d *Driver) runBlock(b int) error {
	start := time.Now()

	d.composite.RefreshAdjacency(d.w, d.box)

	tau := d.env.ThermodynamicTau()
	nTimeslices := d.w.NTimeslices()

	for p := 0; p < d.schedule.NPasses; p++ {
		for i := 0; i < d.env.NParticles(); i++ {
			accepted := d.com.Propose(d.w, i, tau, d.r)
			d.trackers.COM.Record(accepted)

			for t := 0; t < nTimeslices; t++ {
				accepted := d.singleBead.Propose(d.w, d.env, i, t, d.r)
				d.trackers.SingleBead.Record(accepted)
			}

			for t := 0; t < nTimeslices; t++ {
				accepted := d.bisection.Propose(d.w, d.env, i, t, d.r)
				d.trackers.Bisection.Record(accepted)
			}
		}
	}

	if b >= d.schedule.NEquilibriumBlocks {
		d.equilibrationComplete = true
		if err := d.evaluateAndRecord(b); err != nil {
			return err
		}
	} else if !d.schedule.FreezeStepSizeAdjustment {
		if err := d.adjustStepSizes(); err != nil {
			return err
		}
	}

	comAccept := ratio(d.trackers.COM)
	singleBeadAccept := ratio(d.trackers.SingleBead)
	bisectionAccept := ratio(d.trackers.Bisection)

	d.trackers.COM.Reset()
	d.trackers.SingleBead.Reset()
	d.trackers.Bisection.Reset()

	elapsed := time.Since(start)
	d.recordTiming(b, elapsed)

	if d.schedule.WriterBatchSize > 0 && (b+1)%d.schedule.WriterBatchSize == 0 {
		if err := d.flushAll(b); err != nil {
			return err
		}
	}

	d.log.Info("block complete",
		"block", b,
		"elapsed", elapsed,
		"com_accept", comAccept,
		"single_bead_accept", singleBeadAccept,
		"bisection_accept", bisectionAccept,
	)

	return nil
}

func (d *Driver) evaluateAndRecord(b int) error {
	kinetic := estimator.TotalPrimitiveKineticEnergy(d.w, d.env, geom.NDIM)
	d.writers.Kinetic.WriteBlock(b, kinetic)

	pair := estimator.TotalPairPotentialEnergy(d.w, d.estimators.Pair)
	d.writers.PairPotential.WriteBlock(b, pair)

	triplet := estimator.TotalTripletPotentialEnergy(d.w, d.estimators.Triplet)
	d.writers.TripletPotential.WriteBlock(b, triplet)

	if d.estimators.EvaluateQuadruplet && d.estimators.Quadruplet != nil {
		quadruplet, err := estimator.TotalQuadrupletPotentialEnergyPeriodic(d.w, d.estimators.Quadruplet, d.box, d.estimators.QuadrupletCutoff)
		if err != nil {
			return fmt.Errorf("quadruplet estimator: %w", err)
		}
		d.writers.QuadrupletPotential.WriteBlock(b, quadruplet)
	}

	d.writers.RMSCentroidDistance.WriteBlock(b, estimator.RMSCentroidDistance(d.w))
	d.writers.AbsoluteCentroidDistance.WriteBlock(b, estimator.AbsoluteCentroidDistance(d.w))

	if d.histograms.RadialDistribution != nil {
		if err := estimator.UpdateRadialDistributionFunctionHistogram(d.histograms.RadialDistribution, d.histograms.Distance, d.w); err != nil {
			return fmt.Errorf("radial distribution histogram: %w", err)
		}
	}
	if d.histograms.CentroidRadialDistribution != nil {
		if err := estimator.UpdateCentroidRadialDistributionFunctionHistogram(d.histograms.CentroidRadialDistribution, d.env, d.histograms.Distance, d.w); err != nil {
			return fmt.Errorf("centroid radial distribution histogram: %w", err)
		}
	}

	if d.schedule.NSaveWorldlinesEvery > 0 && b%d.schedule.NSaveWorldlinesEvery == 0 {
		if err := d.snapshotWorldlines(b); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) adjustStepSizes() error {
	if d.adjusters.COM != nil {
		if err := d.adjusters.COM.Adjust(d.trackers.COM.Accepted(), d.trackers.COM.Total()); err != nil {
			return fmt.Errorf("com step-size adjuster: %w", err)
		}
		d.com.SetStepSize(d.adjusters.COM.Value())
	}
	if d.adjusters.SingleBead != nil {
		if err := d.adjusters.SingleBead.Adjust(d.trackers.SingleBead.Accepted(), d.trackers.SingleBead.Total()); err != nil {
			return fmt.Errorf("single-bead step-size adjuster: %w", err)
		}
	}
	if d.adjusters.Bisection != nil {
		if err := d.adjusters.Bisection.Adjust(d.trackers.Bisection.Accepted(), d.trackers.Bisection.Total()); err != nil {
			return fmt.Errorf("bisection level adjuster: %w", err)
		}
		d.bisection.SetLevelParams(d.adjusters.Bisection.UpperLevelFrac(), d.adjusters.Bisection.LowerLevel())
	}
	return nil
}

func (d *Driver) snapshotWorldlines(b int) error {
	path := fmt.Sprintf("%s/worldlines_%05d.dat", d.paths.WorldlinesDirpath, b)
	if err := writer.WriteWorldlineSnapshotAtomic(path, b, d.box, d.w); err != nil {
		d.log.Warn("worldline snapshot failed", "block", b, "error", err)
		return fmt.Errorf("worldline snapshot: %w", err)
	}
	d.mostRecentSavedWorldlineIndex = b
	d.isAtLeastOneWorldlineIndexSaved = true
	return nil
}

func (d *Driver) recordTiming(b int, elapsed time.Duration) {
	totalMicros := elapsed.Microseconds()
	seconds := int(totalMicros / 1_000_000)
	remainder := totalMicros % 1_000_000
	milliseconds := int(remainder / 1_000)
	microseconds := int(remainder % 1_000)
	d.writers.Timing.WriteBlock(b, seconds, milliseconds, microseconds)
}

func (d *Driver) flushAll(b int) error {
	flushes := []func() error{
		d.writers.Kinetic.FlushAtomic,
		d.writers.PairPotential.FlushAtomic,
		d.writers.TripletPotential.FlushAtomic,
		d.writers.QuadrupletPotential.FlushAtomic,
		d.writers.RMSCentroidDistance.FlushAtomic,
		d.writers.AbsoluteCentroidDistance.FlushAtomic,
		d.writers.Timing.FlushAtomic,
	}
	for _, flush := range flushes {
		if err := d.retryFlush(flush); err != nil {
			return err
		}
	}

	if d.histograms.RadialDistribution != nil && d.paths.RadialDistFilepath != "" {
		if err := writer.WriteHistogramAtomic(d.paths.RadialDistFilepath, d.histograms.RadialDistribution); err != nil {
			return fmt.Errorf("radial distribution histogram flush: %w", err)
		}
	}
	if d.histograms.CentroidRadialDistribution != nil && d.paths.CentroidRDFFilepath != "" {
		if err := writer.WriteHistogramAtomic(d.paths.CentroidRDFFilepath, d.histograms.CentroidRadialDistribution); err != nil {
			return fmt.Errorf("centroid radial distribution histogram flush: %w", err)
		}
	}

	if d.paths.PRNGStateFilepath != "" {
		if err := writer.WritePRNGStateAtomic(d.paths.PRNGStateFilepath, d.r); err != nil {
			return fmt.Errorf("prng state flush: %w", err)
		}
	}

	if d.paths.CheckpointFilepath != "" {
		checkpoint := writer.Checkpoint{
			MostRecentBlockIndex:            b,
			MostRecentSavedWorldlineIndex:    d.mostRecentSavedWorldlineIndex,
			IsAtLeastOneWorldlineIndexSaved:  d.isAtLeastOneWorldlineIndexSaved,
			IsEquilibrationComplete:          d.equilibrationComplete,
		}
		if err := writer.WriteCheckpointAtomic(d.paths.CheckpointFilepath, checkpoint); err != nil {
			return fmt.Errorf("checkpoint flush: %w", err)
		}
	}

	return nil
}

// retryFlush retries a single flush once on failure, logging a WARN on the
// first failure and an ERROR if the retry also fails, per the driver's
// documented I/O failure handling.
func (d *Driver) retryFlush(flush func() error) error {
	if err := flush(); err != nil {
		d.log.Warn("writer flush failed, retrying", "error", err)
		if err := flush(); err != nil {
			d.log.Error("writer flush failed on retry", "error", err)
			return fmt.Errorf("writer flush: %w", err)
		}
	}
	return nil
}

func ratio(t *adjust.MoveSuccessTracker) float64 {
	if t.Total() == 0 {
		return 0.0
	}
	return float64(t.Accepted()) / float64(t.Total())
}
