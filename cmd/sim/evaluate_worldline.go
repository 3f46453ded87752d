package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sarat-asymmetrica/pimc/internal/config"
	"github.com/sarat-asymmetrica/pimc/internal/estimator"
	"github.com/sarat-asymmetrica/pimc/internal/fourbody"
	"github.com/sarat-asymmetrica/pimc/internal/potential"
	"github.com/sarat-asymmetrica/pimc/internal/writer"
)

// newEvaluateWorldlineCommand builds `sim evaluate-worldline <path-to-toml>`:
// a batch post-processing tool that loads previously saved worldline
// snapshots and re-evaluates whichever potential orders the config selects
// against them, independent of any live driver run.
func newEvaluateWorldlineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate-worldline <path-to-toml>",
		Short: "Re-evaluate saved worldline snapshots against a potential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evaluateWorldlineMain(args[0])
		},
	}
}

func evaluateWorldlineMain(configPath string) error {
	log := slog.Default().With("component", "evaluate-worldline")

	cfg, err := config.LoadEvaluateWorldlineConfig(configPath)
	if err != nil {
		log.Error("failed to load configuration", "path", configPath, "error", err)
		return fmt.Errorf("evaluate-worldline: %w", err)
	}

	var twoBody *potential.FSHPair
	if cfg.EvaluateTwoBody {
		twoBody, err = potential.LoadFSHPair(cfg.AbsTwoBodyFilepath, true)
		if err != nil {
			return fmt.Errorf("evaluate-worldline: two-body potential: %w", err)
		}
	}

	var threeBodySurface *potential.ThreeBodyParaH2
	if cfg.EvaluateThreeBody {
		threeBodySurface, err = potential.LoadThreeBodyParaH2(cfg.AbsThreeBodyFilepath, nil)
		if err != nil {
			return fmt.Errorf("evaluate-worldline: three-body potential: %w", err)
		}
	}

	var fourBodyPipeline *fourbody.Pipeline
	if cfg.EvaluateFourBody {
		fb, err := config.LoadFourBodyPotentialFile(cfg.AbsFourBodyFilepath)
		if err != nil {
			return fmt.Errorf("evaluate-worldline: %w", err)
		}
		fourBodyPipeline, err = buildFourBodyPipeline(fb)
		if err != nil {
			return fmt.Errorf("evaluate-worldline: %w", err)
		}
	}

	pairWriter := writer.NewBlockWriter(filepath.Join(cfg.AbsOutputDirpath, "reevaluated_pair_potential.dat"), "# re-evaluated total pair potential energy in wavenumbers\n")
	tripletWriter := writer.NewBlockWriter(filepath.Join(cfg.AbsOutputDirpath, "reevaluated_triplet_potential.dat"), "# re-evaluated total triplet potential energy in wavenumbers\n")
	quadrupletWriter := writer.NewBlockWriter(filepath.Join(cfg.AbsOutputDirpath, "reevaluated_quadruplet_potential.dat"), "# re-evaluated total quadruplet potential energy in wavenumbers\n")

	for _, blockIndex := range cfg.BlockIndices {
		path := filepath.Join(cfg.AbsWorldlinesDirpath, fmt.Sprintf("worldlines_%05d.dat", blockIndex))
		savedBlockIndex, box, w, err := writer.ReadWorldlineSnapshot(path)
		if err != nil {
			return fmt.Errorf("evaluate-worldline: failed to read snapshot for block %d: %w", blockIndex, err)
		}

		if cfg.EvaluateTwoBody {
			pairPoint := potential.NewPeriodicPairPoint(twoBody.AsPairPotential(), box)
			energy := estimator.TotalPairPotentialEnergy(w, pairPoint)
			pairWriter.WriteBlock(savedBlockIndex, energy)
		}

		if cfg.EvaluateThreeBody {
			combined := potential.NewThreeBodyCombined(threeBodySurface, cfg.ThreeBodyLowerShort, cfg.ThreeBodyUpperShort)
			tripletPoint := potential.NewPeriodicTripletDistance(combined, box)
			energy := estimator.TotalTripletPotentialEnergy(w, tripletPoint)
			tripletWriter.WriteBlock(savedBlockIndex, energy)
		}

		if cfg.EvaluateFourBody {
			quadPoint := fourbody.NewBufferedExtrapolatedPotential(fourBodyPipeline)
			energy, err := estimator.TotalQuadrupletPotentialEnergyPeriodic(w, quadPoint, box, box.CutoffDistance())
			if err != nil {
				return fmt.Errorf("evaluate-worldline: quadruplet potential at block %d: %w", blockIndex, err)
			}
			quadrupletWriter.WriteBlock(savedBlockIndex, energy)
		}

		log.Info("re-evaluated block", "block", savedBlockIndex)
	}

	for _, bw := range []*writer.BlockWriter{pairWriter, tripletWriter, quadrupletWriter} {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("evaluate-worldline: failed to flush output: %w", err)
		}
	}

	return nil
}
