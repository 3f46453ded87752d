package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sarat-asymmetrica/pimc/internal/config"
	"github.com/sarat-asymmetrica/pimc/internal/simulation"
	"github.com/sarat-asymmetrica/pimc/internal/writer"
)

// newRunCommand builds `sim run <path-to-toml>`: load configuration, wire
// every component, resume from a checkpoint if one already exists, and run
// the block loop until completion or a SIGINT/SIGTERM between blocks.
func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <path-to-toml>",
		Short: "Run the path-integral Monte Carlo block loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(args[0])
		},
	}
}

func runMain(configPath string) error {
	log := slog.Default()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load configuration", "path", configPath, "error", err)
		return fmt.Errorf("run: %w", err)
	}

	if err := os.MkdirAll(cfg.IO.OutputDirpath, 0o755); err != nil {
		return fmt.Errorf("run: failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(cfg.IO.WorldlinesDirpath, 0o755); err != nil {
		return fmt.Errorf("run: failed to create worldlines directory: %w", err)
	}

	parts, err := build(cfg)
	if err != nil {
		log.Error("failed to construct simulation components", "error", err)
		return fmt.Errorf("run: %w", err)
	}

	driverLog := log.With("component", "driver")

	d := simulation.New(
		parts.worldlines,
		parts.env,
		cfg.Derived.Box,
		parts.r,
		parts.composite,
		parts.com,
		parts.singleBead,
		parts.bisection,
		buildTrackers(),
		buildAdjusters(cfg),
		parts.estimators,
		parts.histograms,
		buildWriters(cfg),
		buildPaths(cfg),
		buildSchedule(cfg),
		driverLog,
	)

	if resumed, err := resumeIfAvailable(cfg, parts, d, log); err != nil {
		return fmt.Errorf("run: %w", err)
	} else if resumed {
		log.Info("resumed from checkpoint", "checkpoint", cfg.IO.CheckpointFilepath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil {
		log.Error("simulation terminated with error", "error", err)
		return fmt.Errorf("run: %w", err)
	}

	return nil
}

// resumeIfAvailable restores the driver's equilibration/worldline-save
// bookkeeping from a prior checkpoint whenever the checkpoint file exists,
// and the PRNG stream too when its state file also exists (a missing PRNG
// state file is logged as a warning and the stream starts fresh). A
// missing checkpoint is a fresh start, not an error.
func resumeIfAvailable(cfg *config.Config, parts *components, d *simulation.Driver, log *slog.Logger) (bool, error) {
	if cfg.IO.CheckpointFilepath == "" {
		return false, nil
	}
	if _, err := os.Stat(cfg.IO.CheckpointFilepath); err != nil {
		return false, nil
	}

	checkpoint, err := writer.ReadCheckpoint(cfg.IO.CheckpointFilepath)
	if err != nil {
		return false, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	d.ResumeFrom(checkpoint)

	if cfg.IO.PRNGStateFilepath != "" {
		if _, err := os.Stat(cfg.IO.PRNGStateFilepath); err == nil {
			if err := writer.ReadPRNGStateInto(cfg.IO.PRNGStateFilepath, parts.r); err != nil {
				return false, fmt.Errorf("failed to restore PRNG state: %w", err)
			}
		} else {
			log.Warn("checkpoint present but no PRNG state file found, continuing with a fresh stream", "path", cfg.IO.PRNGStateFilepath)
		}
	}

	return true, nil
}
