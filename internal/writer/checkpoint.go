package writer

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Checkpoint is the resume-point record persisted once every
// writer-batch-size blocks: the last completed block, the last worldline
// snapshot index, and whether equilibration has finished.
type Checkpoint struct {
	MostRecentBlockIndex            int  `toml:"most_recent_block_index"`
	MostRecentSavedWorldlineIndex   int  `toml:"most_recent_saved_worldline_index"`
	IsAtLeastOneWorldlineIndexSaved bool `toml:"is_at_least_one_worldline_index_saved"`
	IsEquilibrationComplete         bool `toml:"is_equilibration_complete"`
}

// WriteCheckpointAtomic serializes c to TOML and publishes it to path via
// write-temp-then-rename, so a reader never observes a partially written
// checkpoint.
func WriteCheckpointAtomic(path string, c Checkpoint) error {
	tempPath := path + "_TEMPORARY"

	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("writer: failed to create %s: %w", tempPath, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("writer: failed to encode checkpoint: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writer: failed to close %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("writer: failed to publish checkpoint %s: %w", path, err)
	}
	return nil
}

// ReadCheckpoint decodes a Checkpoint previously written by
// WriteCheckpointAtomic.
func ReadCheckpoint(path string) (Checkpoint, error) {
	var c Checkpoint
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Checkpoint{}, fmt.Errorf("writer: failed to decode checkpoint %s: %w", path, err)
	}
	return c, nil
}
