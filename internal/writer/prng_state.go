package writer

import (
	"fmt"
	"os"

	"github.com/sarat-asymmetrica/pimc/internal/rng"
)

// WritePRNGStateAtomic serializes the generator's current state to path
// via write-temp-then-rename.
func WritePRNGStateAtomic(path string, r *rng.PRNGWrapper) error {
	state, err := r.MarshalState()
	if err != nil {
		return fmt.Errorf("writer: failed to marshal PRNG state: %w", err)
	}

	data, err := rng.EncodeStateJSON(state)
	if err != nil {
		return fmt.Errorf("writer: failed to encode PRNG state: %w", err)
	}

	tempPath := path + "_TEMPORARY"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("writer: failed to publish PRNG state %s: %w", path, err)
	}
	return nil
}

// ReadPRNGStateInto restores r's state from the file at path, after which
// the generator's next draws continue exactly where the saved run left
// off.
func ReadPRNGStateInto(path string, r *rng.PRNGWrapper) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("writer: failed to read %s: %w", path, err)
	}

	state, err := rng.DecodeStateJSON(data)
	if err != nil {
		return fmt.Errorf("writer: failed to decode PRNG state %s: %w", path, err)
	}

	if err := r.RestoreState(state); err != nil {
		return fmt.Errorf("writer: failed to restore PRNG state: %w", err)
	}
	return nil
}
