package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// EvaluateWorldlineConfig carries the worldline-evaluation tool's fields: a
// batch post-processing utility that loads saved worldline snapshots and
// re-evaluates the configured potential orders against them, distinct from
// the live simulation driver.
type EvaluateWorldlineConfig struct {
	AbsOutputDirpath     string `toml:"abs_output_dirpath"`
	AbsWorldlinesDirpath string `toml:"abs_worldlines_dirpath"`
	BlockIndices         []int  `toml:"block_indices"`

	NCellsDim0 int `toml:"n_cells_dim0"`
	NCellsDim1 int `toml:"n_cells_dim1"`
	NCellsDim2 int `toml:"n_cells_dim2"`

	AbsTwoBodyFilepath   string `toml:"abs_two_body_filepath"`
	AbsThreeBodyFilepath string `toml:"abs_three_body_filepath"`
	AbsFourBodyFilepath  string `toml:"abs_four_body_filepath"`

	// ThreeBodyLowerShort/ThreeBodyUpperShort bound the grid/ATM-tail
	// smoothstep blend, mirroring ThreeBodyConfig's fields. Required only
	// when EvaluateThreeBody is set, since the worldline-evaluation tool
	// builds its own ThreeBodyCombined independent of any run's main config.
	ThreeBodyLowerShort float64 `toml:"three_body_lower_short"`
	ThreeBodyUpperShort float64 `toml:"three_body_upper_short"`

	EvaluateTwoBody   bool `toml:"evaluate_two_body"`
	EvaluateThreeBody bool `toml:"evaluate_three_body"`
	EvaluateFourBody  bool `toml:"evaluate_four_body"`
}

// LoadFourBodyPotentialFile decodes a standalone FourBodyConfig (weights,
// cutoffs, envelope, derescale parameters) from path. The worldline
// evaluation tool uses this to rebuild the same extrapolation pipeline the
// live driver runs, from a file independent of the run's own TOML document.
func LoadFourBodyPotentialFile(path string) (FourBodyConfig, error) {
	var fb FourBodyConfig
	if _, err := toml.DecodeFile(path, &fb); err != nil {
		return FourBodyConfig{}, fmt.Errorf("config: failed to decode four-body potential file %s: %w", path, err)
	}
	return fb, nil
}

// LoadEvaluateWorldlineConfig decodes an EvaluateWorldlineConfig from path
// and validates it.
func LoadEvaluateWorldlineConfig(path string) (*EvaluateWorldlineConfig, error) {
	var c EvaluateWorldlineConfig
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields this tool strictly requires.
func (c *EvaluateWorldlineConfig) Validate() error {
	var violations []error

	if c.AbsOutputDirpath == "" {
		violations = append(violations, fmt.Errorf("abs_output_dirpath must not be empty"))
	}
	if c.AbsWorldlinesDirpath == "" {
		violations = append(violations, fmt.Errorf("abs_worldlines_dirpath must not be empty"))
	}
	if len(c.BlockIndices) == 0 {
		violations = append(violations, fmt.Errorf("block_indices must not be empty"))
	}
	for _, idx := range c.BlockIndices {
		if idx < 0 {
			violations = append(violations, fmt.Errorf("block_indices entries must be non-negative, found %d", idx))
		}
	}
	requirePositiveInt(&violations, "n_cells_dim0", c.NCellsDim0, false)
	requirePositiveInt(&violations, "n_cells_dim1", c.NCellsDim1, false)
	requirePositiveInt(&violations, "n_cells_dim2", c.NCellsDim2, false)

	if c.EvaluateTwoBody && c.AbsTwoBodyFilepath == "" {
		violations = append(violations, fmt.Errorf("evaluate_two_body is set but abs_two_body_filepath is empty"))
	}
	if c.EvaluateThreeBody && c.AbsThreeBodyFilepath == "" {
		violations = append(violations, fmt.Errorf("evaluate_three_body is set but abs_three_body_filepath is empty"))
	}
	if c.EvaluateThreeBody && c.ThreeBodyLowerShort >= c.ThreeBodyUpperShort {
		violations = append(violations, fmt.Errorf("evaluate_three_body requires three_body_lower_short (%e) < three_body_upper_short (%e)", c.ThreeBodyLowerShort, c.ThreeBodyUpperShort))
	}
	if c.EvaluateFourBody && c.AbsFourBodyFilepath == "" {
		violations = append(violations, fmt.Errorf("evaluate_four_body is set but abs_four_body_filepath is empty"))
	}

	if len(violations) > 0 {
		return fmt.Errorf("config: %d validation violation(s): %w", len(violations), errors.Join(violations...))
	}
	return nil
}
