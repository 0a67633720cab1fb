package armik

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rigging/utils"
)

// Config describes an arm IK constraint. Joints lists the chain from the fixed root to the last wrist
// joint; the tool tip, when set, extends the chain past the last joint. A tip turned by ToolRotation
// lines up with a reached target.
type Config struct {
	Target  string   `json:"target"`
	Joints  []string `json:"joints"`
	ToolTip string   `json:"tool_tip,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Target == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "target")
	}
	if len(cfg.Joints) != NumJoints+1 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("expected %d joints (root plus %d driven), got %d", NumJoints+1, NumJoints, len(cfg.Joints)))
	}
	for i, j := range cfg.Joints {
		if j == "" {
			return utils.NewConfigValidationFieldRequiredError(path, fmt.Sprintf("joints.%d", i))
		}
	}
	names := append([]string{cfg.Target}, cfg.Joints...)
	if cfg.ToolTip != "" {
		names = append(names, cfg.ToolTip)
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("transforms used more than once: %v", dups))
	}
	return nil
}
