package axisremap

import (
	"github.com/pkg/errors"

	"go.viam.com/rigging/referenceframe"
	"go.viam.com/rigging/utils"
)

// Config describes an axis remap. Destination axis X reads the source axis named by ToX, and likewise
// for Y and Z. A source range with equal bounds disables the destination axes reading from it.
type Config struct {
	Source        string               `json:"source"`
	SourceChannel Channel              `json:"source_channel,omitempty"`
	SourceSpace   referenceframe.Space `json:"source_space,omitempty"`
	FromXRange    [2]float64           `json:"from_x_range"`
	FromYRange    [2]float64           `json:"from_y_range"`
	FromZRange    [2]float64           `json:"from_z_range"`

	ToX Axis `json:"to_x,omitempty"`
	ToY Axis `json:"to_y,omitempty"`
	ToZ Axis `json:"to_z,omitempty"`

	Destination        string               `json:"destination"`
	DestinationChannel Channel              `json:"destination_channel,omitempty"`
	DestinationSpace   referenceframe.Space `json:"destination_space,omitempty"`
	ToXRange           [2]float64           `json:"to_x_range"`
	ToYRange           [2]float64           `json:"to_y_range"`
	ToZRange           [2]float64           `json:"to_z_range"`

	Extrapolate bool `json:"extrapolate,omitempty"`
}

// SetDefaults maps each destination axis to the source axis of the same name.
func (cfg *Config) SetDefaults() {
	cfg.ToX, cfg.ToY, cfg.ToZ = X, Y, Z
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Source == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "source")
	}
	if cfg.Destination == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "destination")
	}
	for _, a := range []Axis{cfg.ToX, cfg.ToY, cfg.ToZ} {
		if a < X || a > Z {
			return utils.NewConfigValidationError(path, errors.Errorf("invalid axis selector %d", a))
		}
	}
	return nil
}

// Remapper assembles the per-destination-axis ranges. The source interval of destination axis d is
// the range configured for the source axis d reads from.
func (cfg *Config) Remapper() Remapper {
	from := [3][2]float64{cfg.FromXRange, cfg.FromYRange, cfg.FromZRange}
	to := [3][2]float64{cfg.ToXRange, cfg.ToYRange, cfg.ToZRange}
	axes := [3]Axis{cfg.ToX, cfg.ToY, cfg.ToZ}
	m := Remapper{Axes: axes, Extrapolate: cfg.Extrapolate}
	for d, a := range axes {
		m.Ranges[d] = RangeMap{FromMin: from[a][0], FromMax: from[a][1], ToMin: to[d][0], ToMax: to[d][1]}
	}
	return m
}
