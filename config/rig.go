// Package config defines the rig file: the transform hierarchy a host exposes and the constraints
// evaluated against it.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rigging/constraint"
	"go.viam.com/rigging/spatialmath"
	"go.viam.com/rigging/utils"
)

// A Rig describes a skeleton and the constraints bound to it. Constraints are evaluated in order.
type Rig struct {
	Transforms  []TransformConfig   `json:"transforms"`
	Constraints []constraint.Config `json:"constraints,omitempty"`

	ConfigFilePath string `json:"-"`
}

// TransformConfig is the rest pose and parent of one transform. Rotation is in degrees. A nil Scale is
// unit scale.
type TransformConfig struct {
	Name     string                  `json:"name"`
	Parent   string                  `json:"parent,omitempty"`
	Position r3.Vector               `json:"position"`
	Rotation spatialmath.EulerAngles `json:"rotation"`
	Scale    *r3.Vector              `json:"scale,omitempty"`
}

// Pose returns the configured local rest pose.
func (tc *TransformConfig) Pose() spatialmath.Pose {
	p := spatialmath.NewZeroPose()
	p.Position = tc.Position
	p.Rotation = tc.Rotation.Quaternion()
	if tc.Scale != nil {
		p.Scale = *tc.Scale
	}
	return p
}

// Validate ensures all parts of the transform config are valid.
func (tc *TransformConfig) Validate(path string) error {
	if tc.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if tc.Parent == tc.Name {
		return utils.NewConfigValidationError(path, errors.Errorf("transform %q cannot be its own parent", tc.Name))
	}
	return nil
}

// Validate checks every transform and constraint and returns all failures combined. Parents must be
// declared before their children.
func (r *Rig) Validate() error {
	var errs error
	seen := map[string]bool{}
	for i := range r.Transforms {
		tc := &r.Transforms[i]
		path := fmt.Sprintf("transforms.%d", i)
		if err := tc.Validate(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if seen[tc.Name] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.Errorf("duplicate transform name %q", tc.Name)))
		}
		if tc.Parent != "" && !seen[tc.Parent] {
			errs = multierr.Append(errs,
				utils.NewConfigValidationError(path, errors.Errorf("parent %q must be declared before %q", tc.Parent, tc.Name)))
		}
		seen[tc.Name] = true
	}

	names := map[string]bool{}
	for i := range r.Constraints {
		c := &r.Constraints[i]
		path := fmt.Sprintf("constraints.%d", i)
		if err := c.Validate(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if names[c.Name] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.Errorf("duplicate constraint name %q", c.Name)))
		}
		names[c.Name] = true
	}
	return errs
}
