// Package rig binds a configured set of constraints to a skeleton and evaluates them frame by frame,
// standing in for a host animation scheduler.
package rig

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/rigging/config"
	"go.viam.com/rigging/constraint"
	"go.viam.com/rigging/logging"
	"go.viam.com/rigging/referenceframe"
	"go.viam.com/rigging/utils"
)

type boundConstraint struct {
	constraint.Constraint
	weight float64
}

// A Rig is a skeleton plus the constraints bound to it, evaluated in configuration order.
type Rig struct {
	mu          sync.Mutex
	logger      logging.Logger
	skeleton    *referenceframe.Skeleton
	constraints []boundConstraint
	frame       int
}

// New builds the skeleton described by conf and binds every constraint against it. All bind failures
// are reported together; a rig is returned only if every constraint bound. A nil logger uses the global
// logger.
func New(conf *config.Rig, logger logging.Logger) (*Rig, error) {
	if logger == nil {
		logger = logging.Global()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	skel := referenceframe.NewSkeleton()
	for _, tc := range conf.Transforms {
		if _, err := skel.Add(tc.Name, tc.Parent, tc.Pose()); err != nil {
			return nil, err
		}
	}

	r := &Rig{logger: logger, skeleton: skel}
	var errs error
	for _, cc := range conf.Constraints {
		c, err := constraint.Bind(cc, skel, logger)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		r.constraints = append(r.constraints, boundConstraint{Constraint: c, weight: cc.EffectiveWeight()})
	}
	if errs != nil {
		return nil, errs
	}
	logger.Infow("rig ready", "transforms", len(conf.Transforms), "constraints", len(r.constraints))
	return r, nil
}

// Step evaluates every constraint once, in order. Each constraint's weight for the frame is its
// configured weight times weightScale, clamped to [0, 1].
func (r *Rig) Step(weightScale float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.constraints {
		c.Evaluate(utils.Clamp(c.weight*weightScale, 0, 1), r.skeleton, r.skeleton)
	}
	r.frame++
}

// Frames returns the number of completed steps.
func (r *Rig) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Skeleton returns the skeleton the rig writes to.
func (r *Rig) Skeleton() *referenceframe.Skeleton {
	return r.skeleton
}

// ConstraintNames returns the bound constraints' names in evaluation order.
func (r *Rig) ConstraintNames() []string {
	return lo.Map(r.constraints, func(c boundConstraint, _ int) string { return c.Name() })
}

// Constraint returns the bound constraint with the given name.
func (r *Rig) Constraint(name string) (constraint.Constraint, error) {
	c, ok := lo.Find(r.constraints, func(c boundConstraint) bool { return c.Name() == name })
	if !ok {
		return nil, errors.Errorf("no constraint named %q", name)
	}
	return c.Constraint, nil
}
