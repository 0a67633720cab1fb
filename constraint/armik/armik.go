// Package armik implements a closed-form inverse kinematics constraint for a six joint arm with a
// spherical wrist. The solver keeps the elbow up and holds any joint whose angle is undefined for the
// current target.
package armik

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rigging/constraint"
	"go.viam.com/rigging/logging"
	"go.viam.com/rigging/referenceframe"
	"go.viam.com/rigging/spatialmath"
)

// Type is the registered constraint type.
const Type = "arm_ik"

func init() {
	constraint.Register(Type, constraint.Registration[*Config]{Constructor: newArmIK})
}

// ArmIK is a bound arm IK constraint.
type ArmIK struct {
	name   string
	logger logging.Logger

	target   referenceframe.Handle
	joints   [NumJoints + 1]referenceframe.Handle
	geometry Geometry
	offset   r3.Vector

	held uint8
}

func newArmIK(name string, conf *Config, binder constraint.Binder, logger logging.Logger) (constraint.Constraint, error) {
	return New(name, conf, binder, logger)
}

// New binds conf against binder, measuring link lengths from the joints' current world positions.
// The target is solved relative to joint 1's world position at bind time.
func New(name string, conf *Config, binder constraint.Binder, logger logging.Logger) (*ArmIK, error) {
	if err := conf.Validate(name); err != nil {
		return nil, err
	}
	target, err := binder.Resolve(conf.Target)
	if err != nil {
		return nil, err
	}
	ik := &ArmIK{name: name, logger: logger, target: target}
	var positions [NumJoints + 1]r3.Vector
	for i, jointName := range conf.Joints {
		h, err := binder.Resolve(jointName)
		if err != nil {
			return nil, err
		}
		ik.joints[i] = h
		positions[i] = binder.ReadPose(h, referenceframe.World).Position
	}
	var tip *r3.Vector
	if conf.ToolTip != "" {
		h, err := binder.Resolve(conf.ToolTip)
		if err != nil {
			return nil, err
		}
		pos := binder.ReadPose(h, referenceframe.World).Position
		tip = &pos
	}
	ik.geometry, err = NewGeometry(positions, tip)
	if err != nil {
		return nil, err
	}
	ik.offset = positions[1]
	logger.Debugw("bound arm ik", "target", conf.Target, "links", ik.geometry.L, "offset", ik.offset)
	return ik, nil
}

// Name returns the configured name.
func (ik *ArmIK) Name() string {
	return ik.name
}

// Geometry returns the link lengths measured at bind time.
func (ik *ArmIK) Geometry() Geometry {
	return ik.geometry
}

// Evaluate solves for the target's current world pose and writes each defined angle, scaled by weight,
// as its joint's local rotation. Joints with undefined angles keep their pose.
func (ik *ArmIK) Evaluate(weight float64, r constraint.PoseReader, w constraint.PoseWriter) {
	if weight <= 0 {
		return
	}
	target := r.ReadPose(ik.target, referenceframe.World)
	target.Position = target.Position.Sub(ik.offset)
	theta := SolvePose(ik.geometry, target)

	for i, angle := range theta {
		if math.IsNaN(angle) {
			continue
		}
		h := ik.joints[i+1]
		pose := r.ReadPose(h, referenceframe.Local)
		pose.Rotation = spatialmath.NewR4AAFromAxis(JointAxis(i), angle*weight).ToQuat()
		w.WritePose(h, referenceframe.Local, pose)
	}

	if held := theta.heldMask(); held != ik.held {
		ik.held = held
		ik.logger.Debugw("held joints changed", "held", theta.Undefined())
	}
}
