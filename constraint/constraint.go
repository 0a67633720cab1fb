// Package constraint defines the per-frame contract between a host animation pipeline and the
// procedural constraints it evaluates, plus the registry that binds configured constraints.
package constraint

import (
	"go.viam.com/rigging/referenceframe"
	"go.viam.com/rigging/spatialmath"
)

// A PoseReader exposes read access to bound transforms.
type PoseReader interface {
	ReadPose(h referenceframe.Handle, space referenceframe.Space) spatialmath.Pose
}

// A PoseWriter exposes write access to bound transforms.
type PoseWriter interface {
	WritePose(h referenceframe.Handle, space referenceframe.Space, p spatialmath.Pose)
}

// A Binder resolves transform names into handles and reads their initial poses. It is only used while
// a constraint is being constructed.
type Binder interface {
	PoseReader
	Resolve(name string) (referenceframe.Handle, error)
}

// A Constraint is evaluated once per frame by the host. Evaluate never fails: degenerate inputs are
// handled as data. A weight of zero (or less) must leave every transform untouched.
//
// The host calls Evaluate at most once per instance per frame, in frame order. Instances own their
// state exclusively and need no locking.
type Constraint interface {
	Name() string
	Evaluate(weight float64, r PoseReader, w PoseWriter)
}
