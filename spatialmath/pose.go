package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a sample of a transform at one instant: position, rotation and scale, all in one
// reference frame (local-to-parent or world).
type Pose struct {
	Position r3.Vector
	Rotation quat.Number
	Scale    r3.Vector
}

// NewZeroPose returns a pose at the origin with no rotation and unit scale.
func NewZeroPose() Pose {
	return Pose{
		Rotation: NewZeroOrientation(),
		Scale:    r3.Vector{X: 1, Y: 1, Z: 1},
	}
}

// NewPoseFromPoint returns a zero pose translated to pt.
func NewPoseFromPoint(pt r3.Vector) Pose {
	p := NewZeroPose()
	p.Position = pt
	return p
}

// EulerAngles returns the rotation as Euler angles in degrees.
func (p Pose) EulerAngles() EulerAngles {
	return QuatToEulerAngles(p.Rotation)
}

func (p Pose) String() string {
	ea := p.EulerAngles()
	return fmt.Sprintf("pos(%.4g, %.4g, %.4g) rot(%.4g, %.4g, %.4g) scale(%.4g, %.4g, %.4g)",
		p.Position.X, p.Position.Y, p.Position.Z,
		ea.X, ea.Y, ea.Z,
		p.Scale.X, p.Scale.Y, p.Scale.Z)
}

// Compose returns the world pose of a transform whose local pose is child and whose parent's
// world pose is parent. Scale is lossy: it is the componentwise product along the chain and
// ignores the shear that non-uniform scale under rotation would introduce.
func Compose(parent, child Pose) Pose {
	return Pose{
		Position: parent.Position.Add(RotateVector(parent.Rotation, mulElem(parent.Scale, child.Position))),
		Rotation: Normalize(quat.Mul(parent.Rotation, child.Rotation)),
		Scale:    mulElem(parent.Scale, child.Scale),
	}
}

// Decompose is the inverse of Compose: given a parent's world pose and a world pose, it returns
// the local pose that composes to world under parent. Axes on which the parent has zero scale
// collapse to zero.
func Decompose(parent, world Pose) Pose {
	inv := quat.Conj(Normalize(parent.Rotation))
	return Pose{
		Position: divElem(RotateVector(inv, world.Position.Sub(parent.Position)), parent.Scale),
		Rotation: Normalize(quat.Mul(inv, world.Rotation)),
		Scale:    divElem(world.Scale, parent.Scale),
	}
}

// PoseAlmostEqual reports whether two poses match within the given position and rotation tolerances.
// Scale is compared with the position tolerance.
func PoseAlmostEqual(a, b Pose, posTol, rotTol float64) bool {
	return R3VectorAlmostEqual(a.Position, b.Position, posTol) &&
		R3VectorAlmostEqual(a.Scale, b.Scale, posTol) &&
		QuaternionAlmostEqual(a.Rotation, b.Rotation, rotTol)
}

func mulElem(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func divElem(a, b r3.Vector) r3.Vector {
	div := func(x, y float64) float64 {
		if y == 0 {
			return 0
		}
		return x / y
	}
	return r3.Vector{X: div(a.X, b.X), Y: div(a.Y, b.Y), Z: div(a.Z, b.Z)}
}
