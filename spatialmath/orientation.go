// Package spatialmath defines the pose and rotation math used by rig constraints.
//
// Rotations are unit quaternions (gonum quat.Number) acting on column vectors in a right-handed
// frame. Engine axes are +X right, +Y up and +Z forward.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Engine basis vectors.
var (
	Right   = r3.Vector{X: 1}
	Up      = r3.Vector{Y: 1}
	Forward = r3.Vector{Z: 1}
)

// NewZeroOrientation returns a quaternion which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// Normalize returns q scaled to unit length. The zero quaternion normalizes to the identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return NewZeroOrientation()
	}
	return quat.Scale(1/n, q)
}

// RotateVector rotates v by the unit quaternion q.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// QuatToRotationMatrix returns the 3x3 rotation matrix of a unit quaternion.
func QuatToRotationMatrix(q quat.Number) mgl64.Mat3 {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Mat4().Mat3()
}

// RotationMatrixToQuat returns the unit quaternion of a 3x3 rotation matrix.
func RotationMatrixToQuat(m mgl64.Mat3) quat.Number {
	q := mgl64.Mat4ToQuat(m.Mat4()).Normalize()
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// QuaternionAlmostEqual returns whether two unit quaternions describe the same rotation within tol,
// treating q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return 1-math.Abs(dot) <= tol
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
