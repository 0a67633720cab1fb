package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rigging/utils"
)

// gimbalEpsilon bounds how small |cos(X)| may get before the Y/Z split is treated as degenerate.
const gimbalEpsilon = 1e-9

// EulerAngles are rotations in degrees about the engine axes, applied Z first, then X, then Y,
// each about the fixed (parent) axes. This is the order animation tools report rotations in.
// Euler angles are terrible, only use them at the boundary where a channel is read as numbers.
type EulerAngles struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewEulerAnglesFromVector reads a vector as X/Y/Z degrees.
func NewEulerAnglesFromVector(v r3.Vector) EulerAngles {
	return EulerAngles{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector returns the angles as a vector of degrees.
func (ea EulerAngles) Vector() r3.Vector {
	return r3.Vector{X: ea.X, Y: ea.Y, Z: ea.Z}
}

// Quaternion returns the orientation in quaternion representation.
func (ea EulerAngles) Quaternion() quat.Number {
	return EulerAnglesToQuat(ea)
}

// EulerAnglesToQuat converts Euler angles in degrees to a unit quaternion: q = qY * qX * qZ.
func EulerAnglesToQuat(ea EulerAngles) quat.Number {
	qx := NewR4AAFromAxis(Right, utils.DegToRad(ea.X)).ToQuat()
	qy := NewR4AAFromAxis(Up, utils.DegToRad(ea.Y)).ToQuat()
	qz := NewR4AAFromAxis(Forward, utils.DegToRad(ea.Z)).ToQuat()
	return quat.Mul(qy, quat.Mul(qx, qz))
}

// QuatToEulerAngles converts a unit quaternion to Euler angles in degrees. X lies in [-90, 90],
// Y and Z in (-180, 180]. At the X = ±90 singularity Z is reported as 0.
func QuatToEulerAngles(q quat.Number) EulerAngles {
	// R = Ry(y) * Rx(x) * Rz(z) has
	//   m12 = -sin(x)
	//   m02 = sin(y)cos(x),  m22 = cos(y)cos(x)
	//   m10 = sin(z)cos(x),  m11 = cos(z)cos(x)
	m := QuatToRotationMatrix(Normalize(q))
	// asin loses half its digits near ±90, atan2 against the column norm does not
	cx := math.Hypot(m.At(0, 2), m.At(2, 2))
	x := math.Atan2(-m.At(1, 2), cx)

	var y, z float64
	if cx < gimbalEpsilon {
		y = math.Atan2(-m.At(2, 0), m.At(0, 0))
	} else {
		y = math.Atan2(m.At(0, 2), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(1, 1))
	}
	return EulerAngles{
		X: utils.RadToDeg(x),
		Y: utils.WrapDeg180(utils.RadToDeg(y)),
		Z: utils.WrapDeg180(utils.RadToDeg(z)),
	}
}
