package armik

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rigging/spatialmath"
	"go.viam.com/rigging/utils"
)

// wristSingularityEpsilon bounds |sin(theta4)| below which the wrist roll split is undefined.
const wristSingularityEpsilon = 1e-9

// JointAngles are the six solved joint angles in radians. A NaN angle is undefined for the target and
// its joint must be held.
type JointAngles [NumJoints]float64

// Undefined returns the indices of the NaN angles.
func (ja JointAngles) Undefined() []int {
	var out []int
	for i, theta := range ja {
		if math.IsNaN(theta) {
			out = append(out, i)
		}
	}
	return out
}

// Defined reports whether every angle is a number.
func (ja JointAngles) Defined() bool {
	return ja.heldMask() == 0
}

func (ja JointAngles) heldMask() uint8 {
	var mask uint8
	for i, theta := range ja {
		if math.IsNaN(theta) {
			mask |= 1 << i
		}
	}
	return mask
}

// Yaw joints turn about the arm's vertical axis, the rest pitch about its lateral axis.
func isYaw(i int) bool {
	return i == 0 || i == 3 || i == 5
}

// JointAxis returns the local engine axis joint i rotates about.
func JointAxis(i int) r3.Vector {
	if isYaw(i) {
		return spatialmath.Up
	}
	return spatialmath.Right
}

// ToArm permutes an engine vector into arm convention, where X is forward, Y is right and Z is up.
func ToArm(v r3.Vector) r3.Vector {
	return r3.Vector{X: v.Z, Y: v.X, Z: v.Y}
}

// FromArm is the inverse of ToArm.
func FromArm(v r3.Vector) r3.Vector {
	return r3.Vector{X: v.Y, Y: v.Z, Z: v.X}
}

// ToolRotation is the fixed turn from the last joint's frame to the tool frame: a half turn about the
// bisector of up and forward. The tool's forward runs along the final link and its up along the last
// joint's forward.
func ToolRotation() quat.Number {
	return quat.Number{Jmag: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}
}

// toolArm is ToolRotation in arm convention, stored column-major.
var toolArm = mgl64.Mat3{0, 0, 1, 0, -1, 0, 1, 0, 0}

// SolvePose solves for a target pose given relative to joint 1. The target's forward axis is the
// approach direction and its up axis the reference direction.
func SolvePose(g Geometry, target spatialmath.Pose) JointAngles {
	return Solve(g,
		ToArm(target.Position),
		ToArm(spatialmath.RotateVector(target.Rotation, spatialmath.Forward)),
		ToArm(spatialmath.RotateVector(target.Rotation, spatialmath.Up)),
	)
}

// WristCenter backs off from tool position p along approach a to the wrist center, in arm convention.
func WristCenter(g Geometry, p, a r3.Vector) r3.Vector {
	return p.Sub(a.Mul(g.wristToTool()))
}

// Solve computes the elbow-up joint angles placing the tool at p with approach a and reference b, all
// in arm convention relative to joint 1. It never fails: an unreachable wrist center yields NaN for
// every angle but theta0, and a wrist singularity yields NaN for theta5.
func Solve(g Geometry, p, a, b r3.Vector) JointAngles {
	var theta JointAngles
	l1, l2, l34 := g.L[1], g.L[2], g.forearm()

	p5 := WristCenter(g, p, a)
	theta[0] = math.Atan2(p5.Y, p5.X)

	cosElbow := (utils.Square(p5.X) + utils.Square(p5.Y) + utils.Square(p5.Z-l1) - utils.Square(l2) - utils.Square(l34)) /
		(2 * l2 * l34)
	// the square root is NaN past full reach and carries through every later angle
	theta[2] = math.Atan2(math.Sqrt(1-utils.Square(cosElbow)), cosElbow)

	m := l2 + l34*cosElbow
	n := l34 * math.Sin(theta[2])
	reach := math.Hypot(p5.X, p5.Y)
	height := p5.Z - l1
	theta[1] = math.Atan2(m*reach-n*height, n*reach+m*height)

	s1, c1 := math.Sincos(theta[0])
	s23, c23 := math.Sincos(theta[1] + theta[2])
	toFrame3 := func(v r3.Vector) r3.Vector {
		radial := c1*v.X + s1*v.Y
		return r3.Vector{
			X: c23*radial - s23*v.Z,
			Y: -s1*v.X + c1*v.Y,
			Z: s23*radial + c23*v.Z,
		}
	}
	as, bs := toFrame3(a), toFrame3(b)

	theta[3] = math.Atan2(as.Y, as.X)
	s3, c3 := math.Sincos(theta[3])
	theta[4] = math.Atan2(c3*as.X+s3*as.Y, as.Z)
	if sin4 := math.Sin(theta[4]); math.Abs(sin4) < wristSingularityEpsilon {
		theta[5] = math.NaN()
	} else {
		theta[5] = math.Atan2(c3*bs.Y-s3*bs.X, -bs.Z/sin4)
	}
	return theta
}

// Forward returns the tool pose, relative to joint 1 in engine convention, reached by theta. Every
// link extends along its joint's local up axis and the tool frame is turned by ToolRotation.
func Forward(g Geometry, theta JointAngles) spatialmath.Pose {
	pos := r3.Vector{}
	rot := spatialmath.NewZeroOrientation()
	for i, angle := range theta {
		rot = quat.Mul(rot, spatialmath.NewR4AAFromAxis(JointAxis(i), angle).ToQuat())
		pos = pos.Add(spatialmath.RotateVector(rot, spatialmath.Up.Mul(g.L[i+1])))
	}
	out := spatialmath.NewZeroPose()
	out.Position = pos
	out.Rotation = spatialmath.Normalize(quat.Mul(rot, ToolRotation()))
	return out
}

// An ArmFrame is a tool pose in arm convention. The columns of Rotation are the tool's forward, right
// and up axes.
type ArmFrame struct {
	Position r3.Vector
	Rotation mgl64.Mat3
}

// Approach is the tool's forward axis.
func (f ArmFrame) Approach() r3.Vector {
	c := f.Rotation.Col(0)
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}
}

// Reference is the tool's up axis.
func (f ArmFrame) Reference() r3.Vector {
	c := f.Rotation.Col(2)
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}
}

// ForwardArm is Forward computed with rotation matrices in arm convention.
func ForwardArm(g Geometry, theta JointAngles) ArmFrame {
	rot := mgl64.Ident3()
	pos := mgl64.Vec3{}
	for i, angle := range theta {
		if isYaw(i) {
			rot = rot.Mul3(mgl64.Rotate3DZ(angle))
		} else {
			rot = rot.Mul3(mgl64.Rotate3DY(angle))
		}
		pos = pos.Add(rot.Mul3x1(mgl64.Vec3{0, 0, g.L[i+1]}))
	}
	return ArmFrame{Position: r3.Vector{X: pos[0], Y: pos[1], Z: pos[2]}, Rotation: rot.Mul3(toolArm)}
}
