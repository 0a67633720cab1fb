package armik

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rigging/spatialmath"
)

var testGeometry = Geometry{L: [7]float64{0.1, 0.5, 1.0, 0.4, 0.4, 0.2, 0.1}}

// randomReachable draws elbow-up angles well away from the wrist singularity and the reach limit.
func randomReachable(rng *rand.Rand) JointAngles {
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	var theta JointAngles
	theta[0] = between(-math.Pi+0.1, math.Pi-0.1)
	theta[1] = between(0.1, math.Pi/2-0.1)
	theta[2] = between(0.1, math.Pi-0.1-theta[1])
	theta[3] = between(-math.Pi+0.1, math.Pi-0.1)
	theta[4] = between(0.1, math.Pi-0.1)
	theta[5] = between(-math.Pi+0.1, math.Pi-0.1)
	return theta
}

func angleDiff(a, b float64) float64 {
	return math.Remainder(a-b, 2*math.Pi)
}

func TestForwardAtRest(t *testing.T) {
	tool := Forward(testGeometry, JointAngles{})
	test.That(t, tool.Position.X, test.ShouldAlmostEqual, 0)
	test.That(t, tool.Position.Y, test.ShouldAlmostEqual, 2.6)
	test.That(t, tool.Position.Z, test.ShouldAlmostEqual, 0)
	test.That(t, spatialmath.QuaternionAlmostEqual(tool.Rotation, ToolRotation(), 1e-12), test.ShouldBeTrue)
	// the tool points along the chain with its up turned toward forward
	test.That(t, spatialmath.R3VectorAlmostEqual(spatialmath.RotateVector(tool.Rotation, spatialmath.Forward), spatialmath.Up, 1e-12),
		test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(spatialmath.RotateVector(tool.Rotation, spatialmath.Up), spatialmath.Forward, 1e-12),
		test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(spatialmath.RotateVector(tool.Rotation, spatialmath.Right), spatialmath.Right.Mul(-1), 1e-12),
		test.ShouldBeTrue)
	test.That(t, testGeometry.Total(), test.ShouldAlmostEqual, 2.6)
	test.That(t, testGeometry.Reach(), test.ShouldAlmostEqual, 1.8)

	// a quarter turn of the shoulder lays the arm along forward
	tool = Forward(testGeometry, JointAngles{0, math.Pi / 2, 0, 0, 0, 0})
	test.That(t, tool.Position.Y, test.ShouldAlmostEqual, 0.5)
	test.That(t, tool.Position.Z, test.ShouldAlmostEqual, 2.1)
	test.That(t, spatialmath.R3VectorAlmostEqual(spatialmath.RotateVector(tool.Rotation, spatialmath.Forward), spatialmath.Forward, 1e-12),
		test.ShouldBeTrue)
}

func TestForwardMatchesArmConvention(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		theta := randomReachable(rng)
		engine := Forward(testGeometry, theta)
		arm := ForwardArm(testGeometry, theta)
		test.That(t, spatialmath.R3VectorAlmostEqual(ToArm(engine.Position), arm.Position, 1e-9), test.ShouldBeTrue)
		approach := ToArm(spatialmath.RotateVector(engine.Rotation, spatialmath.Forward))
		reference := ToArm(spatialmath.RotateVector(engine.Rotation, spatialmath.Up))
		test.That(t, spatialmath.R3VectorAlmostEqual(approach, arm.Approach(), 1e-9), test.ShouldBeTrue)
		test.That(t, spatialmath.R3VectorAlmostEqual(reference, arm.Reference(), 1e-9), test.ShouldBeTrue)
	}
}

func TestSolveRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		theta := randomReachable(rng)
		solved := SolvePose(testGeometry, Forward(testGeometry, theta))
		test.That(t, solved.Defined(), test.ShouldBeTrue)
		for j := range theta {
			test.That(t, angleDiff(solved[j], theta[j]), test.ShouldAlmostEqual, 0, 1e-6)
		}
	}

	t.Run("arm convention", func(t *testing.T) {
		theta := JointAngles{0.3, 0.4, 1.1, -0.7, 0.9, 2.0}
		frame := ForwardArm(testGeometry, theta)
		solved := Solve(testGeometry, frame.Position, frame.Approach(), frame.Reference())
		for j := range theta {
			test.That(t, solved[j], test.ShouldAlmostEqual, theta[j], 1e-9)
		}
	})
}

func TestSolveHandBuiltTarget(t *testing.T) {
	// both targets put the wrist center at (0.3, 0.3, 1.2) in arm convention
	for _, tc := range []struct {
		name     string
		position r3.Vector
		rotation quat.Number
		approach r3.Vector
	}{
		{"facing forward", r3.Vector{X: 0.3, Y: 1.2, Z: 0.6}, spatialmath.NewZeroOrientation(), r3.Vector{X: 1}},
		{"facing right", r3.Vector{X: 0.6, Y: 1.2, Z: 0.3}, spatialmath.NewR4AAFromAxis(spatialmath.Up, math.Pi/2).ToQuat(), r3.Vector{Y: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			target := spatialmath.NewPoseFromPoint(tc.position)
			target.Rotation = tc.rotation
			p := ToArm(tc.position)
			a := ToArm(spatialmath.RotateVector(tc.rotation, spatialmath.Forward))
			test.That(t, spatialmath.R3VectorAlmostEqual(a, tc.approach, 1e-12), test.ShouldBeTrue)

			wrist := WristCenter(testGeometry, p, a)
			test.That(t, spatialmath.R3VectorAlmostEqual(wrist, r3.Vector{X: 0.3, Y: 0.3, Z: 1.2}, 1e-12), test.ShouldBeTrue)

			theta := SolvePose(testGeometry, target)
			test.That(t, theta.Defined(), test.ShouldBeTrue)
			test.That(t, theta[0], test.ShouldAlmostEqual, math.Pi/4, 1e-12)
			// law of cosines: (0.67 - 1 - 0.64) / (2 * 1.0 * 0.8)
			test.That(t, theta[2], test.ShouldAlmostEqual, math.Acos(-0.60625), 1e-9)

			reached := Forward(testGeometry, theta)
			test.That(t, spatialmath.PoseAlmostEqual(reached, target, 1e-9, 1e-9), test.ShouldBeTrue)
		})
	}
}

func TestSolveUnreachable(t *testing.T) {
	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 3, Y: 1, Z: 4})
	theta := SolvePose(testGeometry, target)
	test.That(t, math.IsNaN(theta[0]), test.ShouldBeFalse)
	test.That(t, theta.Undefined(), test.ShouldResemble, []int{1, 2, 3, 4, 5})
	test.That(t, theta.Defined(), test.ShouldBeFalse)

	// straight up through the base axis, beyond reach
	theta = SolvePose(testGeometry, spatialmath.NewPoseFromPoint(r3.Vector{Y: 10}))
	test.That(t, math.IsNaN(theta[1]), test.ShouldBeTrue)
	test.That(t, math.IsNaN(theta[2]), test.ShouldBeTrue)
}

func TestSolveWristSingularity(t *testing.T) {
	theta := JointAngles{0.5, 0.6, 0.9, 0.4, 0, -1.2}
	solved := SolvePose(testGeometry, Forward(testGeometry, theta))
	for j := 0; j < 3; j++ {
		test.That(t, solved[j], test.ShouldAlmostEqual, theta[j], 1e-9)
	}
	test.That(t, solved[4], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, solved.Undefined(), test.ShouldResemble, []int{5})
}

func TestArmConventionPermutation(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, ToArm(v), test.ShouldResemble, r3.Vector{X: 3, Y: 1, Z: 2})
	test.That(t, FromArm(ToArm(v)), test.ShouldResemble, v)
	// the permutation is a rotation, so handedness is preserved
	test.That(t, ToArm(spatialmath.Right).Cross(ToArm(spatialmath.Up)), test.ShouldResemble, ToArm(spatialmath.Forward))
	test.That(t, JointAxis(0), test.ShouldResemble, spatialmath.Up)
	test.That(t, JointAxis(4), test.ShouldResemble, spatialmath.Right)
}

func TestNewGeometry(t *testing.T) {
	joints := [7]r3.Vector{
		{}, {Y: 0.1}, {Y: 0.6}, {Y: 1.6}, {Y: 2.0}, {Y: 2.4}, {Y: 2.6},
	}
	g, err := NewGeometry(joints, nil)
	test.That(t, err, test.ShouldBeNil)
	for i, want := range []float64{0.1, 0.5, 1.0, 0.4, 0.4, 0.2, 0} {
		test.That(t, g.L[i], test.ShouldAlmostEqual, want)
	}

	tip := r3.Vector{Y: 2.6, Z: 0.1}
	g, err = NewGeometry(joints, &tip)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.L[6], test.ShouldAlmostEqual, 0.1)

	collapsed := joints
	collapsed[3] = collapsed[2]
	_, err = NewGeometry(collapsed, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "upper arm")

	collapsed = joints
	collapsed[4], collapsed[5] = collapsed[3], collapsed[3]
	_, err = NewGeometry(collapsed, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "forearm")
}
