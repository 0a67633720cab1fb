package referenceframe

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/rigging/spatialmath"
)

func makeChain(t *testing.T) *Skeleton {
	t.Helper()
	s := NewSkeleton()
	root := spatialmath.NewPoseFromPoint(r3.Vector{X: 1})
	root.Rotation = spatialmath.NewR4AAFromAxis(spatialmath.Up, math.Pi/2).ToQuat()
	_, err := s.Add("root", "", root)
	test.That(t, err, test.ShouldBeNil)
	_, err = s.Add("child", "root", spatialmath.NewPoseFromPoint(r3.Vector{Z: 2}))
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestSkeletonAddResolve(t *testing.T) {
	s := makeChain(t)
	h, err := s.Resolve("child")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Name(h), test.ShouldEqual, "child")
	test.That(t, s.Names(), test.ShouldResemble, []string{"root", "child"})

	parent, err := s.Parent("child")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parent, test.ShouldEqual, "root")
	parent, err = s.Parent("root")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parent, test.ShouldEqual, "")

	_, err = s.Resolve("nope")
	test.That(t, err, test.ShouldBeError, NewTransformMissingError("nope"))
	_, err = s.Add("child", "root", spatialmath.NewZeroPose())
	test.That(t, err, test.ShouldBeError, NewDuplicateTransformError("child"))
	_, err = s.Add("orphan", "ghost", spatialmath.NewZeroPose())
	test.That(t, err, test.ShouldBeError, NewParentTransformMissingError("orphan", "ghost"))
	test.That(t, s.Name(InvalidHandle), test.ShouldEqual, "")
}

func TestSkeletonWorldRead(t *testing.T) {
	s := makeChain(t)
	h, err := s.Resolve("child")
	test.That(t, err, test.ShouldBeNil)

	local := s.ReadPose(h, Local)
	test.That(t, local.Position, test.ShouldResemble, r3.Vector{Z: 2})

	// root is turned 90 degrees about Y, so the child's +Z offset points along world +X
	world := s.ReadPose(h, World)
	test.That(t, spatialmath.R3VectorAlmostEqual(world.Position, r3.Vector{X: 3}, 1e-12), test.ShouldBeTrue)
}

func TestSkeletonWorldWrite(t *testing.T) {
	s := makeChain(t)
	h, err := s.Resolve("child")
	test.That(t, err, test.ShouldBeNil)

	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Z: -4})
	target.Rotation = spatialmath.EulerAngles{X: 20, Y: 30, Z: 40}.Quaternion()
	s.WritePose(h, World, target)

	world := s.ReadPose(h, World)
	test.That(t, spatialmath.PoseAlmostEqual(world, target, 1e-9, 1e-9), test.ShouldBeTrue)
	local := s.ReadPose(h, Local)
	test.That(t, spatialmath.R3VectorAlmostEqual(local.Position, r3.Vector{X: 4}, 1e-9), test.ShouldBeTrue)
}

func TestSkeletonUnknownHandle(t *testing.T) {
	s := makeChain(t)
	before := s.LocalPoses()
	s.WritePose(Handle(42), Local, spatialmath.NewPoseFromPoint(r3.Vector{X: 9}))
	test.That(t, s.LocalPoses(), test.ShouldResemble, before)
	test.That(t, s.ReadPose(Handle(42), World), test.ShouldResemble, spatialmath.NewZeroPose())
}

func TestSkeletonClone(t *testing.T) {
	s := makeChain(t)
	c := s.Clone()
	h, err := c.Resolve("child")
	test.That(t, err, test.ShouldBeNil)
	c.WritePose(h, Local, spatialmath.NewPoseFromPoint(r3.Vector{Y: 7}))

	test.That(t, s.ReadPose(h, Local).Position, test.ShouldResemble, r3.Vector{Z: 2})
	test.That(t, c.ReadPose(h, Local).Position, test.ShouldResemble, r3.Vector{Y: 7})
}

func TestSpaceJSON(t *testing.T) {
	var spaces []Space
	err := json.Unmarshal([]byte(`["world", "local", "Self", ""]`), &spaces)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spaces, test.ShouldResemble, []Space{World, Local, Local, Local})

	out, err := json.Marshal(World)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"world"`)

	var bad Space
	test.That(t, json.Unmarshal([]byte(`"sideways"`), &bad), test.ShouldNotBeNil)
}
