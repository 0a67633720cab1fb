package armik

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/rigging/utils"
)

// minLinkLength is the length below which a link counts as collapsed.
const minLinkLength = 1e-9

// NumJoints is the number of driven joints.
const NumJoints = 6

// Geometry holds the link lengths of the arm. L[k] is the distance from joint k to joint k+1 for
// k in [0, 5]; L[6] is the distance from the last joint to the tool tip. Only L[1] through L[6] are
// used by the solver; joint 0 is a fixed root.
type Geometry struct {
	L [7]float64
}

// NewGeometry measures link lengths from the world positions of the seven chain transforms and an
// optional tool tip. Without a tool tip L[6] is zero.
func NewGeometry(joints [7]r3.Vector, tip *r3.Vector) (Geometry, error) {
	var g Geometry
	for k := 0; k < 6; k++ {
		g.L[k] = joints[k+1].Sub(joints[k]).Norm()
	}
	if tip != nil {
		g.L[6] = tip.Sub(joints[6]).Norm()
	}
	return g, g.Validate()
}

// Validate checks that the elbow law of cosines is well defined.
func (g Geometry) Validate() error {
	for i, l := range g.L {
		if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
			return errors.Errorf("link %d has invalid length %v", i, l)
		}
	}
	if utils.Float64AlmostEqual(g.L[2], 0, minLinkLength) {
		return errors.New("upper arm (link 2) has zero length")
	}
	if utils.Float64AlmostEqual(g.forearm(), 0, minLinkLength) {
		return errors.New("forearm (links 3 and 4) has zero length")
	}
	return nil
}

// Reach is the largest distance from the shoulder joint to the wrist center.
func (g Geometry) Reach() float64 {
	return g.L[2] + g.forearm()
}

// Total is the length of the fully extended chain from joint 1 to the tool tip.
func (g Geometry) Total() float64 {
	return floats.Sum(g.L[1:])
}

func (g Geometry) forearm() float64 {
	return g.L[3] + g.L[4]
}

func (g Geometry) wristToTool() float64 {
	return g.L[5] + g.L[6]
}
