package axisremap

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rigging/utils"
)

// A RangeMap maps the interval [FromMin, FromMax] affinely onto [ToMin, ToMax]. A map whose source
// interval is empty is degenerate and disables its axis.
type RangeMap struct {
	FromMin, FromMax float64
	ToMin, ToMax     float64
}

// Degenerate reports whether the source interval is empty.
func (m RangeMap) Degenerate() bool {
	return m.FromMin == m.FromMax
}

// Remap maps p through the range. Without extrapolation the result is clamped to the destination
// interval. A degenerate map always yields 0.
func (m RangeMap) Remap(p float64, extrapolate bool) float64 {
	if m.Degenerate() {
		return 0
	}
	out := m.ToMin + (p-m.FromMin)*(m.ToMax-m.ToMin)/(m.FromMax-m.FromMin)
	if !extrapolate {
		out = utils.Clamp(out, m.ToMin, m.ToMax)
	}
	return out
}

// RevolutionState tracks whole turns of a rotation source so that Euler angles wrapping at ±180
// degrees read as a continuous signal.
type RevolutionState struct {
	Revolutions  [3]int
	LastRotation r3.Vector
	primed       bool
}

// Unwrap folds the accumulated turns into rot and records rot for the next frame. A jump of more than
// 180 degrees on an axis since the previous call counts as one turn in the direction of the jump. The
// first call only records.
func (s *RevolutionState) Unwrap(rot r3.Vector) r3.Vector {
	raw := [3]float64{rot.X, rot.Y, rot.Z}
	last := [3]float64{s.LastRotation.X, s.LastRotation.Y, s.LastRotation.Z}
	var out [3]float64
	for i := range raw {
		if s.primed && math.Abs(raw[i]-last[i]) > 180 {
			s.Revolutions[i] += utils.Sign(raw[i] - last[i])
		}
		out[i] = raw[i] - float64(s.Revolutions[i])*360
	}
	s.LastRotation = rot
	s.primed = true
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// Reset forgets all accumulated turns.
func (s *RevolutionState) Reset() {
	*s = RevolutionState{}
}

// A Remapper projects a source vector onto three selected axes and remaps each projection through its
// own range.
type Remapper struct {
	Axes        [3]Axis
	Ranges      [3]RangeMap
	Extrapolate bool
}

// Apply remaps v. Component i of the result is Ranges[i] applied to v's component along Axes[i].
func (m *Remapper) Apply(v r3.Vector) r3.Vector {
	var out [3]float64
	for i, axis := range m.Axes {
		out[i] = m.Ranges[i].Remap(v.Dot(axis.Basis()), m.Extrapolate)
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}
