package axisremap

import (
	"strings"

	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"go.viam.com/rigging/spatialmath"
)

// Channel selects which component of a pose is read or written.
type Channel int

const (
	// Position is the translation of a transform.
	Position Channel = iota
	// Rotation is the orientation of a transform as Euler angles in degrees.
	Rotation
	// Scale is the per-axis scale of a transform.
	Scale
)

func (c Channel) String() string {
	switch c {
	case Position:
		return "position"
	case Rotation:
		return "rotation"
	case Scale:
		return "scale"
	default:
		return "unknown"
	}
}

// ChannelFromString parses a channel name. "location" is accepted for Position.
func ChannelFromString(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "", "position", "location":
		return Position, nil
	case "rotation":
		return Rotation, nil
	case "scale":
		return Scale, nil
	}
	return Position, errors.Errorf("unknown channel %q", s)
}

// MarshalText encodes the channel by name.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a channel name.
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := ChannelFromString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// JSONSchema describes a channel as its name.
func (Channel) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Enum: []interface{}{"position", "rotation", "scale"}}
}

// Read extracts the channel from p as a vector. Rotations read as Euler degrees.
func (c Channel) Read(p spatialmath.Pose) r3.Vector {
	switch c {
	case Rotation:
		return p.EulerAngles().Vector()
	case Scale:
		return p.Scale
	default:
		return p.Position
	}
}

// Write returns p with the channel replaced by v.
func (c Channel) Write(p spatialmath.Pose, v r3.Vector) spatialmath.Pose {
	switch c {
	case Rotation:
		p.Rotation = spatialmath.NewEulerAnglesFromVector(v).Quaternion()
	case Scale:
		p.Scale = v
	default:
		p.Position = v
	}
	return p
}

// Axis selects a source axis.
type Axis int

// The three source axes.
const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "unknown"
	}
}

// Basis returns the unit vector of the axis.
func (a Axis) Basis() r3.Vector {
	switch a {
	case Y:
		return r3.Vector{Y: 1}
	case Z:
		return r3.Vector{Z: 1}
	default:
		return r3.Vector{X: 1}
	}
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes "x", "y" or "z".
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "x":
		*a = X
	case "y":
		*a = Y
	case "z":
		*a = Z
	default:
		return errors.Errorf("unknown axis %q", string(text))
	}
	return nil
}

// JSONSchema describes an axis as its name.
func (Axis) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Enum: []interface{}{"x", "y", "z"}}
}
