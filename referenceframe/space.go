// Package referenceframe defines the transform hierarchy that rig constraints read from and write to,
// and the spaces (local-to-parent or world) a pose may be expressed in.
package referenceframe

import (
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// Space selects the reference frame a pose is read or written in.
type Space int

const (
	// Local is relative to the transform's parent.
	Local Space = iota
	// World is relative to the skeleton root.
	World
)

func (s Space) String() string {
	switch s {
	case Local:
		return "local"
	case World:
		return "world"
	default:
		return "unknown"
	}
}

// SpaceFromString parses "local" (or "self") and "world". The empty string is Local.
func SpaceFromString(s string) (Space, error) {
	switch strings.ToLower(s) {
	case "", "local", "self":
		return Local, nil
	case "world":
		return World, nil
	}
	return Local, errors.Errorf("unknown space %q", s)
}

// MarshalText encodes the space by name.
func (s Space) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a space name.
func (s *Space) UnmarshalText(text []byte) error {
	parsed, err := SpaceFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// JSONSchema describes a space as its name.
func (Space) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Enum: []interface{}{"local", "world"}}
}
