// Package register registers all built-in constraint types.
package register

import (
	// register constraint types.
	_ "go.viam.com/rigging/constraint/armik"
	_ "go.viam.com/rigging/constraint/axisremap"
)
