package cli

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigging/constraint"
)

// SchemaAction prints the attribute schemas of all constraint types, or of the one named.
func SchemaAction(c *cli.Context) error {
	schemas := constraint.ConfigSchemas()
	var out interface{} = schemas
	if typ := c.Args().First(); typ != "" {
		schema, ok := schemas[typ]
		if !ok {
			return errors.Errorf("unknown constraint type %q, known types: %v", typ, constraint.RegisteredTypes())
		}
		out = schema
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", b)
	return nil
}
