package constraint

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// ConfigSchemas returns a JSON schema for the native attributes of every registered constraint type,
// keyed by type.
func ConfigSchemas() map[string]*jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schemas := map[string]*jsonschema.Schema{}
	for _, typ := range RegisteredTypes() {
		reg, _ := Lookup(typ)
		t := reg.ConfigReflectType()
		if t == nil {
			continue
		}
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		schema := r.ReflectFromType(t)
		schema.Title = typ
		schemas[typ] = schema
	}
	return schemas
}
