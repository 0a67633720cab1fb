package constraint

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/rigging/utils"
)

// A ConfigValidator validates a native constraint config. path locates the config within the rig file
// for error messages.
type ConfigValidator interface {
	Validate(path string) error
}

// A ConfigDefaulter fills in default values before attributes are decoded over them.
type ConfigDefaulter interface {
	SetDefaults()
}

// A Config describes one constraint instance.
type Config struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Weight     *float64           `json:"weight,omitempty"`
	Attributes utils.AttributeMap `json:"attributes,omitempty"`

	// ConvertedAttributes is the native config produced by the type's registration. It is filled by Validate.
	ConvertedAttributes ConfigValidator `json:"-"`
}

// DefaultWeight is used when a config does not set one.
const DefaultWeight = 1.0

// EffectiveWeight returns the configured weight or DefaultWeight.
func (conf *Config) EffectiveWeight() float64 {
	if conf.Weight == nil {
		return DefaultWeight
	}
	return *conf.Weight
}

// Validate checks the generic fields, converts the attributes to the registered native config and
// validates that too.
func (conf *Config) Validate(path string) error {
	if conf.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if conf.Type == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "type")
	}
	if w := conf.EffectiveWeight(); w < 0 || w > 1 {
		return utils.NewConfigValidationError(path, errors.Errorf("weight must be in [0, 1], got %v", w))
	}
	reg, ok := Lookup(conf.Type)
	if !ok {
		return utils.NewConfigValidationError(path, errors.Errorf("unknown constraint type %q", conf.Type))
	}
	if conf.ConvertedAttributes == nil {
		converted, err := reg.AttributeMapConverter(conf.Attributes)
		if err != nil {
			return utils.NewConfigValidationError(path, errors.Wrap(err, "error converting attributes"))
		}
		conf.ConvertedAttributes = converted
	}
	return conf.ConvertedAttributes.Validate(fmt.Sprintf("%s.attributes", path))
}

// TransformAttributeMap uses an attribute map to transform attributes to the prescribed format.
// Attributes are matched on json tags; strings decode into types implementing encoding.TextUnmarshaler.
// Unknown attributes are an error so that typos do not silently fall back to defaults.
func TransformAttributeMap[T any](attributes utils.AttributeMap) (T, error) {
	var out T

	var forResult interface{}

	toT := reflect.TypeOf(out)
	if toT.Kind() == reflect.Ptr {
		// needs to be allocated then
		var ok bool
		out, ok = reflect.New(toT.Elem()).Interface().(T)
		if !ok {
			return out, errors.Errorf("failed to allocate default config type %T", out)
		}
		forResult = out
	} else {
		forResult = &out
	}
	if defaulter, ok := forResult.(ConfigDefaulter); ok {
		defaulter.SetDefaults()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      forResult,
		ErrorUnused: true,
		DecodeHook:  mapstructure.TextUnmarshallerHookFunc(),
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return out, err
	}
	return out, nil
}
