package constraint

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rigging/logging"
	"go.viam.com/rigging/utils"
)

type (
	// A Create binds a constraint from its native config.
	Create[ConfigT ConfigValidator] func(name string, conf ConfigT, binder Binder, logger logging.Logger) (Constraint, error)

	// An AttributeMapConverter converts an attribute map into a native config type for a constraint.
	AttributeMapConverter[ConfigT any] func(attributes utils.AttributeMap) (ConfigT, error)
)

// A Registration stores construction info for a constraint type. A constructor is mandatory.
type Registration[ConfigT ConfigValidator] struct {
	Constructor Create[ConfigT]

	// AttributeMapConverter is used to convert raw attributes to the constraint's native config.
	// TransformAttributeMap is used when it is nil.
	AttributeMapConverter AttributeMapConverter[ConfigT]

	configType reflect.Type
}

// ConfigReflectType returns the reflective native config type.
func (r Registration[ConfigT]) ConfigReflectType() reflect.Type {
	return r.configType
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Registration[ConfigValidator]{}
)

// Register registers a constraint type with its construction info. It panics on duplicate types or a
// nil constructor, both of which are programming errors caught at init.
func Register[ConfigT ConfigValidator](typ string, reg Registration[ConfigT]) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, old := registry[typ]; old {
		panic(errors.Errorf("trying to register two constraints with same type: %q", typ))
	}
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for type: %q", typ))
	}
	if reg.AttributeMapConverter == nil {
		reg.AttributeMapConverter = TransformAttributeMap[ConfigT]
	}
	var zero ConfigT
	reg.configType = reflect.TypeOf(zero)
	registry[typ] = makeGenericRegistration(reg)
}

// makeGenericRegistration erases the config type; the registry guarantees ConfigT is what arrives.
func makeGenericRegistration[ConfigT ConfigValidator](typed Registration[ConfigT]) Registration[ConfigValidator] {
	return Registration[ConfigValidator]{
		Constructor: func(name string, conf ConfigValidator, binder Binder, logger logging.Logger) (Constraint, error) {
			native, ok := conf.(ConfigT)
			if !ok {
				return nil, utils.NewUnexpectedTypeError[ConfigT](conf)
			}
			return typed.Constructor(name, native, binder, logger)
		},
		AttributeMapConverter: func(attributes utils.AttributeMap) (ConfigValidator, error) {
			return typed.AttributeMapConverter(attributes)
		},
		configType: typed.configType,
	}
}

// Lookup returns the registration for a constraint type.
func Lookup(typ string) (Registration[ConfigValidator], bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[typ]
	return reg, ok
}

// RegisteredTypes returns the registered constraint types, sorted.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := lo.Keys(registry)
	sort.Strings(types)
	return types
}

// Bind validates conf (if not already validated) and constructs its constraint against binder. Failures
// here are configuration failures: the constraint is never evaluated.
func Bind(conf Config, binder Binder, logger logging.Logger) (Constraint, error) {
	if err := conf.Validate(conf.Name); err != nil {
		return nil, err
	}
	reg, ok := Lookup(conf.Type)
	if !ok {
		return nil, errors.Errorf("unknown constraint type %q", conf.Type)
	}
	c, err := reg.Constructor(conf.Name, conf.ConvertedAttributes, binder, logger.Sublogger(conf.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot bind constraint %q", conf.Name)
	}
	return c, nil
}
