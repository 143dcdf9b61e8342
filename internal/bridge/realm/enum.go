package realm

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrEnumEmpty indicates an enum registered without constants.
	ErrEnumEmpty = errors.New("enum requires at least one constant")
	// ErrEnumMixedTypes indicates constants of different types in one enum.
	ErrEnumMixedTypes = errors.New("enum constants must share one type")
	// ErrEnumUnnamedConstant indicates a constant whose name cannot be derived.
	ErrEnumUnnamedConstant = errors.New("enum constant has no symbolic name")
	// ErrEnumDuplicateConstant indicates two constants with the same name.
	ErrEnumDuplicateConstant = errors.New("duplicate enum constant")
)

// Enum is the registered constant set of one enum type.
type Enum struct {
	name   string
	typ    reflect.Type
	order  []string
	byName map[string]reflect.Value
	names  map[any]string
}

func newEnum(constants []any) (*Enum, error) {
	if len(constants) == 0 {
		return nil, ErrEnumEmpty
	}
	first := reflect.TypeOf(constants[0])
	if first == nil {
		return nil, ErrTypeRequired
	}
	if !first.Comparable() {
		return nil, fmt.Errorf("enum type %s is not comparable", first)
	}
	enum := &Enum{
		typ:    first,
		byName: make(map[string]reflect.Value, len(constants)),
		names:  make(map[any]string, len(constants)),
	}
	for _, constant := range constants {
		v := reflect.ValueOf(constant)
		if v.Type() != first {
			return nil, fmt.Errorf("%w: %s and %s", ErrEnumMixedTypes, first, v.Type())
		}
		name, ok := constantName(v)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %v of %s", ErrEnumUnnamedConstant, constant, first)
		}
		if _, exists := enum.byName[name]; exists {
			return nil, fmt.Errorf("%w: %s.%s", ErrEnumDuplicateConstant, first, name)
		}
		enum.order = append(enum.order, name)
		enum.byName[name] = v
		enum.names[constant] = name
	}
	return enum, nil
}

// constantName derives the symbolic name of an enum constant: String() when
// the type is a fmt.Stringer, otherwise the value of a string-kinded type.
func constantName(v reflect.Value) (string, bool) {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

// Name returns the qualified name of the enum type.
func (e *Enum) Name() string { return e.name }

// Type returns the Go type of the constants.
func (e *Enum) Type() reflect.Type { return e.typ }

// Names returns constant names in registration order.
func (e *Enum) Names() []string {
	return append([]string(nil), e.order...)
}

// NameOf returns the symbolic name of v, which must be one of the registered
// constants.
func (e *Enum) NameOf(v reflect.Value) (string, bool) {
	if !v.IsValid() || v.Type() != e.typ {
		return "", false
	}
	name, ok := e.names[v.Interface()]
	return name, ok
}

// Constant returns the constant with the given symbolic name.
func (e *Enum) Constant(name string) (reflect.Value, bool) {
	v, ok := e.byName[name]
	return v, ok
}
