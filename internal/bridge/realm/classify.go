package realm

import "reflect"

// Kind is the bridging classification of a type.
type Kind uint8

const (
	// Platform types cross realms unchanged.
	Platform Kind = iota
	// DomainEnum types are translated constant by constant, by name.
	DomainEnum
	// DomainObject types are wrapped in proxies.
	DomainObject
)

func (k Kind) String() string {
	switch k {
	case Platform:
		return "platform"
	case DomainEnum:
		return "domain enum"
	case DomainObject:
		return "domain object"
	}
	return "unknown"
}

var errorType = reflect.TypeFor[error]()

// Classify reports how values of t cross a realm boundary.
//
// A type is Platform when it implements error, when no realm owns its package
// (predeclared types, the standard library, third-party modules), or when it
// is an unnamed composite built only from platform types. A named type owned
// by a realm is DomainEnum if the realm registered it as an enum and
// DomainObject otherwise. Unnamed composites that mention a domain type are
// DomainObject.
func (c *Catalog) Classify(t reflect.Type) Kind {
	if t == nil {
		return Platform
	}
	if cached, ok := c.kinds.Load(t); ok {
		return cached.(Kind)
	}
	kind := c.classify(t)
	c.kinds.Store(t, kind)
	return kind
}

// ClassifyValue classifies the dynamic type of v. A nil interface is Platform.
func (c *Catalog) ClassifyValue(v any) Kind {
	return c.Classify(reflect.TypeOf(v))
}

func (c *Catalog) classify(t reflect.Type) Kind {
	if isError(t) {
		return Platform
	}
	if t.Name() == "" {
		if c.compositeIsPlatform(t) {
			return Platform
		}
		return DomainObject
	}
	owner, ok := c.OwnerOfPackage(t.PkgPath())
	if !ok {
		return Platform
	}
	if owner.IsEnum(t) {
		return DomainEnum
	}
	return DomainObject
}

func (c *Catalog) compositeIsPlatform(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return c.Classify(t.Elem()) == Platform
	case reflect.Map:
		return c.Classify(t.Key()) == Platform && c.Classify(t.Elem()) == Platform
	case reflect.Func:
		for i := range t.NumIn() {
			if c.Classify(t.In(i)) != Platform {
				return false
			}
		}
		for i := range t.NumOut() {
			if c.Classify(t.Out(i)) != Platform {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := range t.NumField() {
			if c.Classify(t.Field(i).Type) != Platform {
				return false
			}
		}
		return true
	case reflect.Interface:
		for i := range t.NumMethod() {
			if c.Classify(t.Method(i).Type) != Platform {
				return false
			}
		}
		return true
	}
	return true
}

func isError(t reflect.Type) bool {
	if t.Implements(errorType) {
		return true
	}
	return t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(errorType)
}
