package realm

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

var (
	// ErrRealmRequired indicates a nil realm.
	ErrRealmRequired = errors.New("realm is required")
	// ErrRealmDuplicate indicates two realms with the same name.
	ErrRealmDuplicate = errors.New("realm already in catalog")
	// ErrRootOverlap indicates realm roots that contain one another.
	ErrRootOverlap = errors.New("realm roots overlap")
)

// Catalog is the immutable set of realms a process bridges between. It is
// safe for concurrent use.
type Catalog struct {
	realms []*Realm
	byName map[string]*Realm

	owners       sync.Map // package path -> *Realm (nil when unowned)
	kinds        sync.Map // reflect.Type -> Kind
	translations sync.Map // translationKey -> reflect.Type
}

type translationKey struct {
	t     reflect.Type
	realm *Realm
}

// NewCatalog seals the given realms and builds a catalog over them.
func NewCatalog(realms ...*Realm) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Realm, len(realms))}
	for _, r := range realms {
		if r == nil {
			return nil, ErrRealmRequired
		}
		if _, exists := c.byName[r.name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrRealmDuplicate, r.name)
		}
		for _, other := range c.realms {
			if other.Contains(r.root) || r.Contains(other.root) {
				return nil, fmt.Errorf("%w: %s and %s", ErrRootOverlap, other, r)
			}
		}
		c.byName[r.name] = r
		c.realms = append(c.realms, r)
	}
	sort.Slice(c.realms, func(i, j int) bool { return c.realms[i].name < c.realms[j].name })
	for _, r := range c.realms {
		r.seal()
	}
	return c, nil
}

// Realm returns the realm with the given name.
func (c *Catalog) Realm(name string) (*Realm, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// Realms returns the realms ordered by name.
func (c *Catalog) Realms() []*Realm {
	return append([]*Realm(nil), c.realms...)
}

// OwnerOfPackage returns the realm whose root contains pkgPath.
func (c *Catalog) OwnerOfPackage(pkgPath string) (*Realm, bool) {
	if pkgPath == "" {
		return nil, false
	}
	if cached, ok := c.owners.Load(pkgPath); ok {
		r := cached.(*Realm)
		return r, r != nil
	}
	var owner *Realm
	for _, r := range c.realms {
		if r.Contains(pkgPath) {
			owner = r
			break
		}
	}
	c.owners.Store(pkgPath, owner)
	return owner, owner != nil
}

// Owner returns the realm that declares t. Pointer types report the owner of
// their element type, so an anchoring object like *impl resolves to the realm
// of impl.
func (c *Catalog) Owner(t reflect.Type) (*Realm, bool) {
	if t == nil {
		return nil, false
	}
	for t.Name() == "" && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return c.OwnerOfPackage(t.PkgPath())
}

// OwnerOf returns the realm of the dynamic type of v.
func (c *Catalog) OwnerOf(v any) (*Realm, bool) {
	return c.Owner(reflect.TypeOf(v))
}

// Translate maps t into realm to: platform types are returned unchanged,
// named domain types are loaded by qualified name, and pointer, slice, array,
// map, chan and func types are rebuilt from their translated parts.
func (c *Catalog) Translate(t reflect.Type, to *Realm) (reflect.Type, error) {
	if to == nil {
		return nil, ErrRealmRequired
	}
	if t == nil || c.Classify(t) == Platform {
		return t, nil
	}
	key := translationKey{t: t, realm: to}
	if cached, ok := c.translations.Load(key); ok {
		return cached.(reflect.Type), nil
	}
	translated, err := c.translate(t, to)
	if err != nil {
		return nil, err
	}
	c.translations.Store(key, translated)
	return translated, nil
}

func (c *Catalog) translate(t reflect.Type, to *Realm) (reflect.Type, error) {
	if t.Name() != "" {
		from, ok := c.Owner(t)
		if !ok {
			return t, nil
		}
		if from == to {
			return t, nil
		}
		name, err := from.QualifiedName(t)
		if err != nil {
			return nil, err
		}
		return to.Lookup(name)
	}
	switch t.Kind() {
	case reflect.Pointer:
		elem, err := c.Translate(t.Elem(), to)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case reflect.Slice:
		elem, err := c.Translate(t.Elem(), to)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case reflect.Array:
		elem, err := c.Translate(t.Elem(), to)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(t.Len(), elem), nil
	case reflect.Chan:
		elem, err := c.Translate(t.Elem(), to)
		if err != nil {
			return nil, err
		}
		return reflect.ChanOf(t.ChanDir(), elem), nil
	case reflect.Map:
		key, err := c.Translate(t.Key(), to)
		if err != nil {
			return nil, err
		}
		elem, err := c.Translate(t.Elem(), to)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	case reflect.Func:
		in := make([]reflect.Type, t.NumIn())
		for i := range in {
			translated, err := c.Translate(t.In(i), to)
			if err != nil {
				return nil, err
			}
			in[i] = translated
		}
		out := make([]reflect.Type, t.NumOut())
		for i := range out {
			translated, err := c.Translate(t.Out(i), to)
			if err != nil {
				return nil, err
			}
			out[i] = translated
		}
		return reflect.FuncOf(in, out, t.IsVariadic()), nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeTypeLoad,
		fmt.Sprintf("cannot translate unnamed %s type %s into realm %s", t.Kind(), t, to.name),
		map[string]string{"type": t.String(), "realm": to.name})
}

// AdaptEnum returns the constant of the same-named enum in realm to whose
// symbolic name equals the name of v. Ordinals are never consulted.
func (c *Catalog) AdaptEnum(v reflect.Value, to *Realm) (reflect.Value, error) {
	if to == nil {
		return reflect.Value{}, ErrRealmRequired
	}
	if !v.IsValid() {
		return reflect.Value{}, apperrors.New(apperrors.CodeTypeLoad, "enum value is required")
	}
	from, ok := c.Owner(v.Type())
	if !ok {
		return reflect.Value{}, apperrors.Newf(apperrors.CodeTypeLoad, "enum type %s is not owned by any realm", v.Type())
	}
	name, err := from.QualifiedName(v.Type())
	if err != nil {
		return reflect.Value{}, apperrors.Wrap(apperrors.CodeTypeLoad, "resolve enum name", err)
	}
	source, err := from.Enum(name)
	if err != nil {
		return reflect.Value{}, err
	}
	constant, ok := source.NameOf(v)
	if !ok {
		return reflect.Value{}, apperrors.Newf(apperrors.CodeTypeLoad, "%v is not a registered constant of %s in realm %s", v.Interface(), name, from.name)
	}
	if from == to {
		return v, nil
	}
	target, err := to.Enum(name)
	if err != nil {
		return reflect.Value{}, err
	}
	adapted, ok := target.Constant(constant)
	if !ok {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeTypeLoad,
			fmt.Sprintf("enum %s has no constant %s in realm %s", name, constant, to.name),
			map[string]string{"type": name, "constant": constant, "realm": to.name})
	}
	return adapted, nil
}
