package realm

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"reflect"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

var (
	// ErrNameRequired indicates a realm was created without a name.
	ErrNameRequired = errors.New("realm name is required")
	// ErrRootRequired indicates a realm was created without a package root.
	ErrRootRequired = errors.New("realm root is required")
	// ErrRealmSealed indicates registration after the realm joined a catalog.
	ErrRealmSealed = errors.New("realm is sealed")
	// ErrTypeRequired indicates a nil type was registered.
	ErrTypeRequired = errors.New("type is required")
	// ErrTypeUnnamed indicates an unnamed type was registered.
	ErrTypeUnnamed = errors.New("type must be named")
	// ErrTypeOutsideRoot indicates a type declared outside the realm root.
	ErrTypeOutsideRoot = errors.New("type is outside realm root")
	// ErrTypeAlreadyRegistered indicates a duplicate qualified name.
	ErrTypeAlreadyRegistered = errors.New("type already registered")

	// ErrTypeLoad matches (via errors.Is) every failure to locate a domain
	// type or enum constant in a realm.
	ErrTypeLoad = apperrors.New(apperrors.CodeTypeLoad, "type load failed")
)

// Realm is one type-loading boundary.
type Realm struct {
	name string
	root string

	mu     sync.RWMutex
	sealed bool
	types  map[string]reflect.Type
	enums  map[string]*Enum
}

// New creates an empty realm for the packages under root.
func New(name, root string) (*Realm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, ErrRootRequired
	}
	return &Realm{
		name:  name,
		root:  path.Clean(root),
		types: make(map[string]reflect.Type),
		enums: make(map[string]*Enum),
	}, nil
}

// Name returns the realm name.
func (r *Realm) Name() string { return r.name }

// Root returns the package-path root.
func (r *Realm) Root() string { return r.root }

func (r *Realm) String() string {
	return fmt.Sprintf("%s(%s)", r.name, r.root)
}

// Contains reports whether pkgPath lies under the realm root.
func (r *Realm) Contains(pkgPath string) bool {
	return pkgPath == r.root || strings.HasPrefix(pkgPath, r.root+"/")
}

// QualifiedName returns the realm-independent name of t. It fails for
// unnamed types and for types declared outside the root.
func (r *Realm) QualifiedName(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrTypeRequired
	}
	if t.Name() == "" {
		return "", fmt.Errorf("%w: %s", ErrTypeUnnamed, t)
	}
	if !r.Contains(t.PkgPath()) {
		return "", fmt.Errorf("%w: %s not under %s", ErrTypeOutsideRoot, t, r.root)
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(t.PkgPath(), r.root), "/")
	if rel == "" {
		return t.Name(), nil
	}
	return rel + "." + t.Name(), nil
}

// Register adds named domain types to the realm. Interface types are usually
// passed as reflect.TypeFor[I]().
func (r *Realm) Register(types ...reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: %s", ErrRealmSealed, r.name)
	}
	for _, t := range types {
		name, err := r.QualifiedName(t)
		if err != nil {
			return err
		}
		if _, exists := r.types[name]; exists {
			return fmt.Errorf("%w: %s in realm %s", ErrTypeAlreadyRegistered, name, r.name)
		}
		r.types[name] = t
	}
	return nil
}

// RegisterEnum declares the complete constant set of one enum type. All
// constants must share a named type declared under the root.
func (r *Realm) RegisterEnum(constants ...any) error {
	enum, err := newEnum(constants)
	if err != nil {
		return err
	}
	name, err := r.QualifiedName(enum.typ)
	if err != nil {
		return err
	}
	enum.name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: %s", ErrRealmSealed, r.name)
	}
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("%w: %s in realm %s", ErrTypeAlreadyRegistered, name, r.name)
	}
	r.types[name] = enum.typ
	r.enums[name] = enum
	return nil
}

// Lookup loads a domain type by qualified name.
func (r *Realm) Lookup(name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeTypeLoad,
			fmt.Sprintf("type %s not found in realm %s", name, r.name),
			map[string]string{"type": name, "realm": r.name})
	}
	return t, nil
}

// Enum loads an enum by qualified name.
func (r *Realm) Enum(name string) (*Enum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enum, ok := r.enums[name]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeTypeLoad,
			fmt.Sprintf("enum %s not found in realm %s", name, r.name),
			map[string]string{"type": name, "realm": r.name})
	}
	return enum, nil
}

// IsEnum reports whether t is a registered enum of this realm.
func (r *Realm) IsEnum(t reflect.Type) bool {
	name, err := r.QualifiedName(t)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	enum, ok := r.enums[name]
	return ok && enum.typ == t
}

// Names returns the registered qualified names in sorted order.
func (r *Realm) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.types))
}

func (r *Realm) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}
