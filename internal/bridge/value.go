package bridge

import (
	"fmt"
	"reflect"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

// Value bridges v into the type a caller declared for it. Nil becomes the zero
// value of declared; platform values (errors included) are returned
// unchanged; enums are adapted by name into the realm that owns declared; any
// other domain value is wrapped in a fresh proxy implementing declared.
//
// A domain value whose declared type no realm owns, such as any, is returned
// unchanged only when it is assignable to declared. Unnamed composites of
// domain types, like []Swatch, are not translated element by element and
// fail with TYPE_LOAD.
func (b *Bridge) Value(v reflect.Value, declared reflect.Type, anchor Anchor) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(declared), nil
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(declared), nil
		}
		v = v.Elem()
	}

	switch b.catalog.Classify(v.Type()) {
	case realm.Platform:
		return v, nil
	case realm.DomainEnum:
		to, ok := b.catalog.Owner(declared)
		if !ok {
			return passThrough(v, declared)
		}
		return b.catalog.AdaptEnum(v, to)
	}

	if isNil(v) {
		return reflect.Zero(declared), nil
	}
	if _, ok := b.catalog.Owner(declared); !ok {
		return passThrough(v, declared)
	}
	proxy, err := b.newProxy(v, declared, anchor)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(proxy), nil
}

func passThrough(v reflect.Value, declared reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(declared) {
		return v, nil
	}
	return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeTypeLoad,
		fmt.Sprintf("cannot bridge %s as %s", v.Type(), declared),
		map[string]string{"type": v.Type().String(), "declared": declared.String()})
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
