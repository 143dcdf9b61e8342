package bridge

import (
	"fmt"
	"reflect"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

// Invoker forwards a named method call. Generated stubs hold one.
type Invoker interface {
	// Invoke calls method with args and returns its bridged results.
	Invoke(method string, args ...any) ([]any, error)
	// MustInvoke is Invoke for methods that cannot return an error; a failure
	// panics with the bridge error.
	MustInvoke(method string, args ...any) []any
}

// Proxy forwards calls made through iface to target.
type Proxy struct {
	bridge *Bridge
	iface  reflect.Type
	target reflect.Value
	anchor Anchor
}

var _ Invoker = (*Proxy)(nil)

// NewProxy returns a value implementing iface whose methods forward to target.
// Nothing about target is validated here; an incompatible target fails on the
// first call that cannot be resolved. Use Check for an eager test.
func (b *Bridge) NewProxy(target any, iface reflect.Type, anchor Anchor) (any, error) {
	return b.newProxy(reflect.ValueOf(target), iface, anchor)
}

func (b *Bridge) newProxy(target reflect.Value, iface reflect.Type, anchor Anchor) (any, error) {
	if !target.IsValid() {
		return nil, apperrors.New(apperrors.CodeIncompatibleTarget, "proxy target is required")
	}
	if anchor.Realm == nil {
		return nil, fmt.Errorf("anchor: %w", realm.ErrRealmRequired)
	}
	if iface == nil || iface.Kind() != reflect.Interface {
		return nil, apperrors.Newf(apperrors.CodeTypeLoad, "cannot proxy %s to non-interface type %v", target.Type(), iface)
	}
	stub, err := b.stub(iface)
	if err != nil {
		return nil, err
	}
	return stub(&Proxy{
		bridge: b,
		iface:  iface,
		target: target,
		anchor: anchor,
	}), nil
}

// As proxies target as T, using target as its own anchor. This is the
// anchor-less form: the realm is the one that declares target's type.
func As[T any](b *Bridge, target any) (T, error) {
	var zero T
	anchor, err := b.AnchorFor(target)
	if err != nil {
		return zero, err
	}
	return AsAnchored[T](b, target, anchor)
}

// AsAnchored proxies target as T within an existing call chain.
func AsAnchored[T any](b *Bridge, target any, anchor Anchor) (T, error) {
	var zero T
	proxy, err := b.NewProxy(target, reflect.TypeFor[T](), anchor)
	if err != nil {
		return zero, err
	}
	typed, ok := proxy.(T)
	if !ok {
		return zero, apperrors.Newf(apperrors.CodeTypeLoad, "stub for %s returned %T", reflect.TypeFor[T](), proxy)
	}
	return typed, nil
}

// Interface returns the interface type the proxy satisfies.
func (p *Proxy) Interface() reflect.Type { return p.iface }

// Target returns the object calls are forwarded to.
func (p *Proxy) Target() any { return p.target.Interface() }

// Anchor returns the anchor of the proxy's call chain.
func (p *Proxy) Anchor() Anchor { return p.anchor }

func (p *Proxy) String() string {
	return fmt.Sprintf("proxy[%s -> %s]", p.iface, p.target.Type())
}

// Invoke forwards method to the target. Any failure is returned as a single
// BRIDGE_CALL_FAILED error naming the method, the target and the arguments,
// with the underlying failure as its cause.
func (p *Proxy) Invoke(method string, args ...any) (out []any, err error) {
	declared, ok := p.iface.MethodByName(method)
	sig := signature(p.iface, declared)
	if !ok {
		sig = p.iface.String() + "." + method
	}

	span := p.bridge.startSpan(p, method, args)
	defer func() {
		endSpan(span, err)
	}()

	if !ok {
		err = apperrors.Newf(apperrors.CodeMethodResolution, "%s declares no method %s", p.iface, method)
	} else {
		out, err = p.bridge.dispatch(p, declared, args)
	}
	if err != nil {
		err = callError(p, sig, args, err)
		p.bridge.logf("bridge: %v", err)
		return nil, err
	}
	return out, nil
}

// MustInvoke forwards method and panics with the bridge error on failure.
func (p *Proxy) MustInvoke(method string, args ...any) []any {
	out, err := p.Invoke(method, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Out returns result i of a bridged call as T. Missing or nil results yield
// the zero value. A result of another type panics with a TYPE_LOAD error.
func Out[T any](out []any, i int) T {
	var zero T
	if i < 0 || i >= len(out) || out[i] == nil {
		return zero
	}
	v, ok := out[i].(T)
	if !ok {
		panic(apperrors.Newf(apperrors.CodeTypeLoad, "result %d is %T, want %s", i, out[i], reflect.TypeFor[T]()))
	}
	return v
}
