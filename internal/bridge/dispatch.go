package bridge

import (
	"context"
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

// resolvedMethod is a target method matched against an interface method, with
// its parameter types already translated into the anchor realm.
type resolvedMethod struct {
	index    int
	params   []reflect.Type
	variadic bool
}

type methodKey struct {
	target reflect.Type
	iface  reflect.Type
	method string
	realm  *realm.Realm
}

// dispatch resolves, translates, invokes and translates back, in that order,
// so nothing reaches the target before resolution and argument translation
// have succeeded.
func (b *Bridge) dispatch(p *Proxy, declared reflect.Method, args []any) ([]any, error) {
	resolved, err := b.resolve(p.target.Type(), p.iface, declared, p.anchor.Realm)
	if err != nil {
		return nil, err
	}
	call := new(callScope)
	in, err := b.translateArgs(resolved, args, p.anchor, call)
	if err != nil {
		return nil, err
	}
	results, err := invoke(p.target.Method(resolved.index), in, resolved.variadic, call)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(results))
	for i, result := range results {
		bridged, err := b.Value(result, declared.Type.Out(i), p.anchor)
		if err != nil {
			return nil, err
		}
		out[i] = valueInterface(bridged)
	}
	return out, nil
}

// resolve finds the target method matching declared. Successful resolutions
// are cached; concurrent first resolutions of the same key share one lookup.
func (b *Bridge) resolve(target, iface reflect.Type, declared reflect.Method, r *realm.Realm) (*resolvedMethod, error) {
	key := methodKey{target: target, iface: iface, method: declared.Name, realm: r}
	if cached, ok := b.methods.Load(key); ok {
		return cached.(*resolvedMethod), nil
	}
	flightKey := fmt.Sprintf("%p|%p|%s|%p", target, iface, declared.Name, r)
	v, err, _ := b.group.Do(flightKey, func() (any, error) {
		resolved, err := b.resolveMethod(target, declared, r)
		if err != nil {
			return nil, err
		}
		b.methods.Store(key, resolved)
		return resolved, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*resolvedMethod), nil
}

func (b *Bridge) resolveMethod(target reflect.Type, declared reflect.Method, r *realm.Realm) (*resolvedMethod, error) {
	m, ok := target.MethodByName(declared.Name)
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeMethodResolution,
			fmt.Sprintf("%s has no method %s", target, declared.Name),
			map[string]string{"target": target.String(), "method": declared.Name})
	}
	want := declared.Type
	params := make([]reflect.Type, want.NumIn())
	for i := range params {
		translated, err := b.catalog.Translate(want.In(i), r)
		if err != nil {
			return nil, err
		}
		params[i] = translated
	}

	// m.Type carries the receiver as its first parameter.
	got := m.Type
	mismatch := func(detail string) error {
		return apperrors.WithMetadata(apperrors.CodeMethodResolution,
			fmt.Sprintf("%s.%s%s does not match %s: %s", target, m.Name, trimFunc(got), want, detail),
			map[string]string{"target": target.String(), "method": declared.Name})
	}
	if got.NumIn()-1 != len(params) {
		return nil, mismatch(fmt.Sprintf("want %d parameters, have %d", len(params), got.NumIn()-1))
	}
	if got.IsVariadic() != want.IsVariadic() {
		return nil, mismatch("variadic mismatch")
	}
	for i, param := range params {
		if got.In(i+1) != param {
			return nil, mismatch(fmt.Sprintf("parameter %d is %s, want %s", i, got.In(i+1), param))
		}
	}
	if got.NumOut() != want.NumOut() {
		return nil, mismatch(fmt.Sprintf("want %d results, have %d", want.NumOut(), got.NumOut()))
	}
	for i := range want.NumOut() {
		result, err := b.catalog.Translate(want.Out(i), r)
		if err != nil {
			return nil, err
		}
		if !got.Out(i).AssignableTo(result) {
			return nil, mismatch(fmt.Sprintf("result %d is %s, want %s", i, got.Out(i), result))
		}
	}
	return &resolvedMethod{index: m.Index, params: params, variadic: got.IsVariadic()}, nil
}

// translateArgs accepts four call shapes: no arguments, platform-only
// arguments, a single callback, and a single enum. Anything else is rejected
// rather than partially translated.
//
// Stubs pass a variadic tail as one slice argument.
func (b *Bridge) translateArgs(m *resolvedMethod, args []any, anchor Anchor, call *callScope) ([]reflect.Value, error) {
	if len(args) != len(m.params) {
		return nil, unsupported("want %d arguments, have %d", len(m.params), len(args))
	}
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) == 1 {
		arg := reflect.ValueOf(args[0])
		if isCallback(arg) {
			adapted, err := b.adaptCallback(arg, m.params[0], anchor, call)
			if err != nil {
				return nil, err
			}
			return []reflect.Value{adapted}, nil
		}
		if arg.IsValid() && b.catalog.Classify(arg.Type()) == realm.DomainEnum {
			adapted, err := b.catalog.AdaptEnum(arg, anchor.Realm)
			if err != nil {
				return nil, err
			}
			if !adapted.Type().AssignableTo(m.params[0]) {
				return nil, unsupported("enum %s is not assignable to %s", adapted.Type(), m.params[0])
			}
			return []reflect.Value{adapted}, nil
		}
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v := reflect.ValueOf(arg)
		param := m.params[i]
		if !v.IsValid() {
			in[i] = reflect.Zero(param)
			continue
		}
		if kind := b.catalog.Classify(v.Type()); kind != realm.Platform {
			return nil, unsupported("argument %d of type %s is a %s; only platform arguments may accompany others", i, v.Type(), kind)
		}
		if !v.Type().AssignableTo(param) {
			return nil, unsupported("argument %d of type %s is not assignable to %s", i, v.Type(), param)
		}
		in[i] = v
	}
	return in, nil
}

func invoke(fn reflect.Value, in []reflect.Value, variadic bool, call *callScope) (out []reflect.Value, err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if cb, ok := recovered.(callbackPanic); ok && cb.call == call {
			out, err = nil, cb.err
			return
		}
		out, err = nil, invocationError(recovered)
	}()
	if variadic {
		return fn.CallSlice(in), nil
	}
	return fn.Call(in), nil
}

func (b *Bridge) startSpan(p *Proxy, method string, args []any) trace.Span {
	ctx := context.Background()
	for _, arg := range args {
		if c, ok := arg.(context.Context); ok && c != nil {
			ctx = c
			break
		}
	}
	_, span := b.tracer.Start(ctx, "bridge "+p.iface.String()+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("bridge.interface", p.iface.String()),
			attribute.String("bridge.method", method),
			attribute.String("bridge.target", p.target.Type().String()),
			attribute.String("bridge.realm", p.anchor.Realm.Name()),
		))
	return span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.RootCode(err)))
	}
	span.End()
}

func valueInterface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return nil
	}
	return v.Interface()
}

func trimFunc(t reflect.Type) string {
	s := t.String()
	if len(s) > 4 && s[:4] == "func" {
		return s[4:]
	}
	return s
}
