package bridge

import (
	"reflect"
)

// callbackPanic carries a bridge failure raised inside a translated callback
// out through the target's frames to the dispatcher that invoked it. Only the
// call that translated the callback unwraps it. A target that stores the
// callback and runs it later sees the panic itself, and if that happens inside
// another bridged call it is reported as an INVOCATION failure of that call.
type callbackPanic struct {
	err  error
	call *callScope
}

// callScope identifies one dispatch.
type callScope struct{ _ byte }

func (p callbackPanic) Error() string { return "bridge callback: " + p.err.Error() }

func (p callbackPanic) Unwrap() error { return p.err }

func isCallback(v reflect.Value) bool {
	if !v.IsValid() || v.Kind() != reflect.Func {
		return false
	}
	t := v.Type()
	return t.NumIn() == 1 && !t.IsVariadic() && t.NumOut() <= 1
}

// adaptCallback builds a function of the target's parameter type that bridges
// its argument into the user's realm before calling fn.
func (b *Bridge) adaptCallback(fn reflect.Value, want reflect.Type, anchor Anchor, call *callScope) (reflect.Value, error) {
	user := fn.Type()
	if want.Kind() != reflect.Func || want.NumIn() != 1 || want.IsVariadic() {
		return reflect.Value{}, unsupported("callback %s cannot be passed as %s", user, want)
	}
	if want.NumOut() != user.NumOut() {
		return reflect.Value{}, unsupported("callback %s returns %d values, target expects %d", user, user.NumOut(), want.NumOut())
	}
	if fn.IsNil() {
		return reflect.Zero(want), nil
	}
	if user.AssignableTo(want) {
		return fn, nil
	}

	param := user.In(0)
	return reflect.MakeFunc(want, func(in []reflect.Value) []reflect.Value {
		arg, err := b.Value(in[0], param, anchor)
		if err != nil {
			panic(callbackPanic{err: err, call: call})
		}
		if !arg.Type().AssignableTo(param) {
			panic(callbackPanic{err: unsupported("callback argument %s is not assignable to %s", arg.Type(), param), call: call})
		}
		out := fn.Call([]reflect.Value{arg})
		for i, result := range out {
			if !result.Type().AssignableTo(want.Out(i)) {
				panic(callbackPanic{
					err:  unsupported("callback result %s is not assignable to %s", result.Type(), want.Out(i)),
					call: call,
				})
			}
			converted := reflect.New(want.Out(i)).Elem()
			converted.Set(result)
			out[i] = converted
		}
		return out
	}), nil
}
