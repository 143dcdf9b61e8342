package bridge

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	apperrors "github.com/louisbranch/realmbridge/internal/platform/errors"
)

// Sentinels for errors.Is. They match any bridge error carrying the same code
// anywhere in the chain.
var (
	ErrIncompatibleTarget  = apperrors.New(apperrors.CodeIncompatibleTarget, "incompatible target")
	ErrMethodResolution    = apperrors.New(apperrors.CodeMethodResolution, "method resolution failed")
	ErrTypeLoad            = realm.ErrTypeLoad
	ErrUnsupportedArgument = apperrors.New(apperrors.CodeUnsupportedArgument, "unsupported argument")
	ErrInvocation          = apperrors.New(apperrors.CodeInvocation, "invocation failed")
	ErrCallFailed          = apperrors.New(apperrors.CodeCallFailed, "bridged call failed")
)

func callError(p *Proxy, method string, args []any, cause error) error {
	target := describeTarget(p.target)
	arguments := describeArgs(args)
	return apperrors.WrapWithMetadata(apperrors.CodeCallFailed,
		fmt.Sprintf("failed to invoke %s on %s with args %s", method, target, arguments),
		map[string]string{
			"method": method,
			"target": target,
			"args":   arguments,
			"realm":  p.anchor.Realm.Name(),
		},
		cause)
}

func invocationError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return apperrors.Wrap(apperrors.CodeInvocation, "target method failed", err)
	}
	return apperrors.Wrap(apperrors.CodeInvocation, "target method failed", fmt.Errorf("panic: %v", recovered))
}

func unsupported(format string, args ...any) error {
	return apperrors.Newf(apperrors.CodeUnsupportedArgument, format, args...)
}

// signature renders iface.Method(params) results, e.g.
// scanapi.Extension.SetProjectID(string).
func signature(iface reflect.Type, m reflect.Method) string {
	if m.Type == nil {
		return iface.String() + "." + m.Name
	}
	return iface.String() + "." + m.Name + strings.TrimPrefix(m.Type.String(), "func")
}

// describeTarget falls back to the target's type when its String method
// panics.
func describeTarget(v reflect.Value) (desc string) {
	if !v.IsValid() {
		return "<nil>"
	}
	desc = v.Type().String()
	s, ok := v.Interface().(fmt.Stringer)
	if !ok {
		return desc
	}
	defer func() {
		if recover() != nil {
			desc = v.Type().String()
		}
	}()
	return fmt.Sprintf("%s(%s)", desc, s.String())
}

func describeArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if t := reflect.TypeOf(arg); t != nil && t.Kind() == reflect.Func {
			parts[i] = t.String()
			continue
		}
		parts[i] = fmt.Sprintf("%v", arg)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
