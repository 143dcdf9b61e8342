// Package errors provides structured errors for realm bridging.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeIncompatibleTarget reports a target that does not structurally
	// satisfy a required interface.
	CodeIncompatibleTarget Code = "INCOMPATIBLE_TARGET"
	// CodeMethodResolution reports a missing or mismatched target method.
	CodeMethodResolution Code = "METHOD_RESOLUTION"
	// CodeTypeLoad reports a domain type or enum constant missing from a realm.
	CodeTypeLoad Code = "TYPE_LOAD"
	// CodeUnsupportedArgument reports an argument shape the bridge cannot translate.
	CodeUnsupportedArgument Code = "UNSUPPORTED_ARGUMENT"
	// CodeInvocation reports a failure raised by the target method itself.
	CodeInvocation Code = "INVOCATION"
	// CodeCallFailed wraps any failure of a bridged call with call context.
	CodeCallFailed Code = "BRIDGE_CALL_FAILED"
)

// Retryable reports whether a failure with this code may succeed when retried.
// Bridging failures describe incompatible object graphs, so none are.
func (c Code) Retryable() bool {
	return false
}

// Known reports whether c is one of the declared codes.
func (c Code) Known() bool {
	switch c {
	case CodeUnknown,
		CodeIncompatibleTarget,
		CodeMethodResolution,
		CodeTypeLoad,
		CodeUnsupportedArgument,
		CodeInvocation,
		CodeCallFailed:
		return true
	}
	return false
}
