package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in the call pipeline the error occurred
type Phase string

const (
	PhaseStore   Phase = "store"   // durable storage and cache
	PhaseCompile Phase = "compile" // bytecode compilation
	PhaseLink    Phase = "link"    // import resolution and instantiation
	PhaseResolve Phase = "resolve" // export lookup
	PhaseConvert Phase = "convert" // argument coercion
	PhaseInvoke  Phase = "invoke"  // guest function execution
)

// Kind categorizes the error
type Kind string

const (
	KindStorageIO         Kind = "storage_io"
	KindNotFound          Kind = "not_found"
	KindInvalidModule     Kind = "invalid_module"
	KindInstantiation     Kind = "instantiation"
	KindExportNotFound    Kind = "export_not_found"
	KindExportNotFunction Kind = "export_not_function"
	KindArityMismatch     Kind = "arity_mismatch"
	KindConversion        Kind = "conversion"
	KindUnsupported       Kind = "unsupported"
	KindTrap              Kind = "trap"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Two Errors match when their Phase and Kind agree.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// StorageIO creates a durable-read failure error
func StorageIO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindStorageIO,
		Detail: detail,
		Cause:  cause,
	}
}

// ModuleNotFound creates an error for an id with no stored module
func ModuleNotFound(id uint64) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no module stored under id %d", id),
	}
}

// Compile creates a bytecode compilation error
func Compile(cause error) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidModule,
		Detail: "compile module",
		Cause:  cause,
	}
}

// Instantiation creates a link-time failure error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLink,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// NoExportedFunctions reports a module with nothing callable at all,
// distinct from a specific name being absent.
func NoExportedFunctions() *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindExportNotFound,
		Detail: "module has no exported functions to call",
	}
}

// ExportNotFound reports that the requested export name is absent
func ExportNotFound(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindExportNotFound,
		Detail: fmt.Sprintf("no export %q found in module", name),
	}
}

// ExportNotFunction reports an export that exists but is not callable
func ExportNotFunction(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindExportNotFunction,
		Detail: fmt.Sprintf("export %q found, but is not a function", name),
	}
}

// Unsupported creates an error for a declared type outside the supported set
func Unsupported(detail string) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindUnsupported,
		Detail: detail,
	}
}

// Trap wraps a runtime fault raised inside the guest call
func Trap(endpoint string, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindTrap,
		Detail: fmt.Sprintf("call %q", endpoint),
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// IsModuleNotFound reports whether err is a store miss
func IsModuleNotFound(err error) bool {
	return stderrors.Is(err, &Error{Phase: PhaseStore, Kind: KindNotFound})
}

// ArityMismatchError is returned when the argument count does not match the
// target function's declared parameter count. No instantiation has happened
// when it is returned.
type ArityMismatchError struct {
	Args     []string
	Expected int
	Received int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("function expected %d arguments, but received %d: %q",
		e.Expected, e.Received, strings.Join(e.Args, " "))
}

// Is reports whether target matches this error type
func (e *ArityMismatchError) Is(target error) bool {
	_, ok := target.(*ArityMismatchError)
	return ok
}

// ConversionError is returned when a string argument cannot be parsed as the
// numeric kind declared for its position.
type ConversionError struct {
	Arg    string
	Target string
	Index  int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("can't convert argument %d (%q) into a %s", e.Index, e.Arg, e.Target)
}

// Is reports whether target matches this error type
func (e *ConversionError) Is(target error) bool {
	_, ok := target.(*ConversionError)
	return ok
}

// ExitError is returned when the guest requests process exit through its
// capability session. The library never terminates the host itself; the
// caller decides whether to mirror the exit.
type ExitError struct {
	Code uint32
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("module requested process exit with code %d", e.Code)
}

// Is reports whether target matches this error type
func (e *ExitError) Is(target error) bool {
	_, ok := target.(*ExitError)
	return ok
}

// ExitCode extracts a guest-requested exit code from err, if present
func ExitCode(err error) (uint32, bool) {
	var exit *ExitError
	if stderrors.As(err, &exit) {
		return exit.Code, true
	}
	return 0, false
}
