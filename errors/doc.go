// Package errors provides structured error types for the wasm UDF core.
//
// Errors are categorized by Phase (where in the call pipeline the error
// occurred) and Kind (error category). The Error type carries a detail
// message and a cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.ModuleNotFound(7)
//	err := errors.Compile(cause)
//	err := errors.Trap("udf_main", cause)
//
// Failures that need a payload have dedicated types: ArityMismatchError,
// ConversionError and ExitError. All errors implement the standard error
// interface and support errors.Is/As.
package errors
