// Package engine executes one exported function of a wasm UDF module per
// call, on top of wazero.
//
// # Call shape
//
//	eng := engine.New()
//	mod := engine.NewModule("udf-1", wasmBytes)
//	results, err := eng.Execute(ctx, mod, mod.Entrypoint, []string{"21"})
//
// Arguments cross the boundary as strings and are coerced into the numeric
// kind each parameter declares; exactly four kinds are supported (i32, i64,
// f32, f64). Results come back as a []Value tagged union.
//
// # Isolation
//
// The engine holds no state across calls. Every Execute compiles and
// instantiates the module in a fresh wazero runtime that is torn down when
// the call returns. This trades throughput for isolation: a misbehaving call
// cannot leak instances, memories or host state into the next one.
//
// Modules that import wasi_snapshot_preview1 get an ephemeral capability
// session per call: the argument vector becomes WASI argv and stdout/stderr
// are inherited from the host. A guest that requests process exit surfaces
// as *errors.ExitError on the caller's side; the engine never terminates the
// host process.
//
// There is no execution deadline of its own: a guest that loops forever
// blocks the calling goroutine until the supplied context is cancelled.
package engine
