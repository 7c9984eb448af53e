// Package wasmtest holds tiny hand-assembled wasm binaries shared by the
// package tests. Each fixture is written out section by section so the
// binaries stay auditable without a toolchain.
package wasmtest

// Doubler exports `udf_main: (param i64) (result i64)` returning its input
// times two.
var Doubler = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic, version
	// type: (i64) -> (i64)
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7e, 0x01, 0x7e,
	// function: 1 func of type 0
	0x03, 0x02, 0x01, 0x00,
	// export: "udf_main" -> func 0
	0x07, 0x0c, 0x01, 0x08, 0x75, 0x64, 0x66, 0x5f, 0x6d, 0x61, 0x69, 0x6e, 0x00, 0x00,
	// code: local.get 0; i64.const 2; i64.mul
	0x0a, 0x09, 0x01, 0x07, 0x00, 0x20, 0x00, 0x42, 0x02, 0x7e, 0x0b,
}

// I64ToF64 exports `udf_main: (param i64) (result f64)` converting the input
// to a float.
var I64ToF64 = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i64) -> (f64)
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7e, 0x01, 0x7c,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x0c, 0x01, 0x08, 0x75, 0x64, 0x66, 0x5f, 0x6d, 0x61, 0x69, 0x6e, 0x00, 0x00,
	// code: local.get 0; f64.convert_i64_s
	0x0a, 0x07, 0x01, 0x05, 0x00, 0x20, 0x00, 0xb9, 0x0b,
}

// Mixed exports `udf_main: (param i32 i64 f32 f64) (result f64)` returning
// its last parameter, one parameter per supported kind.
var Mixed = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i32 i64 f32 f64) -> (f64)
	0x01, 0x09, 0x01, 0x60, 0x04, 0x7f, 0x7e, 0x7d, 0x7c, 0x01, 0x7c,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x0c, 0x01, 0x08, 0x75, 0x64, 0x66, 0x5f, 0x6d, 0x61, 0x69, 0x6e, 0x00, 0x00,
	// code: local.get 3
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x20, 0x03, 0x0b,
}

// Empty is a structurally valid module with no sections and therefore no
// exports at all.
var Empty = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
}

// MemoryExport exports one function under "run" and a linear memory under
// "mem", so "mem" resolves to an export that is not callable.
var MemoryExport = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: () -> ()
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	// memory: 1 page min
	0x05, 0x03, 0x01, 0x00, 0x01,
	// exports: "run" -> func 0, "mem" -> memory 0
	0x07, 0x0d, 0x02,
	0x03, 0x72, 0x75, 0x6e, 0x00, 0x00,
	0x03, 0x6d, 0x65, 0x6d, 0x02, 0x00,
	// code: empty body
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
}

// Trap exports `udf_main: () -> ()` whose body is a single unreachable.
var Trap = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x0c, 0x01, 0x08, 0x75, 0x64, 0x66, 0x5f, 0x6d, 0x61, 0x69, 0x6e, 0x00, 0x00,
	// code: unreachable
	0x0a, 0x05, 0x01, 0x03, 0x00, 0x00, 0x0b,
}

// ExitArg imports wasi proc_exit and exports `udf_main: (param i32)` that
// exits the guest with its argument as the code.
var ExitArg = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i32) -> ()
	0x01, 0x05, 0x01, 0x60, 0x01, 0x7f, 0x00,
	// import: wasi_snapshot_preview1.proc_exit
	0x02, 0x24, 0x01,
	0x16, 0x77, 0x61, 0x73, 0x69, 0x5f, 0x73, 0x6e, 0x61, 0x70, 0x73, 0x68, 0x6f, 0x74,
	0x5f, 0x70, 0x72, 0x65, 0x76, 0x69, 0x65, 0x77, 0x31,
	0x09, 0x70, 0x72, 0x6f, 0x63, 0x5f, 0x65, 0x78, 0x69, 0x74,
	0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	// export: "udf_main" -> func 1 (0 is the import)
	0x07, 0x0c, 0x01, 0x08, 0x75, 0x64, 0x66, 0x5f, 0x6d, 0x61, 0x69, 0x6e, 0x00, 0x01,
	// code: local.get 0; call 0
	0x0a, 0x08, 0x01, 0x06, 0x00, 0x20, 0x00, 0x10, 0x00, 0x0b,
}

// ExitStart imports wasi proc_exit and exports a parameterless `_start`
// bootstrap that exits with code 3.
var ExitStart = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// types: (i32) -> (), () -> ()
	0x01, 0x08, 0x02, 0x60, 0x01, 0x7f, 0x00, 0x60, 0x00, 0x00,
	0x02, 0x24, 0x01,
	0x16, 0x77, 0x61, 0x73, 0x69, 0x5f, 0x73, 0x6e, 0x61, 0x70, 0x73, 0x68, 0x6f, 0x74,
	0x5f, 0x70, 0x72, 0x65, 0x76, 0x69, 0x65, 0x77, 0x31,
	0x09, 0x70, 0x72, 0x6f, 0x63, 0x5f, 0x65, 0x78, 0x69, 0x74,
	0x00, 0x00,
	0x03, 0x02, 0x01, 0x01,
	// export: "_start" -> func 1
	0x07, 0x0a, 0x01, 0x06, 0x5f, 0x73, 0x74, 0x61, 0x72, 0x74, 0x00, 0x01,
	// code: i32.const 3; call 0
	0x0a, 0x08, 0x01, 0x06, 0x00, 0x41, 0x03, 0x10, 0x00, 0x0b,
}

// StartNop exports a `_start` bootstrap with an empty body and no imports.
var StartNop = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x0a, 0x01, 0x06, 0x5f, 0x73, 0x74, 0x61, 0x72, 0x74, 0x00, 0x00,
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
}

// Malformed has a valid magic but a truncated section, so compilation fails.
var Malformed = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x06, 0x01, // type section claims 6 bytes, body cut short
}
