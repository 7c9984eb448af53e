package engine

import (
	"strconv"

	"github.com/tetratelabs/wazero/api"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
)

// Kind identifies one of the four numeric kinds that cross the engine
// boundary. No string, boolean or composite kind exists here.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindInt64
	KindFloat32
	KindFloat64
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the four supported numeric kinds. Accessors
// return ok=false when the value holds a different kind.
type Value struct {
	bits uint64
	kind Kind
}

func Int32Value(v int32) Value {
	return Value{kind: KindInt32, bits: api.EncodeI32(v)}
}

func Int64Value(v int64) Value {
	return Value{kind: KindInt64, bits: api.EncodeI64(v)}
}

func Float32Value(v float32) Value {
	return Value{kind: KindFloat32, bits: api.EncodeF32(v)}
}

func Float64Value(v float64) Value {
	return Value{kind: KindFloat64, bits: api.EncodeF64(v)}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return api.DecodeI32(v.bits), true
}

func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return int64(v.bits), true
}

func (v Value) Float32() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return api.DecodeF32(v.bits), true
}

func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return api.DecodeF64(v.bits), true
}

func (v Value) String() string {
	switch v.kind {
	case KindInt32:
		return "i32(" + strconv.FormatInt(int64(api.DecodeI32(v.bits)), 10) + ")"
	case KindInt64:
		return "i64(" + strconv.FormatInt(int64(v.bits), 10) + ")"
	case KindFloat32:
		return "f32(" + strconv.FormatFloat(float64(api.DecodeF32(v.bits)), 'g', -1, 32) + ")"
	case KindFloat64:
		return "f64(" + strconv.FormatFloat(api.DecodeF64(v.bits), 'g', -1, 64) + ")"
	default:
		return "unknown"
	}
}

// coerceArgs parses each string argument into the exact numeric kind its
// parameter declares and returns the encoded call stack. The argument count
// is assumed to already match len(params).
func coerceArgs(params []api.ValueType, args []string) ([]uint64, error) {
	stack := make([]uint64, len(params))
	for i, vt := range params {
		switch vt {
		case api.ValueTypeI32:
			n, err := strconv.ParseInt(args[i], 10, 32)
			if err != nil {
				return nil, &errors.ConversionError{Index: i, Arg: args[i], Target: KindInt32.String()}
			}
			stack[i] = api.EncodeI32(int32(n))
		case api.ValueTypeI64:
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				return nil, &errors.ConversionError{Index: i, Arg: args[i], Target: KindInt64.String()}
			}
			stack[i] = api.EncodeI64(n)
		case api.ValueTypeF32:
			f, err := strconv.ParseFloat(args[i], 32)
			if err != nil {
				return nil, &errors.ConversionError{Index: i, Arg: args[i], Target: KindFloat32.String()}
			}
			stack[i] = api.EncodeF32(float32(f))
		case api.ValueTypeF64:
			f, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return nil, &errors.ConversionError{Index: i, Arg: args[i], Target: KindFloat64.String()}
			}
			stack[i] = api.EncodeF64(f)
		default:
			return nil, errors.Unsupported(
				"parameter " + strconv.Itoa(i) + " has unsupported type " + api.ValueTypeName(vt))
		}
	}
	return stack, nil
}

// decodeResults maps the raw result stack back into tagged values using the
// function's declared result types.
func decodeResults(results []api.ValueType, raw []uint64) ([]Value, error) {
	out := make([]Value, len(results))
	for i, vt := range results {
		switch vt {
		case api.ValueTypeI32:
			out[i] = Value{kind: KindInt32, bits: raw[i]}
		case api.ValueTypeI64:
			out[i] = Value{kind: KindInt64, bits: raw[i]}
		case api.ValueTypeF32:
			out[i] = Value{kind: KindFloat32, bits: raw[i]}
		case api.ValueTypeF64:
			out[i] = Value{kind: KindFloat64, bits: raw[i]}
		default:
			return nil, errors.Unsupported(
				"result " + strconv.Itoa(i) + " has unsupported type " + api.ValueTypeName(vt))
		}
	}
	return out, nil
}
