package udf

import (
	"context"
	"strconv"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/engine"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
)

// ScalarFunc invokes the wasm module configured for a SQL function during
// row evaluation. Which Eval variant applies is decided by the UDF
// declaration in force in the surrounding catalog.
type ScalarFunc struct {
	Child    Expression
	ModuleID uint64
}

// EvalFloat64 evaluates the function as its floating-point-typed variant.
func (f *ScalarFunc) EvalFloat64(ctx context.Context, ec *EvalContext, row []Datum) (float64, bool, error) {
	res, null, err := f.invoke(ctx, ec, row)
	if err != nil || null {
		return 0, null, err
	}
	if v, ok := res[0].Float64(); ok {
		return v, false, nil
	}
	return 0, true, nil
}

// EvalInt64 evaluates the function as its integer-typed variant.
func (f *ScalarFunc) EvalInt64(ctx context.Context, ec *EvalContext, row []Datum) (int64, bool, error) {
	res, null, err := f.invoke(ctx, ec, row)
	if err != nil || null {
		return 0, null, err
	}
	if v, ok := res[0].Int64(); ok {
		return v, false, nil
	}
	return 0, true, nil
}

// invoke runs the shared half of both variants: evaluate the sole input
// child, fetch the module, execute, and hand back the raw result vector.
// The bool result reports NULL.
func (f *ScalarFunc) invoke(ctx context.Context, ec *EvalContext, row []Datum) ([]engine.Value, bool, error) {
	in, null, err := f.Child.EvalInt64(ctx, ec, row)
	if err != nil {
		return nil, false, err
	}
	if null {
		return nil, true, nil
	}

	m, err := ec.Store.Get(f.ModuleID)
	if err != nil {
		// Module availability is not fatal at evaluation time.
		if errors.IsModuleNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	res, err := ec.Engine.Execute(ctx, m, m.Entrypoint, []string{strconv.FormatInt(in, 10)})
	if err != nil {
		return nil, false, err
	}
	if len(res) == 0 {
		return nil, true, nil
	}
	return res, false, nil
}
