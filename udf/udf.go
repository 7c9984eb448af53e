// Package udf bridges the query evaluator's row/column calling convention to
// the wasm execution engine.
//
// A ScalarFunc pulls one input value out of the row, stringifies it, invokes
// the module's entry point and projects the first result back into a scalar.
// NULL handling follows SQL propagation: a NULL input, a missing module, an
// empty result vector or a result of the wrong kind all evaluate to NULL
// rather than failing the query; every other engine or store failure
// propagates to the surrounding evaluation layer.
package udf

import (
	"context"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/engine"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/store"
)

// EvalContext is the slice of evaluator state the adapter needs: where
// modules come from and what executes them.
type EvalContext struct {
	Store  *store.Store
	Engine *engine.Engine
}

// Expression is the minimal evaluator surface consumed here. The surrounding
// engine's expression tree satisfies it; Column is the leaf used in tests.
type Expression interface {
	// EvalInt64 evaluates against row, returning the value, whether it is
	// NULL, and any evaluation failure.
	EvalInt64(ctx context.Context, ec *EvalContext, row []Datum) (int64, bool, error)
}
