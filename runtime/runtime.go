// Package runtime wires the module store and execution engine together from
// configuration. It is the entry point an embedding query engine uses.
package runtime

import (
	"go.uber.org/zap"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/config"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/engine"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/store"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/udf"
)

// Runtime bundles a module store and an execution engine.
type Runtime struct {
	store  *store.Store
	engine *engine.Engine
}

// New builds a runtime from cfg. A nil cfg uses defaults; a nil logger is
// replaced with a nop logger.
func New(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := store.Open(cfg.Store.Dir, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	eng := engine.NewWithConfig(&engine.Config{
		MemoryLimitPages: cfg.Engine.MemoryLimitPages,
		Logger:           logger.Named("engine"),
	})

	return &Runtime{store: s, engine: eng}, nil
}

func (r *Runtime) Store() *store.Store {
	return r.store
}

func (r *Runtime) Engine() *engine.Engine {
	return r.engine
}

// EvalContext returns the context handed to scalar functions during row
// evaluation.
func (r *Runtime) EvalContext() *udf.EvalContext {
	return &udf.EvalContext{Store: r.store, Engine: r.engine}
}
