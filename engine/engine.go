package engine

import (
	"context"
	stderrors "errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
)

// Config holds configuration for engine creation
type Config struct {
	// Logger receives debug-level call tracing. Defaults to a nop logger.
	Logger *zap.Logger

	// MemoryLimitPages sets the maximum guest memory per call in pages
	// (64KB each). 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// Engine executes exported functions of UDF modules. It is stateless across
// calls and safe for concurrent use.
type Engine struct {
	cfg wazero.RuntimeConfig
	log *zap.Logger
}

// New creates an engine with default configuration
func New() *Engine {
	return NewWithConfig(nil)
}

// NewWithConfig creates an engine with custom configuration
func NewWithConfig(cfg *Config) *Engine {
	runtimeCfg := wazero.NewRuntimeConfig()
	log := zap.NewNop()

	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.Logger != nil {
			log = cfg.Logger
		}
	}

	return &Engine{cfg: runtimeCfg, log: log}
}

// Execute compiles m, resolves the export named endpoint, coerces args into
// the parameter kinds it declares and invokes it, returning the result
// vector. Every call runs in a fresh runtime; nothing is retained.
//
// The argument count must match the declared parameter count exactly; an
// ArityMismatchError is returned before any instantiation happens. A guest
// that requests process exit yields *errors.ExitError; any other guest
// failure is wrapped as a trap.
func (e *Engine) Execute(ctx context.Context, m *Module, endpoint string, args []string) ([]Value, error) {
	return e.call(ctx, m, endpoint, args, args)
}

// Run invokes the canonical "_start" bootstrap entry and discards results,
// for pure side-effecting modules. args become the guest's argument vector
// only; "_start" itself is called with no parameters.
func (e *Engine) Run(ctx context.Context, m *Module, args []string) error {
	_, err := e.call(ctx, m, startFunction, nil, args)
	return err
}

// call is the shared execution path. params are coerced into the function's
// declared parameter kinds; argv seeds the capability session when the
// module imports the OS bootstrap.
func (e *Engine) call(ctx context.Context, m *Module, endpoint string, params, argv []string) ([]Value, error) {
	if m == nil {
		return nil, errors.InvalidInput(errors.PhaseCompile, "nil module")
	}

	r := wazero.NewRuntimeWithConfig(ctx, e.cfg)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, m.Bytes)
	if err != nil {
		return nil, errors.Compile(err)
	}

	// Export resolution, arity and coercion all run against the compiled
	// metadata so that a bad call never instantiates the module.
	def, err := resolveExport(compiled, endpoint)
	if err != nil {
		return nil, err
	}

	declared := def.ParamTypes()
	if len(declared) != len(params) {
		return nil, &errors.ArityMismatchError{
			Expected: len(declared),
			Received: len(params),
			Args:     params,
		}
	}

	stack, err := coerceArgs(declared, params)
	if err != nil {
		return nil, err
	}

	modCfg := wazero.NewModuleConfig().
		WithName(m.Name).
		WithStartFunctions() // no auto _start; invocation is explicit

	if m.requiresWASI(compiled) {
		session := newCapabilitySession(m.Name, argv)
		modCfg, err = session.install(ctx, r, modCfg)
		if err != nil {
			return nil, errors.Instantiation(err)
		}
		e.log.Debug("capability session attached",
			zap.String("module", m.Name),
			zap.Strings("argv", argv))
	}

	inst, err := r.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	fn := inst.ExportedFunction(endpoint)
	if fn == nil {
		return nil, errors.ExportNotFound(endpoint)
	}

	e.log.Debug("invoking export",
		zap.String("module", m.Name),
		zap.String("endpoint", endpoint),
		zap.Int("args", len(params)))

	raw, err := fn.Call(ctx, stack...)
	if err != nil {
		return nil, classifyCallError(endpoint, err)
	}

	return decodeResults(def.ResultTypes(), raw)
}

// classifyCallError separates a guest-requested process exit from every
// other runtime fault. The exit is returned, not acted upon: whether to
// mirror it is the embedding server's decision.
func classifyCallError(endpoint string, err error) error {
	var exit *sys.ExitError
	if stderrors.As(err, &exit) {
		return &errors.ExitError{Code: exit.ExitCode()}
	}
	return errors.Trap(endpoint, err)
}

// resolveExport looks the endpoint up in the compiled module's export
// metadata, distinguishing a module with nothing callable at all from one
// where this specific name is absent or bound to a non-function. Compiled
// metadata exposes only function and memory exports; a global or table
// bound to the name reports as absent.
func resolveExport(compiled wazero.CompiledModule, endpoint string) (api.FunctionDefinition, error) {
	fns := compiled.ExportedFunctions()
	if def, ok := fns[endpoint]; ok {
		return def, nil
	}
	if len(fns) == 0 {
		return nil, errors.NoExportedFunctions()
	}
	if _, ok := compiled.ExportedMemories()[endpoint]; ok {
		return nil, errors.ExportNotFunction(endpoint)
	}
	return nil, errors.ExportNotFound(endpoint)
}
