package engine

import (
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

const (
	// DefaultEntrypoint is the exported function a scalar UDF module is
	// expected to provide.
	DefaultEntrypoint = "udf_main"

	// startFunction is the canonical bootstrap entry of command-style
	// modules.
	startFunction = "_start"
)

// Module is an immutable wasm payload plus the name used as the guest's
// program name. Bytes must not be mutated after construction; a Module may
// be shared freely across concurrent calls.
type Module struct {
	Name       string
	Entrypoint string
	Bytes      []byte

	wasiOnce     sync.Once
	wasiRequired bool
}

// NewModule wraps raw module bytes with the default entry-point name.
func NewModule(name string, wasm []byte) *Module {
	return &Module{
		Name:       name,
		Entrypoint: DefaultEntrypoint,
		Bytes:      wasm,
	}
}

// requiresWASI reports whether the module imports the OS-capability
// bootstrap. The classification is one-shot: computed from the first
// compiled representation and cached for the module's lifetime.
func (m *Module) requiresWASI(compiled wazero.CompiledModule) bool {
	m.wasiOnce.Do(func() {
		for _, def := range compiled.ImportedFunctions() {
			moduleName, _, _ := def.Import()
			if moduleName == wasi_snapshot_preview1.ModuleName {
				m.wasiRequired = true
				return
			}
		}
	})
	return m.wasiRequired
}
