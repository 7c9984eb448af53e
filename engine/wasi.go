package engine

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// capabilitySession is the ephemeral OS-capability bootstrap for a single
// call: a program name plus the argument vector the guest sees as argv. It
// lives for the duration of one Execute and is never cached; the per-call
// runtime it installs into is torn down with it.
type capabilitySession struct {
	prog string
	argv []string
}

func newCapabilitySession(prog string, argv []string) *capabilitySession {
	return &capabilitySession{prog: prog, argv: argv}
}

// install instantiates the wasi_snapshot_preview1 host module into the
// per-call runtime and seeds the guest config with the session's argument
// vector. Stdout and stderr are inherited so the guest can write to the
// host's streams.
func (s *capabilitySession) install(ctx context.Context, r wazero.Runtime, cfg wazero.ModuleConfig) (wazero.ModuleConfig, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return nil, err
	}

	args := make([]string, 0, len(s.argv)+1)
	args = append(args, s.prog)
	args = append(args, s.argv...)

	return cfg.
		WithArgs(args...).
		WithStdout(os.Stdout).
		WithStderr(os.Stderr), nil
}
