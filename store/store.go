// Package store caches UDF modules loaded from durable storage.
//
// The layout is one file per module under a single directory, named by the
// module's numeric id with a fixed suffix, containing raw wasm bytes. Once a
// module is loaded it is reused for the life of the process; a later change
// to the backing file is not observed (known limitation of the cache).
package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/engine"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
)

const (
	// DefaultDir is the fixed local directory modules are stored under.
	DefaultDir = ".wasm_store"

	moduleSuffix = ".wasm"
)

// Store is an in-memory cache over durable module storage, keyed by numeric
// id. There is no eviction: UDF module counts are expected to be small.
// Safe for concurrent use.
type Store struct {
	log     *zap.Logger
	modules map[uint64]*engine.Module
	dir     string
	mu      sync.RWMutex
}

// Init opens a store at the default location.
func Init(logger *zap.Logger) (*Store, error) {
	return Open(DefaultDir, logger)
}

// Open ensures dir exists (creating it is idempotent) and returns an empty
// cache over it.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.StorageIO(fmt.Sprintf("create store directory %s", dir), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:     dir,
		log:     logger,
		modules: make(map[uint64]*engine.Module),
	}, nil
}

// Get returns the module stored under id, reading it from durable storage on
// first touch. Concurrent first-touch on the same id may read the file more
// than once, but exactly one loaded module wins the cache slot and every
// caller observes it from then on.
func (s *Store) Get(id uint64) (*engine.Module, error) {
	s.mu.RLock()
	m, ok := s.modules[id]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.ModuleNotFound(id)
		}
		return nil, errors.StorageIO(fmt.Sprintf("read module %d", id), err)
	}

	m = engine.NewModule(moduleName(id), data)

	s.mu.Lock()
	if existing, ok := s.modules[id]; ok {
		m = existing
	} else {
		s.modules[id] = m
	}
	s.mu.Unlock()

	s.log.Debug("module loaded",
		zap.Uint64("id", id),
		zap.Int("bytes", len(m.Bytes)))
	return m, nil
}

// Put persists wasm under id and populates the cache. An id that is already
// loaded in memory is refused: stored bytes are immutable for the process
// lifetime, and refusing the overwrite keeps the cache and the directory in
// sync.
func (s *Store) Put(id uint64, wasm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.modules[id]; ok {
		return errors.InvalidInput(errors.PhaseStore,
			fmt.Sprintf("module %d is already loaded; stored modules are immutable", id))
	}

	if err := os.WriteFile(s.path(id), wasm, 0o644); err != nil {
		return errors.StorageIO(fmt.Sprintf("write module %d", id), err)
	}
	s.modules[id] = engine.NewModule(moduleName(id), wasm)

	s.log.Info("module stored",
		zap.Uint64("id", id),
		zap.Int("bytes", len(wasm)))
	return nil
}

// List returns the ids present in durable storage, sorted ascending. Files
// that do not follow the <id>.wasm naming are skipped.
func (s *Store) List() ([]uint64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.StorageIO(fmt.Sprintf("list store directory %s", s.dir), err)
	}

	var ids []uint64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(e.Name(), moduleSuffix)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(stem, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Len reports how many modules are currently cached in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

func (s *Store) path(id uint64) string {
	return filepath.Join(s.dir, strconv.FormatUint(id, 10)+moduleSuffix)
}

func moduleName(id uint64) string {
	return "udf-" + strconv.FormatUint(id, 10)
}
