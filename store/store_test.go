package store

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/errors"
	"github.com/tidb-hackathon-2020-wasm-udf/tikv/internal/wasmtest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "store")

	if _, err := Open(dir, nil); err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := Open(dir, nil); err != nil {
		t.Fatalf("second Open on existing dir failed: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(99)
	if !errors.IsModuleNotFound(err) {
		t.Fatalf("expected ModuleNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("cache must stay empty after a miss, has %d entries", s.Len())
	}

	// A second miss behaves the same.
	if _, err := s.Get(99); !errors.IsModuleNotFound(err) {
		t.Fatalf("expected ModuleNotFound on repeat, got %v", err)
	}
}

func TestGet_StorageFailure(t *testing.T) {
	s := openTestStore(t)
	// A directory where the module file should be makes the read fail with
	// something other than a missing file.
	if err := os.Mkdir(filepath.Join(s.dir, "5.wasm"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := s.Get(5)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseStore, Kind: errors.KindStorageIO}) {
		t.Fatalf("expected a storage I/O error, got %v", err)
	}
	if errors.IsModuleNotFound(err) {
		t.Error("an unreadable module must not report as missing")
	}
	if s.Len() != 0 {
		t.Errorf("cache must stay empty after a failed load, has %d entries", s.Len())
	}
}

func TestGet_LoadsAndCaches(t *testing.T) {
	s := openTestStore(t)
	path := filepath.Join(s.dir, "1.wasm")
	if err := os.WriteFile(path, wasmtest.Doubler, 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(first.Bytes, wasmtest.Doubler) {
		t.Error("loaded bytes differ from stored bytes")
	}
	if first.Entrypoint != "udf_main" {
		t.Errorf("Entrypoint = %q, want the default entry point", first.Entrypoint)
	}

	// Remove the backing file: a second Get must be served from the cache
	// with no storage read.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := s.Get(1)
	if err != nil {
		t.Fatalf("cached Get failed: %v", err)
	}
	if second != first {
		t.Error("second Get must return the cached module")
	}
}

func TestGet_Concurrent(t *testing.T) {
	s := openTestStore(t)
	for id, wasm := range map[uint64][]byte{1: wasmtest.Doubler, 2: wasmtest.I64ToF64} {
		path := filepath.Join(s.dir, strconv.FormatUint(id, 10)+".wasm")
		if err := os.WriteFile(path, wasm, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		id := uint64(i%2 + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := s.Get(id)
			if err != nil {
				t.Errorf("Get(%d) failed: %v", id, err)
				return
			}
			if len(m.Bytes) == 0 {
				t.Errorf("Get(%d) returned empty module", id)
			}
		}()
	}
	wg.Wait()

	if s.Len() != 2 {
		t.Errorf("cache has %d entries, want 2", s.Len())
	}
}

func TestPut(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(5, wasmtest.Doubler); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	m, err := s.Get(5)
	if err != nil {
		t.Fatalf("Get after Put failed: %v", err)
	}
	if !bytes.Equal(m.Bytes, wasmtest.Doubler) {
		t.Error("Get returned different bytes than Put stored")
	}

	// Stored modules are immutable for the process lifetime.
	if err := s.Put(5, wasmtest.Trap); err == nil {
		t.Fatal("expected Put on a loaded id to be refused")
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	ids, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("fresh store should list nothing, got %v", ids)
	}

	for _, id := range []uint64{7, 2, 31} {
		if err := s.Put(id, wasmtest.Doubler); err != nil {
			t.Fatalf("Put(%d) failed: %v", id, err)
		}
	}
	// Noise the lister must skip.
	if err := os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, "abc.wasm"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []uint64{2, 7, 31}
	if len(ids) != len(want) {
		t.Fatalf("List = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("List = %v, want %v", ids, want)
		}
	}
}
