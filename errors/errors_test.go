package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
		name string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseStore, Kind: KindStorageIO},
			want: "[store] storage_io",
		},
		{
			name: "with detail",
			err:  ModuleNotFound(7),
			want: "[store] not_found: no module stored under id 7",
		},
		{
			name: "with cause",
			err:  Compile(fmt.Errorf("bad magic")),
			want: "[compile] invalid_module: compile module (caused by: bad magic)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := ModuleNotFound(42)

	if !stderrors.Is(err, &Error{Phase: PhaseStore, Kind: KindNotFound}) {
		t.Error("expected match on same phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseStore, Kind: KindStorageIO}) {
		t.Error("unexpected match on different kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseInvoke, Kind: KindNotFound}) {
		t.Error("unexpected match on different phase")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := StorageIO("read module 3", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestIsModuleNotFound(t *testing.T) {
	if !IsModuleNotFound(ModuleNotFound(1)) {
		t.Error("expected true for ModuleNotFound")
	}
	if IsModuleNotFound(StorageIO("read", fmt.Errorf("io"))) {
		t.Error("expected false for StorageIO")
	}
	if IsModuleNotFound(nil) {
		t.Error("expected false for nil")
	}
}

func TestExportResolutionMessages(t *testing.T) {
	noFns := NoExportedFunctions()
	missing := ExportNotFound("udf_main")

	if noFns.Error() == missing.Error() {
		t.Error("no-exports and name-missing must produce distinct messages")
	}
	if !strings.Contains(noFns.Error(), "no exported functions") {
		t.Errorf("want no-exports message to state the module exports nothing, got %q", noFns.Error())
	}
	if !strings.Contains(missing.Error(), `"udf_main"`) {
		t.Errorf("want name-missing message to carry the name, got %q", missing.Error())
	}

	notFn := ExportNotFunction("memory")
	if !strings.Contains(notFn.Error(), "not a function") {
		t.Errorf("unexpected message: %q", notFn.Error())
	}
}

func TestArityMismatchError(t *testing.T) {
	err := &ArityMismatchError{Expected: 1, Received: 2, Args: []string{"21", "1"}}

	want := `function expected 1 arguments, but received 2: "21 1"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, &ArityMismatchError{}) {
		t.Error("expected Is to match on type")
	}
}

func TestConversionError(t *testing.T) {
	err := &ConversionError{Index: 2, Arg: "abc", Target: "f32"}

	if !strings.Contains(err.Error(), "argument 2") {
		t.Errorf("want index in message, got %q", err.Error())
	}

	var conv *ConversionError
	wrapped := fmt.Errorf("execute: %w", err)
	if !stderrors.As(wrapped, &conv) {
		t.Fatal("expected As to find ConversionError")
	}
	if conv.Index != 2 || conv.Target != "f32" {
		t.Errorf("payload lost through wrapping: %+v", conv)
	}
}

func TestExitCode(t *testing.T) {
	code, ok := ExitCode(fmt.Errorf("invoke: %w", &ExitError{Code: 7}))
	if !ok || code != 7 {
		t.Errorf("ExitCode = (%d, %v), want (7, true)", code, ok)
	}

	if _, ok := ExitCode(Trap("udf_main", fmt.Errorf("unreachable"))); ok {
		t.Error("expected no exit code in a trap")
	}
}
