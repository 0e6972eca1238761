package fs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

// =============================================================================
// Chaos FS Tests
//
// These tests verify Chaos fault injection and OS-like error semantics.
// =============================================================================

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keys.json")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	return path
}

func TestChaos_PassesThroughWhenDisabled(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 12345, ChaosConfig{
		ReadFailRate:  1.0,
		WriteFailRate: 1.0,
		StatFailRate:  1.0,
	})
	chaosFS.SetMode(ChaosModePassthrough)

	path := writeFixture(t, `{"a": "1"}`)

	if err := chaosFS.WriteFileAtomic(path, []byte(`{}`)); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	got, err := chaosFS.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(got), `{}`; got != want {
		t.Fatalf("ReadFile=%q, want %q", got, want)
	}
}

func TestChaos_WriteFailureLeavesTargetUntouched(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 1, ChaosConfig{WriteFailRate: 1.0})
	path := writeFixture(t, `{"a": "1"}`)

	err := chaosFS.WriteFileAtomic(path, []byte(`{}`))
	if err == nil {
		t.Fatal("expected injected write failure")
	}

	if !IsInjected(err) {
		t.Fatalf("IsInjected(%v)=false, want true", err)
	}

	got, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}

	if got, want := string(got), `{"a": "1"}`; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}

	if got, want := chaosFS.Stats().WriteFails, int64(1); got != want {
		t.Fatalf("WriteFails=%d, want %d", got, want)
	}
}

func TestChaos_StickyReadOnlyPath(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 1, ChaosConfig{})
	chaosFS.SetMode(ChaosModeStickyOnly)

	path := writeFixture(t, `{}`)
	chaosFS.SetPathState(path, PathReadOnly)

	// Reads still work on a read-only path.
	if _, err := chaosFS.ReadFile(path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	err := chaosFS.WriteFileAtomic(path, []byte(`{"a": "1"}`))
	if !errors.Is(err, syscall.EROFS) {
		t.Fatalf("err=%v, want EROFS", err)
	}

	chaosFS.SetPathState(path, PathNormal)

	if err := chaosFS.WriteFileAtomic(path, []byte(`{"a": "1"}`)); err != nil {
		t.Fatalf("WriteFileAtomic after reset: %v", err)
	}
}

func TestChaos_StickyIOErrorPath(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 1, ChaosConfig{})
	path := writeFixture(t, `{}`)
	chaosFS.SetPathState(path, PathIOError)

	if _, err := chaosFS.ReadFile(path); !errors.Is(err, syscall.EIO) {
		t.Fatalf("ReadFile err=%v, want EIO", err)
	}

	if _, err := chaosFS.Exists(path); !errors.Is(err, syscall.EIO) {
		t.Fatalf("Exists err=%v, want EIO", err)
	}
}

func TestChaos_PartialReadTruncates(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 7, ChaosConfig{PartialReadRate: 1.0})
	content := `{"alpha": "one", "beta": "two"}`
	path := writeFixture(t, content)

	got, err := chaosFS.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(got) == 0 || len(got) >= len(content) {
		t.Fatalf("len=%d, want in (0, %d)", len(got), len(content))
	}

	if got, want := chaosFS.Stats().PartialReads, int64(1); got != want {
		t.Fatalf("PartialReads=%d, want %d", got, want)
	}
}

func TestChaos_MissingFileIsRealError(t *testing.T) {
	t.Parallel()

	chaosFS := NewChaos(NewReal(), 1, ChaosConfig{})

	_, err := chaosFS.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want ErrNotExist", err)
	}

	if IsInjected(err) {
		t.Fatal("real ENOENT reported as injected")
	}
}
