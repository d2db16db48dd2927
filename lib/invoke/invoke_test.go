package invoke

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/tailmesh/tsclient/lib/errors"
)

// requireUnix skips subprocess tests on platforms without POSIX tools.
func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires POSIX shell utilities")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireUnix(t)

	res, err := ExecRunner{}.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.ExitSuccess {
		t.Error("ExitSuccess = false, want true")
	}
	if res.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello\n")
	}
	if res.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", res.Stderr)
	}
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	requireUnix(t)

	res, err := ExecRunner{}.Run(context.Background(), "false")
	if err != nil {
		t.Fatalf("Run() error = %v, non-zero exit should not be an error", err)
	}
	if res.ExitSuccess {
		t.Error("ExitSuccess = true, want false")
	}
}

func TestExecRunner_CapturesStderr(t *testing.T) {
	requireUnix(t)

	res, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitSuccess {
		t.Error("ExitSuccess = true, want false")
	}
	if res.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "oops\n")
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "/nonexistent/no-such-binary")
	if err == nil {
		t.Fatal("Run() should fail for a missing binary")
	}
	if !errors.IsExecutionFailed(err) {
		t.Errorf("error = %v, want ExecutionFailed", err)
	}
}

func TestExecRunner_ContextCancelKillsChild(t *testing.T) {
	requireUnix(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ExecRunner{}.Run(ctx, "sleep", "30")
	if err == nil {
		t.Fatal("Run() should fail when the context expires")
	}
	if !errors.IsExecutionFailed(err) {
		t.Errorf("error = %v, want ExecutionFailed", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("child outlived context by %v; it should be killed promptly", elapsed)
	}
}

func TestBoundedBuffer_Truncates(t *testing.T) {
	var b boundedBuffer

	chunk := strings.Repeat("x", 64*1024)
	for i := 0; i < 40; i++ { // 2.5 MiB total
		n, err := b.Write([]byte(chunk))
		if err != nil {
			t.Fatalf("Write() error = %v, bounded writes must never fail", err)
		}
		if n != len(chunk) {
			t.Fatalf("Write() = %d, want %d; short writes would stall the pipe", n, len(chunk))
		}
	}

	if got := len(b.String()); got != MaxCaptureBytes {
		t.Errorf("captured %d bytes, want exactly %d", got, MaxCaptureBytes)
	}
}

func TestBoundedBuffer_PartialFinalWrite(t *testing.T) {
	var b boundedBuffer

	almost := strings.Repeat("a", MaxCaptureBytes-3)
	if _, err := b.Write([]byte(almost)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := b.Write([]byte("XYZ123")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := b.String()
	if len(got) != MaxCaptureBytes {
		t.Fatalf("captured %d bytes, want %d", len(got), MaxCaptureBytes)
	}
	if !strings.HasSuffix(got, "XYZ") {
		t.Errorf("final bytes = %q, want the head of the overflowing write", got[len(got)-3:])
	}
}
