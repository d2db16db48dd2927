// Package invoke runs external programs with a direct argument vector and
// captures their output. No shell is ever involved, so shell-metacharacter
// injection is structurally impossible: arguments reach the child process
// exactly as given.
package invoke

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	tserrors "github.com/tailmesh/tsclient/lib/errors"
)

// MaxCaptureBytes is the per-stream capture ceiling. Output beyond it is
// truncated silently and the invocation still succeeds; the tailscale CLI's
// documented outputs are far below this limit.
const MaxCaptureBytes = 1 << 20

var log = logrus.WithField("component", "invoke")

// Result is the outcome of a completed invocation. Stdout and Stderr hold at
// most MaxCaptureBytes each.
type Result struct {
	// ExitSuccess is true when the program exited with status zero.
	ExitSuccess bool
	// Stdout is the captured standard output text, possibly truncated.
	Stdout string
	// Stderr is the captured standard error text, possibly truncated.
	Stderr string
}

// Runner executes a program to completion. Implementations must be safe for
// concurrent use; each call is an independent invocation with no shared
// in-flight state.
type Runner interface {
	// Run executes program with the given argument vector and returns the
	// captured output. A non-zero exit is not an error: it is reported
	// through Result.ExitSuccess so the caller can classify it with the
	// captured stderr. Run returns an error only when the program could not
	// be spawned or the context was cancelled.
	Run(ctx context.Context, program string, args ...string) (Result, error)
}

// ExecRunner runs programs via os/exec. Cancelling the context kills the
// child process (exec.CommandContext semantics); it is never left orphaned.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, program string, args ...string) (Result, error) {
	id := uuid.NewString()
	start := time.Now()

	log.WithFields(logrus.Fields{
		"invocation": id,
		"program":    program,
		"args":       args,
	}).Debug("spawning process")

	var stdout, stderr boundedBuffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// The program started and finished; a non-zero status is a
			// successful invocation from the runner's perspective.
			log.WithFields(logrus.Fields{
				"invocation": id,
				"duration":   elapsed,
				"exit_code":  exitErr.ExitCode(),
			}).Debug("process exited non-zero")
			return Result{
				ExitSuccess: false,
				Stdout:      stdout.String(),
				Stderr:      stderr.String(),
			}, nil
		}

		log.WithFields(logrus.Fields{
			"invocation": id,
			"duration":   elapsed,
		}).WithError(err).Debug("process could not be run")
		if ctx.Err() != nil {
			return Result{}, tserrors.ExecutionFailed(ctx.Err().Error(), err)
		}
		return Result{}, tserrors.ExecutionFailed(err.Error(), err)
	}

	log.WithFields(logrus.Fields{
		"invocation": id,
		"duration":   elapsed,
	}).Debug("process exited")
	return Result{
		ExitSuccess: true,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
	}, nil
}
