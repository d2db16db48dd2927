// Package testutil provides test doubles for exercising tsclient without a
// real tailscale binary: a scriptable Runner and canned status documents.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tailmesh/tsclient/lib/invoke"
)

// Call records one invocation received by a FakeRunner.
type Call struct {
	Program string
	Args    []string
}

// response is a scripted outcome for one argument vector.
type response struct {
	result invoke.Result
	err    error
}

// FakeRunner is a scriptable invoke.Runner keyed by argument vector. It is
// safe for concurrent use: scripted responses are fixed up front and every
// Run only appends to the call log under the lock.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
}

var _ invoke.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates an empty FakeRunner. Unscripted argument vectors
// fail loudly so tests never silently exercise the wrong path.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]response)}
}

// Respond scripts a successful spawn for the given argument vector.
func (f *FakeRunner) Respond(args []string, result invoke.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key(args)] = response{result: result}
}

// RespondStdout scripts a zero-exit invocation printing stdout.
func (f *FakeRunner) RespondStdout(args []string, stdout string) {
	f.Respond(args, invoke.Result{ExitSuccess: true, Stdout: stdout})
}

// RespondStderr scripts a non-zero exit with the given stderr text.
func (f *FakeRunner) RespondStderr(args []string, stderr string) {
	f.Respond(args, invoke.Result{ExitSuccess: false, Stderr: stderr})
}

// Fail scripts a spawn failure for the given argument vector.
func (f *FakeRunner) Fail(args []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key(args)] = response{err: err}
}

// Run implements invoke.Runner.
func (f *FakeRunner) Run(_ context.Context, program string, args ...string) (invoke.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Program: program, Args: args})
	resp, ok := f.responses[key(args)]
	f.mu.Unlock()

	if !ok {
		return invoke.Result{}, fmt.Errorf("testutil: no scripted response for argv %q", args)
	}
	return resp.result, resp.err
}

// Calls returns a copy of the invocation log.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many invocations the runner has received.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func key(args []string) string {
	return strings.Join(args, "\x00")
}
