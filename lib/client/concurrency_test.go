package client

import (
	"context"
	"sync"
	"testing"

	"github.com/tailmesh/tsclient/lib/config"
	"github.com/tailmesh/tsclient/lib/metrics"
	"github.com/tailmesh/tsclient/lib/testutil"
)

// TestConcurrentCurrentAddress issues 100 concurrent calls against a fixed
// mock and verifies every caller sees the same successful result. The client
// holds no mutable state, so calls must interleave freely without
// corruption.
func TestConcurrentCurrentAddress(t *testing.T) {
	c, runner := newTestClient(t)
	runner.RespondStdout(argvIP, "100.64.1.2")

	const callers = 100
	results := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.CurrentAddress(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: error = %v", i, errs[i])
		}
		if results[i] != "100.64.1.2" {
			t.Errorf("caller %d: result = %q, want %q", i, results[i], "100.64.1.2")
		}
	}
	if got := runner.CallCount(); got != callers {
		t.Errorf("CallCount() = %d, want %d independent invocations", got, callers)
	}
}

// TestConcurrentMixedOperations interleaves different operations, including
// failures, to shake out races in logging and metrics sinks. Run with -race.
func TestConcurrentMixedOperations(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.RespondStdout(argvIP, "100.64.1.2")
	runner.RespondStdout(argvStatusJSON, testutil.StatusJSON("key:self", "laptop",
		testutil.SelfPeer("key:self", "laptop", true, "100.64.1.2")))

	m := metrics.New()
	c, err := New(config.DefaultConfig(), WithRunner(runner), WithMetrics(m))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			if _, err := c.CurrentAddress(context.Background()); err != nil {
				t.Errorf("CurrentAddress() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := c.Status(context.Background()); err != nil {
				t.Errorf("Status() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := c.Devices(context.Background()); err != nil {
				t.Errorf("Devices() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if !c.Connected(context.Background()) {
				t.Error("Connected() = false, want true")
			}
		}()
	}
	wg.Wait()
}
