// Package client exposes a typed facade over the tailscale command-line
// binary. Each operation performs exactly one external invocation, with no
// caching, retries or shared mutable state: a Client holds only immutable
// configuration and is safe for unsynchronized concurrent use. Concurrent
// calls run independent processes and may interleave freely.
package client

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tailmesh/tsclient/lib/config"
	"github.com/tailmesh/tsclient/lib/errors"
	"github.com/tailmesh/tsclient/lib/invoke"
	"github.com/tailmesh/tsclient/lib/metrics"
	"github.com/tailmesh/tsclient/lib/status"
)

// The only two argument vectors of the external contract. No other
// arguments, flags or environment variables are ever passed.
var (
	argvAddress = []string{"ip", "-4"}
	argvStatus  = []string{"status", "--json"}
)

// Operation names used for logging and metrics labels.
const (
	opCurrentAddress = "current_address"
	opStatus         = "status"
	opHostname       = "hostname"
	opDevices        = "devices"
	opSnapshot       = "snapshot"
	opSelf           = "self"
)

// ConnectionStatus is the public projection of a status snapshot for the
// local device.
type ConnectionStatus struct {
	// Hostname is the local device's name in the tailnet.
	Hostname string `json:"hostname"`
	// IP is the device's first tailnet address, or empty when none is
	// assigned yet.
	IP string `json:"ip"`
	// Online reports whether the device is currently connected.
	Online bool `json:"online"`
	// PeerCount is the number of peers excluding the device itself.
	PeerCount int `json:"peer_count"`
}

// Device is the public projection of one remote peer.
type Device struct {
	// ID is the peer's public key.
	ID string `json:"id"`
	// Hostname is the peer's name in the tailnet.
	Hostname string `json:"hostname"`
	// IP is the peer's first tailnet address, or empty.
	IP string `json:"ip"`
	// Online reports whether the peer is currently reachable.
	Online bool `json:"online"`
	// OS is the peer's operating system as reported by tailscale.
	OS string `json:"os"`
}

// Client is the facade over the tailscale binary. Create one with New; the
// zero value is not usable.
type Client struct {
	binaryPath   string
	fallbackPath string
	timeout      time.Duration // zero means unbounded
	runner       invoke.Runner
	metrics      *metrics.Metrics
	log          *logrus.Entry
}

// Option customizes a Client.
type Option func(*Client)

// WithRunner replaces the process runner. Primarily a test seam; production
// callers keep the default ExecRunner.
func WithRunner(r invoke.Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithMetrics installs Prometheus instrumentation for every operation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger replaces the package default logger entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) { c.log = entry }
}

// New creates a Client from the given configuration. The configuration is
// copied; later mutation of cfg does not affect the client.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		binaryPath:   cfg.Tailscale.BinaryPath,
		fallbackPath: cfg.Tailscale.FallbackPath,
		timeout:      cfg.Tailscale.Timeout,
		runner:       invoke.ExecRunner{},
		log:          logrus.WithField("component", "client"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BinaryPath returns the configured primary path to the tailscale binary.
func (c *Client) BinaryPath() string {
	return c.binaryPath
}

// run executes one argument vector and maps the outcome onto the error
// taxonomy: spawn failures surface as ExecutionFailed, non-zero exits as
// CommandFailed carrying the captured stderr.
func (c *Client) run(ctx context.Context, args []string) (invoke.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := c.runner.Run(ctx, c.binaryPath, args...)
	if err != nil {
		if errors.GetKind(err) != errors.KindUnknown {
			return invoke.Result{}, err
		}
		return invoke.Result{}, errors.ExecutionFailed(err.Error(), err)
	}
	if !res.ExitSuccess {
		return invoke.Result{}, errors.CommandFailed(strings.TrimSpace(res.Stderr))
	}
	return res, nil
}

// fetchSnapshot runs `status --json` and decodes the document.
func (c *Client) fetchSnapshot(ctx context.Context) (*status.Snapshot, error) {
	res, err := c.run(ctx, argvStatus)
	if err != nil {
		return nil, err
	}
	return status.Decode(res.Stdout)
}
