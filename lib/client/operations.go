package client

import (
	"context"
	"os"
	"sort"

	"github.com/tailmesh/tsclient/lib/status"
	"github.com/tailmesh/tsclient/lib/validation"
)

// CurrentAddress returns the device's tailnet IPv4 address by running
// `tailscale ip -4`. The output is trimmed of surrounding whitespace and
// must begin with the tailnet's reserved 100. prefix; anything else fails
// with an InvalidAddress error carrying the offending text.
func (c *Client) CurrentAddress(ctx context.Context) (addr string, err error) {
	done := c.metrics.Track(opCurrentAddress)
	defer func() { done(err) }()

	res, err := c.run(ctx, argvAddress)
	if err != nil {
		return "", err
	}

	addr, err = validation.CleanAddress(res.Stdout)
	if err != nil {
		return "", err
	}

	c.log.WithField("address", addr).Debug("resolved current address")
	return addr, nil
}

// Hostname returns the local device's name in the tailnet.
func (c *Client) Hostname(ctx context.Context) (hostname string, err error) {
	done := c.metrics.Track(opHostname)
	defer func() { done(err) }()

	snap, err := c.fetchSnapshot(ctx)
	if err != nil {
		return "", err
	}
	return snap.Self.HostName, nil
}

// Status returns the local device's connection status. The device's own
// entry is looked up in the peer map by its public key; a snapshot taken
// mid-join can lack that entry, in which case IP defaults to empty and
// Online to false rather than failing.
func (c *Client) Status(ctx context.Context) (st ConnectionStatus, err error) {
	done := c.metrics.Track(opStatus)
	defer func() { done(err) }()

	snap, err := c.fetchSnapshot(ctx)
	if err != nil {
		return ConnectionStatus{}, err
	}
	return projectStatus(snap), nil
}

// Connected reports whether the device is currently connected to its
// tailnet. Every failure is swallowed and reported as false; callers that
// need the cause should use Status instead.
func (c *Client) Connected(ctx context.Context) bool {
	st, err := c.Status(ctx)
	if err != nil {
		c.log.WithError(err).Debug("status fetch failed, reporting disconnected")
		return false
	}
	return st.Online
}

// Available reports whether the tailscale binary exists at the configured
// primary path or at the documented fallback path. It performs no process
// invocation, only filesystem checks.
func (c *Client) Available() bool {
	if fileExists(c.binaryPath) {
		return true
	}
	return c.fallbackPath != "" && fileExists(c.fallbackPath)
}

// Devices lists every peer of the tailnet except the local device itself,
// sorted by hostname with the public key as tie-breaker. Fields are copied
// verbatim from the status snapshot.
func (c *Client) Devices(ctx context.Context) (devices []Device, err error) {
	done := c.metrics.Track(opDevices)
	defer func() { done(err) }()

	snap, err := c.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return projectDevices(snap), nil
}

// Snapshot returns the full decoded status document for callers that need
// more than the standard projections.
func (c *Client) Snapshot(ctx context.Context) (snap *status.Snapshot, err error) {
	done := c.metrics.Track(opSnapshot)
	defer func() { done(err) }()

	return c.fetchSnapshot(ctx)
}

// Self returns the local device's identity record.
func (c *Client) Self(ctx context.Context) (self status.SelfNode, err error) {
	done := c.metrics.Track(opSelf)
	defer func() { done(err) }()

	snap, err := c.fetchSnapshot(ctx)
	if err != nil {
		return status.SelfNode{}, err
	}
	return snap.Self, nil
}

func projectStatus(snap *status.Snapshot) ConnectionStatus {
	st := ConnectionStatus{
		Hostname:  snap.Self.HostName,
		PeerCount: snap.PeerCount(),
	}
	if self, ok := snap.SelfPeer(); ok {
		st.IP = validation.FirstAddress(self.Addresses)
		st.Online = self.Online
	}
	return st
}

func projectDevices(snap *status.Snapshot) []Device {
	devices := make([]Device, 0, len(snap.Peers))
	for key, peer := range snap.Peers {
		if key == snap.Self.PublicKey {
			continue
		}
		devices = append(devices, Device{
			ID:       key,
			Hostname: peer.HostName,
			IP:       validation.FirstAddress(peer.Addresses),
			Online:   peer.Online,
			OS:       peer.OS,
		})
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Hostname != devices[j].Hostname {
			return devices[i].Hostname < devices[j].Hostname
		}
		return devices[i].ID < devices[j].ID
	})
	return devices
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
