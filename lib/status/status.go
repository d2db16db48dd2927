// Package status decodes the tailscale CLI's `status --json` document into a
// point-in-time snapshot of the tailnet as seen from this device.
//
// Decoding is strict: the documented field names must match exactly,
// including case, every required field must be present with the right type,
// and one malformed peer invalidates the whole snapshot. There is no
// best-effort or partial decoding, which keeps a snapshot either fully
// trustworthy or absent.
package status

// SelfNode is the local device's identity within a snapshot.
type SelfNode struct {
	// PublicKey uniquely identifies the device within the snapshot. It is
	// treated as an opaque string.
	PublicKey string
	// HostName is the device's name in the tailnet.
	HostName string
}

// PeerEntry is one member of the tailnet. The local device normally appears
// as a peer of itself, keyed by its own public key.
type PeerEntry struct {
	// HostName is the peer's name in the tailnet.
	HostName string
	// Online reports whether the peer is currently reachable.
	Online bool
	// Addresses are the peer's tailnet IP literals, first entry preferred.
	// May be empty for peers without an assigned address.
	Addresses []string
	// OS is the peer's operating system as reported by tailscale.
	OS string
}

// Snapshot is one point-in-time view of the tailnet. Values are never
// mutated after decoding; every fetch produces a fresh snapshot.
type Snapshot struct {
	// Self is the local device's identity.
	Self SelfNode
	// Peers maps public keys to peer entries. Self.PublicKey is normally
	// among the keys; consumers must tolerate its absence.
	Peers map[string]PeerEntry
}

// SelfPeer looks up the local device's own peer entry. Snapshots taken
// mid-join can lack it, in which case ok is false and consumers fall back
// to zero values rather than failing.
func (s *Snapshot) SelfPeer() (PeerEntry, bool) {
	p, ok := s.Peers[s.Self.PublicKey]
	return p, ok
}

// PeerCount returns the number of peers excluding the local device itself.
func (s *Snapshot) PeerCount() int {
	n := len(s.Peers)
	if _, ok := s.Peers[s.Self.PublicKey]; ok {
		n--
	}
	return n
}
