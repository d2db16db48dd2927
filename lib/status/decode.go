package status

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tailmesh/tsclient/lib/errors"
	"github.com/tailmesh/tsclient/lib/validation"
)

// Field names of the tailscale status document. Matching is exact-case;
// encoding/json's case-insensitive fallback is deliberately bypassed by
// decoding through raw-message maps and looking keys up verbatim.
const (
	fieldSelf      = "Self"
	fieldPeer      = "Peer"
	fieldPublicKey = "PublicKey"
	fieldHostName  = "HostName"
	fieldOnline    = "Online"
	fieldAddresses = "TailscaleIPs"
	fieldOS        = "OS"
)

// Decode parses raw as a tailscale `status --json` document. It is a pure
// function: identical input always yields an identical snapshot or an
// identical failure, and nothing is mutated on error. All failures are
// InvalidOutput errors.
func Decode(raw string) (*Snapshot, error) {
	if !validation.ValidText(raw) {
		return nil, errors.InvalidOutput(fmt.Errorf("output is not valid UTF-8"))
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, errors.InvalidOutput(fmt.Errorf("parsing status document: %w", err))
	}

	self, err := decodeSelf(top)
	if err != nil {
		return nil, errors.InvalidOutput(err)
	}

	peers, err := decodePeers(top)
	if err != nil {
		return nil, errors.InvalidOutput(err)
	}

	return &Snapshot{Self: self, Peers: peers}, nil
}

func decodeSelf(top map[string]json.RawMessage) (SelfNode, error) {
	raw, ok := top[fieldSelf]
	if !ok {
		return SelfNode{}, fmt.Errorf("missing required field %q", fieldSelf)
	}

	fields, err := objectFields(raw, fieldSelf)
	if err != nil {
		return SelfNode{}, err
	}

	publicKey, err := stringField(fields, fieldPublicKey, fieldSelf)
	if err != nil {
		return SelfNode{}, err
	}
	hostName, err := stringField(fields, fieldHostName, fieldSelf)
	if err != nil {
		return SelfNode{}, err
	}

	return SelfNode{PublicKey: publicKey, HostName: hostName}, nil
}

func decodePeers(top map[string]json.RawMessage) (map[string]PeerEntry, error) {
	raw, ok := top[fieldPeer]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", fieldPeer)
	}

	var rawPeers map[string]json.RawMessage
	if isNull(raw) {
		return nil, fmt.Errorf("field %q must be an object, got null", fieldPeer)
	}
	if err := json.Unmarshal(raw, &rawPeers); err != nil {
		return nil, fmt.Errorf("field %q must be an object: %w", fieldPeer, err)
	}

	peers := make(map[string]PeerEntry, len(rawPeers))
	for key, rawPeer := range rawPeers {
		peer, err := decodePeer(key, rawPeer)
		if err != nil {
			return nil, err
		}
		peers[key] = peer
	}
	return peers, nil
}

func decodePeer(key string, raw json.RawMessage) (PeerEntry, error) {
	ctx := fmt.Sprintf("peer %q", key)

	fields, err := objectFields(raw, ctx)
	if err != nil {
		return PeerEntry{}, err
	}

	hostName, err := stringField(fields, fieldHostName, ctx)
	if err != nil {
		return PeerEntry{}, err
	}
	online, err := boolField(fields, fieldOnline, ctx)
	if err != nil {
		return PeerEntry{}, err
	}
	addrs, err := stringListField(fields, fieldAddresses, ctx)
	if err != nil {
		return PeerEntry{}, err
	}
	osName, err := stringField(fields, fieldOS, ctx)
	if err != nil {
		return PeerEntry{}, err
	}

	return PeerEntry{
		HostName:  hostName,
		Online:    online,
		Addresses: addrs,
		OS:        osName,
	}, nil
}

// objectFields decodes raw as a JSON object keyed by verbatim field names.
func objectFields(raw json.RawMessage, ctx string) (map[string]json.RawMessage, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%s must be an object, got null", ctx)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%s must be an object: %w", ctx, err)
	}
	return fields, nil
}

func stringField(fields map[string]json.RawMessage, name, ctx string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%s: missing required field %q", ctx, name)
	}
	if isNull(raw) {
		return "", fmt.Errorf("%s: field %q must be a string, got null", ctx, name)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%s: field %q must be a string: %w", ctx, name, err)
	}
	return v, nil
}

func boolField(fields map[string]json.RawMessage, name, ctx string) (bool, error) {
	raw, ok := fields[name]
	if !ok {
		return false, fmt.Errorf("%s: missing required field %q", ctx, name)
	}
	if isNull(raw) {
		return false, fmt.Errorf("%s: field %q must be a boolean, got null", ctx, name)
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("%s: field %q must be a boolean: %w", ctx, name, err)
	}
	return v, nil
}

// stringListField decodes a mandatory array of strings. The array may be
// empty but must be present; null is a type mismatch like any other.
func stringListField(fields map[string]json.RawMessage, name, ctx string) ([]string, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("%s: missing required field %q", ctx, name)
	}
	if isNull(raw) {
		return nil, fmt.Errorf("%s: field %q must be an array of strings, got null", ctx, name)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: field %q must be an array of strings: %w", ctx, name, err)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		if isNull(item) {
			return nil, fmt.Errorf("%s: field %q entry %d must be a string, got null", ctx, name, i)
		}
		var v string
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("%s: field %q entry %d must be a string: %w", ctx, name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
