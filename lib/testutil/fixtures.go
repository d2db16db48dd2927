package testutil

import (
	"encoding/json"
	"fmt"
)

// PeerFixture describes one peer of a canned status document.
type PeerFixture struct {
	PublicKey string
	HostName  string
	Online    bool
	Addresses []string
	OS        string
}

// StatusJSON builds a well-formed `tailscale status --json` document with
// the given self identity and peers. Field names match the CLI's wire
// format exactly.
func StatusJSON(selfKey, selfHost string, peers ...PeerFixture) string {
	type wirePeer struct {
		HostName     string   `json:"HostName"`
		Online       bool     `json:"Online"`
		TailscaleIPs []string `json:"TailscaleIPs"`
		OS           string   `json:"OS"`
	}
	type wireSelf struct {
		PublicKey string `json:"PublicKey"`
		HostName  string `json:"HostName"`
	}

	peerMap := make(map[string]wirePeer, len(peers))
	for _, p := range peers {
		addrs := p.Addresses
		if addrs == nil {
			addrs = []string{}
		}
		peerMap[p.PublicKey] = wirePeer{
			HostName:     p.HostName,
			Online:       p.Online,
			TailscaleIPs: addrs,
			OS:           p.OS,
		}
	}

	doc := struct {
		Self wireSelf            `json:"Self"`
		Peer map[string]wirePeer `json:"Peer"`
	}{
		Self: wireSelf{PublicKey: selfKey, HostName: selfHost},
		Peer: peerMap,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshaling status fixture: %v", err))
	}
	return string(data)
}

// SelfPeer builds the local device's own peer entry for StatusJSON.
func SelfPeer(key, host string, online bool, addrs ...string) PeerFixture {
	return PeerFixture{
		PublicKey: key,
		HostName:  host,
		Online:    online,
		Addresses: addrs,
		OS:        "linux",
	}
}
