// tsctl is a small command-line front end for the tsclient library. It
// inspects the local tailnet through the tailscale CLI: connection status,
// current address, hostname and the device list.
package main

import (
	"github.com/tailmesh/tsclient/cmd/tsctl/cmd"
)

func main() {
	cmd.Execute()
}
