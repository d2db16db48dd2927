package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailmesh/tsclient/lib/errors"
)

// checkCmd verifies the tailscale installation end to end. It is the one
// place that raises the NotInstalled and NotConnected error kinds, which
// the library itself leaves to callers.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "check",
		Short:        "Verify that tailscale is installed and this device is connected",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tsClient.Available() {
				return errors.NotInstalled(tsClient.BinaryPath())
			}
			fmt.Println("tailscale binary: found")

			if !tsClient.Connected(cmd.Context()) {
				return errors.NotConnected()
			}
			fmt.Println("tailnet: connected")
			return nil
		},
	}
}
