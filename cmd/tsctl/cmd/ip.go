package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ipCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "ip",
		Short:        "Print this device's tailnet IPv4 address",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := tsClient.CurrentAddress(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(addr)
			return nil
		},
	}
}
