package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func hostnameCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "hostname",
		Short:        "Print this device's tailnet hostname",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostname, err := tsClient.Hostname(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(hostname)
			return nil
		},
	}
}
