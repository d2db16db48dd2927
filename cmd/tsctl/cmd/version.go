package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailmesh/tsclient/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tsctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tsctl %s\n", version.Full())
		},
	}
}
