package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:          "status",
		Short:        "Show the local device's tailnet connection status",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := tsClient.Status(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(st)
			}

			state := "offline"
			if st.Online {
				state = "online"
			}
			fmt.Printf("%s\t%s\t%s\t%d peers\n", st.Hostname, orDash(st.IP), state, st.PeerCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the status as JSON")
	return cmd
}

func devicesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:          "devices",
		Short:        "List the tailnet's devices, excluding this one",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := tsClient.Devices(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(devices)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "HOSTNAME\tIP\tSTATE\tOS")
			for _, d := range devices {
				state := "offline"
				if d.Online {
					state = "online"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Hostname, orDash(d.IP), state, d.OS)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the device list as JSON")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
