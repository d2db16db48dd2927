package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tailmesh/tsclient/lib/client"
	"github.com/tailmesh/tsclient/lib/config"
	"github.com/tailmesh/tsclient/lib/errors"
	"github.com/tailmesh/tsclient/lib/metrics"
)

var (
	flagConfig        string
	flagBinaryPath    string
	flagVerbose       bool
	flagMetricsListen string

	tsClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:           "tsctl",
	Short:         "tsctl inspects the local tailnet through the tailscale CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command. Structured tsclient errors are printed
// with their remediation hint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, e.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

func setup() error {
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagBinaryPath != "" {
		cfg.Tailscale.BinaryPath = flagBinaryPath
	}
	if !flagVerbose {
		if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			logrus.SetLevel(level)
		}
	}

	opts := []client.Option{}
	if flagMetricsListen != "" {
		m := metrics.New()
		opts = append(opts, client.WithMetrics(m))
		go serveMetrics(flagMetricsListen, m)
	}

	tsClient, err = client.New(cfg, opts...)
	return err
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.WithError(err).Warn("metrics listener stopped")
	}
}

func init() {
	defaultConfig := os.ExpandEnv("$HOME/.config/tsctl/config.toml")

	fs := rootCmd.PersistentFlags()
	fs.StringVar(&flagConfig, "config", defaultConfig, "path to configuration file")
	fs.StringVar(&flagBinaryPath, "tailscale-path", "", "path to the tailscale binary (overrides config)")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&flagMetricsListen, "metrics-listen", "", "address to expose Prometheus metrics on (e.g. 127.0.0.1:9100)")

	rootCmd.AddCommand(
		statusCmd(),
		ipCmd(),
		hostnameCmd(),
		devicesCmd(),
		checkCmd(),
		versionCmd(),
	)
}
