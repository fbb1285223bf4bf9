package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
)

var (
	cfgFile string

	conf *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "eventlog-analyzer",
	Short:         "Correlate STARTED/FINISHED events and flag the slow ones",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		conf, err = config.Parse(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to parse config %s: %w", cfgFile, err)
		}

		// Init logger
		err = log.Init(conf.Logs)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}

		logger := log.Logger()

		// Dump generic information
		logger.V(1).Info("Starting eventlog analyzer",
			"command", cmd.Name(),
			"version", version.Info(),
			"buildContext", version.BuildContext(),
		)
		logger.V(1).Info("Using config", "config", fmt.Sprintf("%+v", *conf))

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml), EVENTLOG_* env variables override it")
}
