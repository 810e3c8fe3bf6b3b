// Command hanacli inspects SAP HANA catalogs, converts table metadata to
// CDS entity definitions and runs mass conversion batches, against either
// a direct HANA connection or one of the alternate backends configured in
// the profile file.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hanatools/hanacli/internal/config"
	"github.com/hanatools/hanacli/internal/logger"
)

var (
	flagConfig    string
	flagProfile   string
	flagLogLevel  string
	flagLogFormat string

	cfg *config.File
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hanacli",
	Short:         "HANA catalog inspection and CDS conversion toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.New(&logger.Config{Level: flagLogLevel, Format: flagLogFormat})
		logger.SetGlobal(log)

		path := flagConfig
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the profile file (default ~/.hanacli.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "connection profile name (default \"hybrid\")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "log format: console or json")

	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(massConvertCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
