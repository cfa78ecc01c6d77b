package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rzbill/opsweep/internal/config"
	"github.com/rzbill/opsweep/pkg/log"
	"github.com/rzbill/opsweep/pkg/version"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded once before any subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opsweep",
	Short: "Opsweep - service restarts and test-resource cleanup",
	Long: `Opsweep automates two operational chores: safely restarting a
configured list of OS services with bounded waits, and discovering
cloud resources tagged as test or automation artifacts to stop or
delete them, gated by a dry-run mode.`,
	Version:           version.Version,
	PersistentPreRunE: initRoot,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.opsweep/opsweep.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("OPSWEEP")
	viper.AutomaticEnv() // read in environment variables that match
}

// initRoot loads the configuration and wires the default logger.
func initRoot(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	var formatter log.Formatter = log.NewTextFormatter()
	if cfg.Log.Format == "json" {
		formatter = &log.JSONFormatter{}
	}

	log.SetDefaultLogger(log.NewLogger(
		log.WithLevel(log.ParseLevel(level)),
		log.WithFormatter(formatter),
	))

	return nil
}
