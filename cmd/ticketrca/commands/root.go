// Package commands implements the ticketrca CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/pb003jbl/ticketrca/internal/config"
	"github.com/pb003jbl/ticketrca/internal/logging"
)

const Version = "0.1.0"

var (
	logLevelFlag   string
	configPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ticketrca",
	Short: "ticketrca - rule-based root cause analysis over incident ticket exports",
	Long: `ticketrca analyzes spreadsheet-like incident ticket exports: it retrieves the
tickets related to an incident, reconstructs a timeline, mines contributing
factors and synthesizes ranked causal hypotheses and recommendations.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level (debug, info, warn, error, fatal). Overrides the config file.")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "",
		"Path to a YAML config file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(inspectCmd)
}

// loadConfig loads the config file (if any) and initializes logging.
// CLI flags take priority over config file values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	if err := logging.Initialize(level); err != nil {
		return nil, err
	}
	return cfg, nil
}
