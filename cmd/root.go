package cmd

import (
	"fmt"
	"os"

	"github.com/sutt/usa-spending/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "usaspending",
	Short: "USAspending award and transaction fetcher",
	Long: `usaspending retrieves federal contract award and transaction records
from the USAspending API, normalizes them into a stable schema, and persists
timestamped JSON artifacts for downstream analysis. The complete fetch mode
runs a two-stage reconciliation that works around the API's 10,000-record
cap on any single query.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
