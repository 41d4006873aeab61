package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	format  string
	quiet   bool
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "netflow",
	Short: "CLI tool for managing traffic-shaping strategies",
	Long: `NetFlow is a command-line tool for managing traffic-shaping strategies
in the NetFlow configurator service.

It provides commands for listing, inspecting and deleting strategies,
as well as importing and exporting the canonical policy documents
consumed by the traffic-control engine.

Examples:
  netflow list
  netflow get example_1
  netflow delete example_1
  netflow export --output strategies.json
  netflow import strategies.json`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the NetFlow API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
