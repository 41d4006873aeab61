package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wj-stack/NetFlow/internal/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage the netflow CLI configuration file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save connection settings",
	Long: `Save the base URL and API key to ~/.netflow/config.yaml.

Example:
  netflow config set --base-url http://localhost:8080 --api-key admin-123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if apiKey != "" {
			cfg.APIKey = apiKey
		}

		if err := cli.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		configPath, _ := cli.GetConfigPath()
		fmt.Printf("Configuration saved to: %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("base_url: %s\n", cfg.BaseURL)
		if cfg.APIKey != "" {
			fmt.Println("api_key: (set)")
		} else {
			fmt.Println("api_key: (not set)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
