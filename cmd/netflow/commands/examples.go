package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wj-stack/NetFlow/internal/cli"
	"github.com/wj-stack/NetFlow/internal/client"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Load the stock example strategies",
	Long: `Load the two example strategies shipped with the configurator
into the store.

Example:
  netflow examples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(cfg.BaseURL, cfg.APIKey)

		ctx := context.Background()
		if err := c.LoadExamples(ctx); err != nil {
			return err
		}

		if !quiet {
			fmt.Println("Example strategies loaded")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
