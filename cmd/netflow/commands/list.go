package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wj-stack/NetFlow/internal/cli"
	"github.com/wj-stack/NetFlow/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all strategies",
	Long: `List every authored strategy, in store order.

Examples:
  netflow list
  netflow list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(cfg.BaseURL, cfg.APIKey)

		ctx := context.Background()
		docs, err := c.ListStrategies(ctx)
		if err != nil {
			return err
		}

		if !quiet {
			if len(docs) == 0 {
				fmt.Println("No strategies found")
				return nil
			}
			return cli.PrintStrategies(docs, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
