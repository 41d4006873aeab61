package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wj-stack/NetFlow/internal/cli"
	"github.com/wj-stack/NetFlow/internal/client"
)

var getForm bool

var getCmd = &cobra.Command{
	Use:   "get <strategy-id>",
	Short: "Get a single strategy",
	Long: `Get one strategy by its id, either as the canonical policy
document or as the editable form representation.

Examples:
  netflow get example_1
  netflow get example_1 --format json
  netflow get example_1 --form --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyID := args[0]

		cfg, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(cfg.BaseURL, cfg.APIKey)
		ctx := context.Background()

		if getForm {
			form, err := c.GetStrategyForm(ctx, strategyID)
			if err != nil {
				return err
			}
			return cli.PrintForm(form, cli.OutputFormat(format))
		}

		doc, err := c.GetStrategy(ctx, strategyID)
		if err != nil {
			return err
		}
		return cli.PrintStrategy(doc, cli.OutputFormat(format))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getForm, "form", false, "Show the editable form representation instead of the policy document")
}
