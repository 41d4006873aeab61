package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wj-stack/NetFlow/internal/cli"
	"github.com/wj-stack/NetFlow/internal/client"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <strategy-id>",
	Short: "Delete a strategy",
	Long: `Delete a strategy by its id. Deletion is irreversible, so the
command asks for confirmation unless --force is given.

Examples:
  netflow delete example_1
  netflow delete example_1 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyID := args[0]

		cfg, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// Confirm deletion unless --force
		if !deleteForce && !quiet {
			fmt.Printf("Are you sure you want to delete strategy '%s'? (y/N): ", strategyID)
			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Deletion cancelled")
				return nil
			}
		}

		c := client.NewClient(cfg.BaseURL, cfg.APIKey)

		ctx := context.Background()
		if err := c.DeleteStrategy(ctx, strategyID); err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Successfully deleted strategy '%s'\n", strategyID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip confirmation prompt")
}
