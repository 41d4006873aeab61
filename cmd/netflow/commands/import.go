package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wj-stack/NetFlow/internal/cli"
	"github.com/wj-stack/NetFlow/internal/client"
	"github.com/wj-stack/NetFlow/internal/strategy"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import strategies from a file",
	Long: `Import policy documents from a JSON or YAML file, replacing the
whole collection.

Examples:
  netflow import strategies.json
  netflow import strategies.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		// Read file
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		// Parse file; YAML handles JSON input too, but try JSON first so
		// canonical exports round-trip without surprises
		var docs []strategy.PolicyDocument
		if err := json.Unmarshal(data, &docs); err != nil {
			if err := yaml.Unmarshal(data, &docs); err != nil {
				return fmt.Errorf("failed to parse file: %w", err)
			}
		}

		if len(docs) == 0 {
			return fmt.Errorf("no strategies found in file")
		}

		if verbose {
			fmt.Printf("Found %d strategies to import\n", len(docs))
		}

		// Dry run mode - just show what would be imported
		if importDryRun {
			fmt.Println("Dry run mode - the following strategies would be imported:")
			for _, doc := range docs {
				action := doc.Filter.ResponseOnMatch
				fmt.Printf("  - %s (%s): %s\n", action.StrategyID, action.Strategy, doc.Filter.Desc)
			}
			return nil
		}

		cfg, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(cfg.BaseURL, cfg.APIKey)

		ctx := context.Background()
		if err := c.ImportStrategies(ctx, docs); err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Successfully imported %d strategies\n", len(docs))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and show what would be imported without writing")
}
