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
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export strategies to a file",
	Long: `Export every policy document to a JSON or YAML file, in the
canonical shape consumed by the traffic-control engine.

Examples:
  netflow export --output strategies.json --format json
  netflow export --output strategies.yaml --format yaml
  netflow export > backup.json`,
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

		// Determine output destination
		var output *os.File
		if exportOutput == "" || exportOutput == "-" {
			output = os.Stdout
		} else {
			output, err = os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer output.Close()
		}

		// Export based on format
		switch format {
		case "yaml":
			encoder := yaml.NewEncoder(output)
			defer encoder.Close()
			encoder.SetIndent(2)
			if err := encoder.Encode(docs); err != nil {
				return fmt.Errorf("failed to encode YAML: %w", err)
			}
		default:
			// Default to JSON: the canonical wire format
			encoder := json.NewEncoder(output)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(docs); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
		}

		if !quiet && exportOutput != "" && exportOutput != "-" {
			fmt.Printf("Exported %d strategies to %s\n", len(docs), exportOutput)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
