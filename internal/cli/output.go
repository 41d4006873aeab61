package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/wj-stack/NetFlow/internal/strategy"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintStrategies outputs policy documents in the specified format
func PrintStrategies(docs []strategy.PolicyDocument, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(docs)
	case FormatYAML:
		return printYAML(docs)
	case FormatTable:
		return printTable(docs)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintStrategy outputs a single policy document in the specified format
func PrintStrategy(doc *strategy.PolicyDocument, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(doc)
	case FormatYAML:
		return printYAML(doc)
	case FormatTable:
		return printTable([]strategy.PolicyDocument{*doc})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintForm outputs the editable form representation of one strategy
func PrintForm(form *strategy.FormState, format OutputFormat) error {
	switch format {
	case FormatYAML:
		return printYAML(form)
	case FormatJSON, FormatTable:
		// The form is a nested editing structure; a flat table adds nothing
		return printJSON(form)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printTable(docs []strategy.PolicyDocument) error {
	table := tablewriter.NewWriter(os.Stdout)

	// Set headers
	table.Header("Strategy ID", "Kind", "Global Limit", "Expire", "Conditions", "Description")

	// Add rows
	for _, doc := range docs {
		action := doc.Filter.ResponseOnMatch

		description := doc.Filter.Desc
		if len(description) > 40 {
			description = description[:37] + "..."
		}

		conditions := make([]string, 0, len(doc.Filter.MatchAll))
		for _, m := range doc.Filter.MatchAll {
			conditions = append(conditions, strings.Join(m.Match, " "))
		}

		table.Append(
			action.StrategyID,
			action.Strategy,
			formatLimit(action.SpeedInfo.Limit.Global),
			formatExpire(action.SpeedInfo.Expire),
			strings.Join(conditions, "; "),
			description,
		)
	}

	return table.Render()
}

func formatLimit(limit *float64) string {
	if limit == nil || *limit == -1 {
		return "unlimited"
	}
	if *limit == 0 {
		return "blocked"
	}
	return strconv.FormatFloat(*limit, 'f', -1, 64) + " KB/s"
}

func formatExpire(expire *float64) string {
	if expire == nil {
		return "-"
	}
	return strconv.FormatFloat(*expire, 'f', -1, 64) + "s"
}
