// =============================================================================
// Order Data Validator - Preview Command
// =============================================================================
//
// This file defines the 'preview' command, which shows the first rows of a
// single order file along with the required-column check. CSV files are read
// with the streaming parser, so previewing a very large file stays cheap.
//
// COMMAND USAGE:
//   validator preview --file orders.csv [--rows 20]
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-data-validator/internal/csvparser"
	"github.com/ginjaninja78/order-data-validator/internal/types"
	"github.com/ginjaninja78/order-data-validator/internal/validation"
	"github.com/ginjaninja78/order-data-validator/internal/xlsxparser"
)

// previewFile is the file to preview.
var previewFile string

// previewRows overrides the configured preview row count.
var previewRows int

// previewCmd represents the 'preview' command.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the first rows of an order file",
	Long: `The preview command prints the header and the first rows of a single
order file, and reports whether the file carries every required column.
Nothing is validated or written; this is a quick look before running
'validator validate'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if previewFile == "" {
			return fmt.Errorf("--file is required")
		}
		return runPreview()
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewFile, "file", "", "Path to the file to preview")
	previewCmd.Flags().IntVar(&previewRows, "rows", 0, "Number of rows to show (default from config)")
}

// runPreview prints the head of the file plus the column check.
func runPreview() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	limit := previewRows
	if limit <= 0 {
		limit = cfg.PreviewRows
	}

	var headers []string
	var rows []map[string]string

	switch strings.ToLower(filepath.Ext(previewFile)) {
	case ".csv":
		parser, err := csvparser.NewStreamingParser(previewFile, cfg.CSVSettings)
		if err != nil {
			return err
		}
		defer parser.Close()

		headers = parser.Headers()
		for len(rows) < limit && parser.Next() {
			rows = append(rows, parser.Row())
		}
		if err := parser.Err(); err != nil {
			return err
		}
	case ".xlsx":
		data, err := xlsxparser.Parse(previewFile)
		if err != nil {
			return err
		}
		headers = data.Headers
		rows = data.Rows
		if len(rows) > limit {
			rows = rows[:limit]
		}
	default:
		return fmt.Errorf("unsupported file type %q", filepath.Ext(previewFile))
	}

	fmt.Printf("File:    %s\n", previewFile)
	fmt.Printf("Columns: %s\n", strings.Join(headers, ", "))

	if err := validation.CheckRequiredColumns(headers); err != nil {
		fmt.Printf("Schema:  %v\n", err)
	} else {
		fmt.Println("Schema:  all required columns present")
	}

	fmt.Printf("\nFirst %d row(s):\n", len(rows))
	for i, row := range rows {
		var cells []string
		for _, col := range types.RequiredColumns() {
			cells = append(cells, fmt.Sprintf("%s=%q", col, row[col]))
		}
		fmt.Printf("  %3d  %s\n", i+1, strings.Join(cells, " "))
	}
	return nil
}
