// =============================================================================
// Order Data Validator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, the main command for checking
// order files. It orchestrates the whole run: discovery, per-file pipelines,
// and the summary.
//
// COMMAND USAGE:
//   validator validate [flags]
//
// FLAGS:
//   --dry-run   : Validate without writing output files or archiving inputs
//   --file      : Validate only the given file instead of the input directory
//   --format    : Override the configured export format (csv or xlsx)
//   --only      : Override the configured export scope (all, valid, invalid)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover order files in the input directory (or take --file)
//   3. For each file (concurrently):
//      a. Parse the file (CSV or XLSX)
//      b. Check the required columns
//      c. Validate every row in order
//      d. Write the annotated table and error report
//      e. Archive the input file
//   4. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-data-validator/internal/pipeline"
	"github.com/ginjaninja78/order-data-validator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun validates without writing outputs or archiving inputs.
var dryRun bool

// singleFilePath validates only the given file.
var singleFilePath string

// formatOverride overrides the configured export format.
var formatOverride string

// scopeOverride overrides the configured export scope.
var scopeOverride string

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate order files and export annotated results",
	Long: `The validate command scans the input directory for CSV and XLSX order
files, validates every row of each file against the order schema, and writes
an annotated copy (original columns + status + error_message) together with
an error-summary report.

Files are processed concurrently; rows within a file are processed strictly
in order, because duplicate detection depends on earlier rows. Errors in one
file do not affect the processing of others.

On successful processing:
  - The annotated table and error report are placed in the output directory
  - The original file is moved to the input archive

On a precondition fault (missing required columns, unreadable file):
  - The file is skipped with an error, nothing is written for it
  - The original file remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate without writing output files or archiving inputs",
	)

	validateCmd.Flags().StringVar(
		&singleFilePath,
		"file",
		"",
		"Validate only the given file instead of the input directory",
	)

	validateCmd.Flags().StringVar(
		&formatOverride,
		"format",
		"",
		"Override the export format (csv or xlsx)",
	)

	validateCmd.Flags().StringVar(
		&scopeOverride,
		"only",
		"",
		"Override which rows are exported (all, valid, invalid)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runValidate orchestrates a full validation run.
func runValidate() error {
	startTime := time.Now()

	fmt.Println("=== Order Data Validator ===")
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if formatOverride != "" {
		cfg.Export.Format = formatOverride
	}
	if scopeOverride != "" {
		cfg.Export.Scope = scopeOverride
	}

	// Discover input files, or take the single file given on the flag.
	var inputFiles []string
	if singleFilePath != "" {
		inputFiles = []string{singleFilePath}
	} else {
		manager := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
		inputFiles, err = manager.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No order files found in the input directory.")
		return nil
	}
	fmt.Printf("Found %d file(s) to validate\n", len(inputFiles))

	// Process files concurrently. Every file owns its own validation
	// session, so runs never share state.
	var wg sync.WaitGroup
	results := make(chan pipeline.Result, len(inputFiles))

	for _, file := range inputFiles {
		wg.Add(1)
		go func(filePath string) {
			defer wg.Done()
			runner := pipeline.New(filePath, cfg, dryRun, verbose)
			results <- runner.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results and print the summary.
	var okCount, failCount, totalRows, invalidRows int

	for result := range results {
		if result.Success {
			okCount++
			totalRows += result.Stats.RowsProcessed
			invalidRows += result.Stats.InvalidRows
			fmt.Printf("  ok   %s: %d rows, %d invalid (%.1f%% valid)\n",
				filepath.Base(result.FilePath),
				result.Report.Total,
				result.Report.InvalidCount,
				result.Report.ValidationRate*100,
			)
			if result.OutputFile != "" {
				fmt.Printf("       -> %s\n", result.OutputFile)
			}
		} else {
			failCount++
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Validation Complete ===")
	fmt.Printf("Files processed: %d\n", okCount)
	fmt.Printf("Files failed:    %d\n", failCount)
	fmt.Printf("Rows validated:  %d\n", totalRows)
	fmt.Printf("Invalid rows:    %d\n", invalidRows)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if failCount > 0 {
		return fmt.Errorf("%d file(s) failed", failCount)
	}
	return nil
}
