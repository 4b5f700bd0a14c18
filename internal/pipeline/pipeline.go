// =============================================================================
// Order Data Validator - Pipeline Module
// =============================================================================
//
// This module orchestrates the validation pipeline for a single order file:
//
//   1. Compute the input checksum (run metadata)
//   2. Parse the file (CSV or XLSX, by extension)
//   3. Check the required-column precondition (fatal on failure)
//   4. Validate all rows in order, reporting progress
//   5. Aggregate error frequencies and numeric summaries
//   6. Write the annotated table and the error report
//   7. Archive the input file
//
// CONCURRENCY:
//   Each file is processed in its own goroutine by the CLI. Files are
//   independent: every run owns a fresh validation session, so nothing is
//   shared between them. Rows within one file are processed strictly
//   sequentially because the duplicate check depends on the identifiers
//   seen in earlier rows.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/order-data-validator/internal/config"
	"github.com/ginjaninja78/order-data-validator/internal/csvparser"
	"github.com/ginjaninja78/order-data-validator/internal/export"
	"github.com/ginjaninja78/order-data-validator/internal/types"
	"github.com/ginjaninja78/order-data-validator/internal/validation"
	"github.com/ginjaninja78/order-data-validator/internal/xlsxparser"
	"github.com/ginjaninja78/order-data-validator/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the annotated table.
	// This is empty if processing failed or on a dry run.
	OutputFile string

	// ReportFile is the path to the error report.
	ReportFile string

	// Checksum is the hex MD5 digest of the input file.
	Checksum string

	// Success indicates whether processing completed. Invalid rows do not
	// make a run unsuccessful; only precondition faults and I/O errors do.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Report is the aggregate validation report for the file.
	Report validation.TableReport

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows validated.
	RowsProcessed int

	// InvalidRows is the number of rows with at least one violation.
	InvalidRows int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the console-output interface used by the pipeline.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger writes Info and above to stdout; Debug only when verbose.
type defaultLogger struct {
	verbose bool
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner processes a single order file.
type Runner struct {
	// filePath is the path to the input file.
	filePath string

	// cfg is the application configuration.
	cfg *config.MainConfig

	// dryRun skips writing outputs and archiving inputs.
	dryRun bool

	// logger is used for console output.
	logger Logger
}

// New creates a Runner for one input file.
func New(filePath string, cfg *config.MainConfig, dryRun, verbose bool) *Runner {
	return &Runner{
		filePath: filePath,
		cfg:      cfg,
		dryRun:   dryRun,
		logger:   &defaultLogger{verbose: verbose},
	}
}

// SetLogger replaces the console logger; tests use this to silence output.
func (r *Runner) SetLogger(logger Logger) {
	r.logger = logger
}

// Run executes the pipeline for the file and returns the Result. Run never
// panics on malformed data; per-row problems become verdicts, and anything
// fatal is reported in Result.Error.
func (r *Runner) Run() Result {
	start := time.Now()
	result := Result{FilePath: r.filePath}

	fail := func(err error) Result {
		result.Success = false
		result.Error = err
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	checksum, err := utils.Checksum(r.filePath)
	if err != nil {
		return fail(err)
	}
	result.Checksum = checksum
	r.logger.Debug("checksum %s %s", filepath.Base(r.filePath), checksum)

	// Parse. Both parsers produce the same table shape.
	data, err := r.parse()
	if err != nil {
		return fail(fmt.Errorf("parse failed: %w", err))
	}

	// Precondition: all schema columns must exist. Fatal, no partial
	// processing.
	if err := validation.CheckRequiredColumns(data.Headers); err != nil {
		return fail(err)
	}

	// Validate, strictly in row order.
	records := data.Records()
	verdicts, report := validation.ValidateTable(records, validation.Options{
		ProgressInterval: r.cfg.ProgressInterval,
		Progress: func(done, total int) {
			r.logger.Debug("processing %s: %d/%d rows", filepath.Base(r.filePath), done, total)
		},
	})

	result.Report = report
	result.Stats.RowsProcessed = report.Total
	result.Stats.InvalidRows = report.InvalidCount

	freq := validation.AggregateErrors(verdicts)

	var summaries []validation.NumericSummary
	for _, col := range []string{types.ColumnQuantity, types.ColumnPrice} {
		if s, ok := validation.SummarizeColumn(col, data.Column(col)); ok {
			summaries = append(summaries, s)
		}
	}

	if r.dryRun {
		r.logger.Info("dry run: skipping output for %s", filepath.Base(r.filePath))
		result.Success = true
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	// Write annotated table + error report.
	outputFile, err := r.writeOutput(data, verdicts)
	if err != nil {
		return fail(err)
	}
	result.OutputFile = outputFile

	reportFile := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_errors.txt"
	if err := export.WriteErrorReport(reportFile, report, freq, summaries); err != nil {
		return fail(err)
	}
	result.ReportFile = reportFile

	// Archive the input only after all outputs exist.
	manager := utils.NewFileManager(r.cfg.InputDir, r.cfg.OutputDir, r.cfg.InputArchiveDir)
	if _, err := manager.ArchiveInput(r.filePath); err != nil {
		return fail(err)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// parse dispatches to the CSV or XLSX parser by file extension.
func (r *Runner) parse() (*csvparser.TableData, error) {
	switch strings.ToLower(filepath.Ext(r.filePath)) {
	case ".csv":
		return csvparser.Parse(r.filePath, r.cfg.CSVSettings)
	case ".xlsx":
		return xlsxparser.Parse(r.filePath)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(r.filePath))
	}
}

// writeOutput writes the annotated table in the configured format and
// returns its path.
func (r *Runner) writeOutput(data *csvparser.TableData, verdicts []types.Verdict) (string, error) {
	opts := export.Options{
		Scope:               export.Scope(r.cfg.Export.Scope),
		IncludeStatus:       r.cfg.Export.IncludeStatus,
		IncludeErrorMessage: r.cfg.Export.IncludeErrorMessage,
	}

	name := utils.RenderOutputName(r.cfg.Export.NamePattern, r.filePath)
	outputFile := filepath.Join(r.cfg.OutputDir, name+"."+r.cfg.Export.Format)

	switch r.cfg.Export.Format {
	case "xlsx":
		if err := export.WriteXLSX(outputFile, data, verdicts, opts); err != nil {
			return "", err
		}
	default:
		if err := export.WriteCSV(outputFile, data, verdicts, opts); err != nil {
			return "", err
		}
	}
	return outputFile, nil
}
