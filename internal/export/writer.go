// =============================================================================
// Order Data Validator - Export Module
// =============================================================================
//
// This module writes validation results out for review:
//   - the annotated table: original columns plus per-row status and error
//     message, as CSV or as an XLSX sheet
//   - the error report: run totals, error frequencies sorted by count, and
//     quick-fix suggestions, as plain text
//
// Reasons are modeled as a structured list everywhere else in the program;
// this module is the one place they are joined into a single display string.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-data-validator/internal/csvparser"
	"github.com/ginjaninja78/order-data-validator/internal/types"
	"github.com/ginjaninja78/order-data-validator/internal/validation"
)

// reasonSeparator joins a verdict's reasons for display.
const reasonSeparator = "; "

// noErrorsMessage is the error-message cell content for valid rows.
const noErrorsMessage = "No errors"

// SheetName is the sheet written to XLSX exports.
const SheetName = "Validated Data"

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Scope selects which rows are exported.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeValid   Scope = "valid"
	ScopeInvalid Scope = "invalid"
)

// Options controls annotated-table generation.
type Options struct {
	// Scope selects all, valid-only or invalid-only rows.
	// Default: ScopeAll
	Scope Scope

	// IncludeStatus appends the status column.
	IncludeStatus bool

	// IncludeErrorMessage appends the error_message column.
	IncludeErrorMessage bool
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{
		Scope:               ScopeAll,
		IncludeStatus:       true,
		IncludeErrorMessage: true,
	}
}

// =============================================================================
// ANNOTATED TABLE GENERATION
// =============================================================================

// BuildAnnotatedTable produces the output rows: header first, then one row
// per selected record with the original cells padded to the header width and
// the status/error columns appended. The verdict slice must parallel the
// table's data rows (the table validator guarantees one verdict per record,
// in order).
func BuildAnnotatedTable(data *csvparser.TableData, verdicts []types.Verdict, opts Options) ([][]string, error) {
	if len(verdicts) != len(data.RawRows) {
		return nil, fmt.Errorf("verdict count %d does not match row count %d", len(verdicts), len(data.RawRows))
	}

	header := append([]string{}, data.Headers...)
	if opts.IncludeStatus {
		header = append(header, "status")
	}
	if opts.IncludeErrorMessage {
		header = append(header, "error_message")
	}

	out := [][]string{header}

	for i, raw := range data.RawRows {
		verdict := verdicts[i]
		if !inScope(verdict.Status, opts.Scope) {
			continue
		}

		row := make([]string, data.ColumnCount)
		for col := 0; col < data.ColumnCount; col++ {
			if col < len(raw) {
				row[col] = raw[col]
			}
		}

		if opts.IncludeStatus {
			row = append(row, string(verdict.Status))
		}
		if opts.IncludeErrorMessage {
			row = append(row, errorMessage(verdict))
		}
		out = append(out, row)
	}

	return out, nil
}

// inScope reports whether a row with the given status is exported.
func inScope(status types.Status, scope Scope) bool {
	switch scope {
	case ScopeValid:
		return status == types.StatusValid
	case ScopeInvalid:
		return status == types.StatusInvalid
	default:
		return true
	}
}

// errorMessage renders a verdict's reasons for the error_message column.
func errorMessage(v types.Verdict) string {
	if v.Status == types.StatusValid {
		return noErrorsMessage
	}
	return strings.Join(v.Reasons, reasonSeparator)
}

// =============================================================================
// WRITERS
// =============================================================================

// WriteCSV writes the annotated table to a CSV file.
func WriteCSV(path string, data *csvparser.TableData, verdicts []types.Verdict, opts Options) error {
	rows, err := BuildAnnotatedTable(data, verdicts, opts)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the annotated table to an XLSX workbook with a single
// sheet.
func WriteXLSX(path string, data *csvparser.TableData, verdicts []types.Verdict, opts Options) error {
	rows, err := BuildAnnotatedTable(data, verdicts, opts)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// =============================================================================
// ERROR REPORT
// =============================================================================

// WriteErrorReport writes a plain-text summary of one validation run:
// totals, error frequencies sorted by count descending, quick fixes for the
// top three error types, and numeric column summaries.
func WriteErrorReport(path string, report validation.TableReport, freq validation.ErrorFrequencyReport, summaries []validation.NumericSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	b.WriteString("=== Validation Report ===\n")
	fmt.Fprintf(&b, "Total rows:      %d\n", report.Total)
	fmt.Fprintf(&b, "Valid rows:      %d\n", report.ValidCount)
	fmt.Fprintf(&b, "Invalid rows:    %d\n", report.InvalidCount)
	fmt.Fprintf(&b, "Validation rate: %.1f%%\n", report.ValidationRate*100)

	if entries := freq.SortedByCount(); len(entries) > 0 {
		b.WriteString("\nError frequency:\n")
		for _, entry := range entries {
			fmt.Fprintf(&b, "  %-42s %d\n", entry.Reason, entry.Count)
		}
	}

	if fixes := freq.QuickFixes(3); len(fixes) > 0 {
		b.WriteString("\nQuick fixes:\n")
		for _, fix := range fixes {
			fmt.Fprintf(&b, "  - %s\n", fix)
		}
	}

	if len(summaries) > 0 {
		b.WriteString("\nNumeric summary:\n")
		for _, s := range summaries {
			fmt.Fprintf(&b, "  %s: mean=%.2f median=%.2f min=%.2f max=%.2f (n=%d)\n",
				s.Column, s.Mean, s.Median, s.Min, s.Max, s.Count)
		}
	}

	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
