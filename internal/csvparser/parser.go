// =============================================================================
// Order Data Validator - CSV Parser Module
// =============================================================================
//
// This module parses CSV order files into the shared table representation.
// It handles:
//   - Different delimiters (comma, pipe, tab, etc.)
//   - Quoted fields with lazy quote handling
//   - Blank rows (skipped)
//   - Rows with fewer columns than the header (missing cells become "")
//
// The first row is always the header row; extra columns beyond the order
// schema are preserved so exports can carry them through unchanged.
//
// A streaming variant is provided for bounded-memory previews of large
// files: it yields one row at a time instead of loading the whole table.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/order-data-validator/internal/config"
	"github.com/ginjaninja78/order-data-validator/internal/types"
)

// =============================================================================
// TABLE DATA STRUCTURE
// =============================================================================

// TableData represents a parsed order file, format-independent: the XLSX
// parser produces the same shape.
type TableData struct {
	// Headers contains the cleaned column headers.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// RawRows contains the data rows as string slices, in file order.
	// Useful for exports that must preserve the original cell layout.
	RawRows [][]string

	// SourceFile is the path to the source file.
	SourceFile string

	// RowCount is the number of data rows (excluding the header).
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}

// Records extracts the five schema fields from each row, preserving file
// order. RowNumber counts from 2 (row 1 is the header), matching what a
// user sees in a spreadsheet.
func (d *TableData) Records() []types.Record {
	records := make([]types.Record, 0, len(d.Rows))
	for i, row := range d.Rows {
		records = append(records, types.Record{
			OrderID:   row[types.ColumnOrderID],
			Date:      row[types.ColumnDate],
			Item:      row[types.ColumnItem],
			Quantity:  row[types.ColumnQuantity],
			Price:     row[types.ColumnPrice],
			RowNumber: i + 2,
		})
	}
	return records
}

// Column returns all values for one column, in row order.
func (d *TableData) Column(header string) []string {
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[header]
	}
	return values
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings from the configuration.
//
// RETURNS:
//   - A pointer to the TableData struct containing the parsed table.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*TableData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	rows, rawRows := extractDataRows(allRows[1:], headers)

	return &TableData{
		Headers:     headers,
		Rows:        rows,
		RawRows:     rawRows,
		SourceFile:  filePath,
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Input files from spreadsheet tools often have ragged rows; validation
	// reports missing cells as field failures rather than parse errors.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = settings.LazyQuotes
	reader.TrimLeadingSpace = settings.TrimLeadingSpace
}

// cleanHeaders trims headers and names empty ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// extractDataRows converts raw rows to header->value maps, skipping rows
// that are entirely blank. Cells past the header width are dropped; missing
// cells become "".
func extractDataRows(raw [][]string, headers []string) ([]map[string]string, [][]string) {
	rows := make([]map[string]string, 0, len(raw))
	rawKept := make([][]string, 0, len(raw))

	for _, row := range raw {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, rowToMap(row, headers))
		rawKept = append(rawKept, row)
	}
	return rows, rawKept
}

// rowToMap maps one raw row onto the headers.
func rowToMap(row []string, headers []string) map[string]string {
	rowMap := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			rowMap[header] = strings.TrimSpace(row[i])
		} else {
			rowMap[header] = ""
		}
	}
	return rowMap
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads a CSV file one row at a time. The preview command
// uses it to show the head of arbitrarily large files without loading them.
//
// USAGE:
//   parser, err := NewStreamingParser(filePath, settings)
//   if err != nil {
//       return err
//   }
//   defer parser.Close()
//
//   for parser.Next() {
//       row := parser.Row()
//       // Process the row...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	file       *os.File
	reader     *csv.Reader
	headers    []string
	currentRow map[string]string
	rowNumber  int
	err        error
}

// NewStreamingParser opens the file and reads the header row.
func NewStreamingParser(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader, settings)

	header, err := reader.Read()
	if err == io.EOF {
		file.Close()
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error reading header row: %w", err)
	}

	return &StreamingParser{
		file:      file,
		reader:    reader,
		headers:   cleanHeaders(header),
		rowNumber: 1,
	}, nil
}

// Next advances to the next non-empty row. Returns false when there are no
// more rows or an error occurred.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		row, err := p.reader.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
			return false
		}

		p.rowNumber++
		if isRowEmpty(row) {
			continue
		}

		p.currentRow = rowToMap(row, p.headers)
		return true
	}
}

// Row returns the current row as a map.
func (p *StreamingParser) Row() map[string]string {
	return p.currentRow
}

// Headers returns the parsed headers.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// RowNumber returns the current row number (1-indexed, header included).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file.
func (p *StreamingParser) Close() error {
	return p.file.Close()
}
