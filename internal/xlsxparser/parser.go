// =============================================================================
// Order Data Validator - XLSX Parser Module
// =============================================================================
//
// This module parses XLSX order files into the same TableData shape the CSV
// parser produces, so the rest of the pipeline does not care which format a
// file arrived in. Data is read from the first sheet of the workbook; the
// first row is the header row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-data-validator/internal/csvparser"
)

// Parse reads an XLSX order file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//
// RETURNS:
//   - A pointer to the TableData struct containing the parsed table.
//   - An error if the file cannot be opened or has no usable sheet.
func Parse(filePath string) (*csvparser.TableData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	headers := cleanHeaders(allRows[0])

	rows := make([]map[string]string, 0, len(allRows)-1)
	rawRows := make([][]string, 0, len(allRows)-1)

	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, rowToMap(row, headers))
		rawRows = append(rawRows, row)
	}

	return &csvparser.TableData{
		Headers:     headers,
		Rows:        rows,
		RawRows:     rawRows,
		SourceFile:  filePath,
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}, nil
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

// rowToMap maps one raw row onto the headers. excelize truncates trailing
// empty cells, so missing cells become "".
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
