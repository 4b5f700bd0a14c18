package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-data-validator/internal/csvparser"
	"github.com/ginjaninja78/order-data-validator/internal/types"
	"github.com/ginjaninja78/order-data-validator/internal/validation"
)

// sampleTable builds a two-column table with one valid and one invalid row.
func sampleTable() (*csvparser.TableData, []types.Verdict) {
	data := &csvparser.TableData{
		Headers: []string{"order_id", "item"},
		Rows: []map[string]string{
			{"order_id": "A1", "item": "Widget"},
			{"order_id": "A2", "item": ""},
		},
		RawRows: [][]string{
			{"A1", "Widget"},
			{"A2", ""},
		},
		RowCount:    2,
		ColumnCount: 2,
	}
	verdicts := []types.Verdict{
		{RowNumber: 2, Status: types.StatusValid},
		{RowNumber: 3, Status: types.StatusInvalid, Reasons: []string{
			validation.ReasonMissingItem,
			validation.ReasonInvalidPrice,
		}},
	}
	return data, verdicts
}

func TestBuildAnnotatedTable(t *testing.T) {
	data, verdicts := sampleTable()

	rows, err := BuildAnnotatedTable(data, verdicts, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"order_id", "item", "status", "error_message"}, rows[0])
	assert.Equal(t, []string{"A1", "Widget", "Valid", "No errors"}, rows[1])

	// Reasons are joined only here, at the presentation boundary.
	assert.Equal(t, []string{"A2", "", "Invalid", "Missing item; Invalid price"}, rows[2])
}

func TestBuildAnnotatedTable_InvalidScope(t *testing.T) {
	data, verdicts := sampleTable()

	opts := DefaultOptions()
	opts.Scope = ScopeInvalid

	rows, err := BuildAnnotatedTable(data, verdicts, opts)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "A2", rows[1][0])
}

func TestBuildAnnotatedTable_WithoutStatusColumns(t *testing.T) {
	data, verdicts := sampleTable()

	rows, err := BuildAnnotatedTable(data, verdicts, Options{Scope: ScopeAll})
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "item"}, rows[0])
	assert.Equal(t, []string{"A1", "Widget"}, rows[1])
}

func TestBuildAnnotatedTable_VerdictCountMismatch(t *testing.T) {
	data, verdicts := sampleTable()

	_, err := BuildAnnotatedTable(data, verdicts[:1], DefaultOptions())
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	data, verdicts := sampleTable()
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, data, verdicts, DefaultOptions()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "status", rows[0][2])
	assert.Equal(t, "Valid", rows[1][2])
	assert.Equal(t, "Invalid", rows[2][2])
}

func TestWriteXLSX(t *testing.T) {
	data, verdicts := sampleTable()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteXLSX(path, data, verdicts, DefaultOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "order_id", rows[0][0])
	assert.Equal(t, "Missing item; Invalid price", rows[2][3])
}

func TestWriteErrorReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")

	report := validation.TableReport{Total: 4, ValidCount: 3, InvalidCount: 1, ValidationRate: 0.75}
	freq := validation.ErrorFrequencyReport{
		validation.ReasonMissingItem: 1,
	}
	summaries := []validation.NumericSummary{
		{Column: "price", Count: 4, Mean: 2.5, Median: 2.5, Min: 1, Max: 4},
	}

	require.NoError(t, WriteErrorReport(path, report, freq, summaries))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "Validation rate: 75.0%")
	assert.Contains(t, text, "Missing item")
	assert.Contains(t, text, "Fill in missing values")
	assert.Contains(t, text, "price: mean=2.50")
}
