// =============================================================================
// Order Data Validator - Numeric Column Summary
// =============================================================================

package validation

import "sort"

// NumericSummary holds descriptive statistics for one numeric column.
// Unparseable cells are skipped rather than failing the summary, so the
// statistics describe the usable portion of the column.
type NumericSummary struct {
	// Column is the column name the summary describes.
	Column string

	// Count is the number of cells that parsed as numbers.
	Count int

	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// SummarizeColumn computes mean/median/min/max over the parseable values of
// a raw column. Returns ok=false when no cell parses, in which case the
// summary carries only the column name.
func SummarizeColumn(column string, raw []string) (NumericSummary, bool) {
	var values []float64
	for _, cell := range raw {
		if parsed := ParsePrice(cell); parsed.OK {
			values = append(values, parsed.Value)
		}
	}

	summary := NumericSummary{Column: column, Count: len(values)}
	if len(values) == 0 {
		return summary, false
	}

	sort.Float64s(values)
	summary.Min = values[0]
	summary.Max = values[len(values)-1]

	var sum float64
	for _, v := range values {
		sum += v
	}
	summary.Mean = sum / float64(len(values))

	mid := len(values) / 2
	if len(values)%2 == 0 {
		summary.Median = (values[mid-1] + values[mid]) / 2
	} else {
		summary.Median = values[mid]
	}

	return summary, true
}
