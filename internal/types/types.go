// =============================================================================
// Order Data Validator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser
//   - validation
//   - export
//   - pipeline
//
// =============================================================================

package types

// =============================================================================
// SCHEMA COLUMNS
// =============================================================================

// Required column names for an order file. Extra columns in the input are
// carried through untouched; missing required columns are a fatal
// precondition for validation.
const (
	ColumnOrderID  = "order_id"
	ColumnDate     = "date"
	ColumnItem     = "item"
	ColumnQuantity = "quantity"
	ColumnPrice    = "price"
)

// RequiredColumns lists the schema columns in canonical order.
func RequiredColumns() []string {
	return []string{ColumnOrderID, ColumnDate, ColumnItem, ColumnQuantity, ColumnPrice}
}

// =============================================================================
// RECORD
// =============================================================================

// Record is a single order row as read from the source table. All fields are
// kept raw (unparsed strings); parsing happens inside the validation checks.
// A Record is immutable once read.
type Record struct {
	// OrderID is the raw order identifier value.
	OrderID string

	// Date is the raw order date value.
	Date string

	// Item is the raw item name value.
	Item string

	// Quantity is the raw quantity value.
	Quantity string

	// Price is the raw price value.
	Price string

	// RowNumber is the 1-indexed row number in the source file
	// (counting the header row), kept for error reporting.
	RowNumber int
}

// =============================================================================
// VERDICT
// =============================================================================

// Status is the per-record validation outcome.
type Status string

const (
	// StatusValid marks a record that passed every check.
	StatusValid Status = "Valid"

	// StatusInvalid marks a record that failed at least one check.
	StatusInvalid Status = "Invalid"
)

// Verdict is the validation outcome for a single record. Reasons is empty
// iff Status is StatusValid, and follows the fixed check order
// (identifier, item, date, quantity, price) so output is deterministic.
type Verdict struct {
	// RowNumber mirrors the source record's row number.
	RowNumber int

	// Status is Valid or Invalid.
	Status Status

	// Reasons lists every violated rule, in check order. Reasons stays a
	// structured list end-to-end; it is only joined into a single string at
	// the export boundary.
	Reasons []string
}

// HasReason reports whether the verdict carries the given reason.
func (v Verdict) HasReason(reason string) bool {
	for _, r := range v.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
