// =============================================================================
// Order Data Validator - Validation Engine
// =============================================================================
//
// This module implements the row-validation engine for order records. It
// validates each record against the fixed order schema:
//   - order_id : present, unique within one validation run
//   - item     : present after trimming whitespace
//   - date     : dd/mm/yyyy or mm-dd-yyyy, whole-string parse
//   - quantity : integer, zero or greater
//   - price    : floating-point number, zero or greater
//
// VALIDATION STRATEGY:
//   Checks run in a fixed order (identifier, item, date, quantity, price)
//   and every failing check is recorded, not just the first one, so callers
//   can present complete diagnostics for a row.
//
// ERROR HANDLING:
//   - Malformed or absent values are validation failures, never Go errors.
//   - Every record yields exactly one verdict.
//   - The only fatal condition is a missing required column, which callers
//     check with CheckRequiredColumns before validating.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/order-data-validator/internal/types"
)

// =============================================================================
// REASON STRINGS
// =============================================================================

// Reason strings are fixed constants. Downstream aggregation and filtering
// key on these exact values.
const (
	ReasonMissingOrderID   = "Missing order_id"
	ReasonDuplicateOrderID = "Duplicate order_id"
	ReasonMissingItem      = "Missing item"
	ReasonInvalidDate      = "Invalid date (dd/mm/yyyy or mm-dd-yyyy)"
	ReasonInvalidQuantity  = "Invalid quantity"
	ReasonNegativeQuantity = "Negative quantity"
	ReasonInvalidPrice     = "Invalid price"
	ReasonNegativePrice    = "Negative price"
)

// dateLayouts are the only two accepted date formats: day/month/year with
// slash separators and month-day/year with dash separators. Acceptance is
// deliberately lenient (an input may match either layout); a value is valid
// if at least one layout parses the whole string.
var dateLayouts = []string{
	"2/1/2006", // dd/mm/yyyy
	"1-2-2006", // mm-dd-yyyy
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the cross-row state for a single table-validation run: the
// set of order identifiers encountered so far. A Session is created fresh
// per run and discarded afterwards; it is owned by the caller and never
// shared between runs.
type Session struct {
	seenIDs map[string]struct{}
}

// NewSession creates an empty validation session.
func NewSession() *Session {
	return &Session{seenIDs: make(map[string]struct{})}
}

// Seen reports whether the identifier was already registered in this run.
func (s *Session) Seen(id string) bool {
	_, ok := s.seenIDs[id]
	return ok
}

// Register records an identifier as encountered. Identifiers are compared as
// exact strings; blank identifiers are never registered (the duplicate check
// only applies once presence passes).
func (s *Session) Register(id string) {
	s.seenIDs[id] = struct{}{}
}

// =============================================================================
// TAGGED PARSE RESULTS
// =============================================================================

// ParsedInt is the tagged result of an integer parse. Negativity is only
// meaningful when OK is true.
type ParsedInt struct {
	Value int64
	OK    bool
}

// ParsedFloat is the tagged result of a floating-point parse.
type ParsedFloat struct {
	Value float64
	OK    bool
}

// ParseQuantity parses a raw quantity value as an integer literal. Leading
// and trailing whitespace is tolerated; anything else that fails a direct
// integer parse is not OK.
func ParseQuantity(raw string) ParsedInt {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return ParsedInt{}
	}
	return ParsedInt{Value: n, OK: true}
}

// ParsePrice parses a raw price value as a floating-point literal. No
// thousands separators, no currency symbols.
func ParsePrice(raw string) ParsedFloat {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ParsedFloat{}
	}
	return ParsedFloat{Value: f, OK: true}
}

// ValidDate reports whether the raw value parses, as a whole string, with at
// least one of the two accepted date layouts.
func ValidDate(raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// isBlank reports whether a raw field value is absent or whitespace-only.
func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// =============================================================================
// ROW VALIDATOR
// =============================================================================

// ValidateRecord runs all five field checks against one record, in fixed
// order, accumulating every failing check's reason. On success of the
// identifier-presence check the identifier is registered in the session
// whether or not it was a duplicate: the seen-set tracks identifiers
// encountered, so the second and later occurrences are flagged, never the
// first.
func ValidateRecord(rec types.Record, session *Session) types.Verdict {
	var reasons []string

	// order_id: presence, then uniqueness within the session. Blank
	// identifiers skip the duplicate branch entirely and never enter the
	// seen-set.
	if isBlank(rec.OrderID) {
		reasons = append(reasons, ReasonMissingOrderID)
	} else {
		if session.Seen(rec.OrderID) {
			reasons = append(reasons, ReasonDuplicateOrderID)
		}
		session.Register(rec.OrderID)
	}

	// item: present and non-empty after trimming.
	if isBlank(rec.Item) {
		reasons = append(reasons, ReasonMissingItem)
	}

	// date: must match one of the two accepted layouts.
	if !ValidDate(rec.Date) {
		reasons = append(reasons, ReasonInvalidDate)
	}

	// quantity: integer literal, then non-negative.
	if qty := ParseQuantity(rec.Quantity); !qty.OK {
		reasons = append(reasons, ReasonInvalidQuantity)
	} else if qty.Value < 0 {
		reasons = append(reasons, ReasonNegativeQuantity)
	}

	// price: float literal, then non-negative.
	if price := ParsePrice(rec.Price); !price.OK {
		reasons = append(reasons, ReasonInvalidPrice)
	} else if price.Value < 0 {
		reasons = append(reasons, ReasonNegativePrice)
	}

	verdict := types.Verdict{
		RowNumber: rec.RowNumber,
		Status:    types.StatusValid,
		Reasons:   reasons,
	}
	if len(reasons) > 0 {
		verdict.Status = types.StatusInvalid
	}
	return verdict
}

// =============================================================================
// TABLE VALIDATOR
// =============================================================================

// ProgressFunc receives (rowsDone, rowsTotal) while a table is being
// validated. It is a notification hook only; it has no effect on the result.
type ProgressFunc func(done, total int)

// Options controls table validation.
type Options struct {
	// Progress, if non-nil, is invoked every ProgressInterval rows and once
	// after the final row.
	Progress ProgressFunc

	// ProgressInterval is how many rows to process between progress
	// callbacks. Values below 1 are treated as 1.
	ProgressInterval int
}

// ValidateTable validates an ordered sequence of records. It creates a fresh
// Session, applies the row validator to each record strictly in input order
// (row N's duplicate check depends on the identifiers seen before it), and
// returns one verdict per record, in the same order, together with the
// aggregate report.
func ValidateTable(records []types.Record, opts Options) ([]types.Verdict, TableReport) {
	interval := opts.ProgressInterval
	if interval < 1 {
		interval = 1
	}

	session := NewSession()
	verdicts := make([]types.Verdict, 0, len(records))
	total := len(records)

	for i, rec := range records {
		verdicts = append(verdicts, ValidateRecord(rec, session))

		if opts.Progress != nil && ((i+1)%interval == 0 || i+1 == total) {
			opts.Progress(i+1, total)
		}
	}

	return verdicts, BuildTableReport(verdicts)
}

// =============================================================================
// PRECONDITION CHECK
// =============================================================================

// CheckRequiredColumns verifies that every required schema column is present
// in the parsed header set. A missing column is fatal to the run: the error
// lists all absent columns and no per-row processing should be attempted.
func CheckRequiredColumns(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range types.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
