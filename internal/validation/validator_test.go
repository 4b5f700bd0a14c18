package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/order-data-validator/internal/types"
)

// goodRecord returns a record that passes every check.
func goodRecord(id string, row int) types.Record {
	return types.Record{
		OrderID:   id,
		Date:      "31/12/2024",
		Item:      "Widget",
		Quantity:  "3",
		Price:     "9.99",
		RowNumber: row,
	}
}

func TestValidateRecord_AllFieldsValid(t *testing.T) {
	verdict := ValidateRecord(goodRecord("A1", 2), NewSession())

	assert.Equal(t, types.StatusValid, verdict.Status)
	assert.Empty(t, verdict.Reasons)
	assert.Equal(t, 2, verdict.RowNumber)
}

func TestValidateRecord_FullyMalformedRowListsEveryReason(t *testing.T) {
	rec := types.Record{
		OrderID:  "",
		Item:     "   ",
		Date:     "2024/12/31",
		Quantity: "abc",
		Price:    "free",
	}

	verdict := ValidateRecord(rec, NewSession())

	require.Equal(t, types.StatusInvalid, verdict.Status)
	// All checks run, none short-circuit, and reasons follow check order.
	assert.Equal(t, []string{
		ReasonMissingOrderID,
		ReasonMissingItem,
		ReasonInvalidDate,
		ReasonInvalidQuantity,
		ReasonInvalidPrice,
	}, verdict.Reasons)
}

func TestValidateRecord_DuplicateIdentifier(t *testing.T) {
	session := NewSession()

	first := ValidateRecord(goodRecord("A", 2), session)
	second := ValidateRecord(goodRecord("A", 3), session)
	third := ValidateRecord(goodRecord("B", 4), session)

	assert.Empty(t, first.Reasons)
	assert.Equal(t, []string{ReasonDuplicateOrderID}, second.Reasons)
	assert.Empty(t, third.Reasons)
}

func TestValidateRecord_BlankIdentifierNeverFlaggedDuplicate(t *testing.T) {
	session := NewSession()

	first := ValidateRecord(goodRecord("", 2), session)
	second := ValidateRecord(goodRecord("  ", 3), session)

	// Two blank identifiers each get exactly one Missing reason; the blank
	// value never enters the seen-set, so neither is flagged Duplicate.
	assert.Equal(t, []string{ReasonMissingOrderID}, first.Reasons)
	assert.Equal(t, []string{ReasonMissingOrderID}, second.Reasons)
}

func TestValidateRecord_DuplicateRegisteredEvenWhenFlagged(t *testing.T) {
	session := NewSession()

	ValidateRecord(goodRecord("A", 2), session)
	ValidateRecord(goodRecord("A", 3), session)
	third := ValidateRecord(goodRecord("A", 4), session)

	// Later occurrences keep being flagged.
	assert.Equal(t, []string{ReasonDuplicateOrderID}, third.Reasons)
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"31/12/2024", true},  // dd/mm/yyyy
		{"12-31-2024", true},  // mm-dd-yyyy
		{"03-04-2024", true},  // ambiguous but matches mm-dd-yyyy
		{"5/4/2024", true},    // unpadded day/month accepted
		{"2024/12/31", false}, // matches neither layout
		{"31-12-2024", false}, // dd with dash separators is not a layout
		{"13-13-2024", false}, // no month 13
		{"32/12/2024", false}, // no day 32
		{"31/12/2024 ", true}, // surrounding whitespace tolerated
		{"not a date", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.value), "value %q", tt.value)
		})
	}
}

func TestValidateRecord_Quantity(t *testing.T) {
	tests := []struct {
		quantity string
		reasons  []string
	}{
		{"5", nil},
		{"0", nil},
		{" 7 ", nil},
		{"-5", []string{ReasonNegativeQuantity}},
		{"abc", []string{ReasonInvalidQuantity}},
		{"3.5", []string{ReasonInvalidQuantity}},
		{"", []string{ReasonInvalidQuantity}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("quantity=%q", tt.quantity), func(t *testing.T) {
			rec := goodRecord("Q-"+tt.quantity, 2)
			rec.Quantity = tt.quantity

			verdict := ValidateRecord(rec, NewSession())
			assert.Equal(t, tt.reasons, verdict.Reasons)
		})
	}
}

func TestValidateRecord_Price(t *testing.T) {
	tests := []struct {
		price   string
		reasons []string
	}{
		{"9.99", nil},
		{"0", nil},
		{"10", nil},
		{"-0.01", []string{ReasonNegativePrice}},
		{"$10", []string{ReasonInvalidPrice}},
		{"1,000.00", []string{ReasonInvalidPrice}},
		{"", []string{ReasonInvalidPrice}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("price=%q", tt.price), func(t *testing.T) {
			rec := goodRecord("P-"+tt.price, 2)
			rec.Price = tt.price

			verdict := ValidateRecord(rec, NewSession())
			assert.Equal(t, tt.reasons, verdict.Reasons)
		})
	}
}

func TestValidateTable_OrderAndCountPreserved(t *testing.T) {
	records := []types.Record{
		goodRecord("A", 2),
		goodRecord("A", 3), // duplicate
		goodRecord("B", 4),
	}

	verdicts, report := ValidateTable(records, Options{})

	require.Len(t, verdicts, len(records))
	assert.Equal(t, []int{2, 3, 4}, []int{verdicts[0].RowNumber, verdicts[1].RowNumber, verdicts[2].RowNumber})

	assert.Empty(t, verdicts[0].Reasons)
	assert.Equal(t, []string{ReasonDuplicateOrderID}, verdicts[1].Reasons)
	assert.Empty(t, verdicts[2].Reasons)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.ValidCount)
	assert.Equal(t, 1, report.InvalidCount)
	assert.InDelta(t, 2.0/3.0, report.ValidationRate, 1e-9)
}

func TestValidateTable_EmptyInput(t *testing.T) {
	verdicts, report := ValidateTable(nil, Options{})

	assert.Empty(t, verdicts)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.ValidationRate)
}

func TestValidateTable_SessionsDoNotLeakBetweenRuns(t *testing.T) {
	records := []types.Record{goodRecord("A", 2)}

	first, _ := ValidateTable(records, Options{})
	second, _ := ValidateTable(records, Options{})

	// The same identifier in a fresh run is not a duplicate.
	assert.Equal(t, types.StatusValid, first[0].Status)
	assert.Equal(t, types.StatusValid, second[0].Status)
}

func TestValidateTable_ProgressHook(t *testing.T) {
	records := make([]types.Record, 5)
	for i := range records {
		records[i] = goodRecord(fmt.Sprintf("R%d", i), i+2)
	}

	var calls [][2]int
	ValidateTable(records, Options{
		ProgressInterval: 2,
		Progress: func(done, total int) {
			calls = append(calls, [2]int{done, total})
		},
	})

	// Every interval boundary plus the final row.
	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, calls)
}

func TestCheckRequiredColumns(t *testing.T) {
	full := []string{"order_id", "date", "item", "quantity", "price", "notes"}
	assert.NoError(t, CheckRequiredColumns(full))

	err := CheckRequiredColumns([]string{"order_id", "item"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "price")
	assert.NotContains(t, err.Error(), "order_id,")
}

func TestParseQuantityAndPrice_Tagged(t *testing.T) {
	qty := ParseQuantity("-5")
	require.True(t, qty.OK)
	assert.Equal(t, int64(-5), qty.Value)

	assert.False(t, ParseQuantity("five").OK)

	price := ParsePrice(" 2.50 ")
	require.True(t, price.OK)
	assert.Equal(t, 2.5, price.Value)

	assert.False(t, ParsePrice("2,50").OK)
}
