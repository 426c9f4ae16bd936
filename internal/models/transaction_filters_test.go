package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) *DateRange {
	t.Helper()
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"ten days", "2024-01-01", "2024-01-11", 10},
		{"across leap february", "2024-01-01", "2024-05-01", 121},
		{"inverted", "2024-01-11", "2024-01-01", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRange(t, tt.start, tt.end).Days())
		})
	}
}

func TestNewDateRange_InvalidFormat(t *testing.T) {
	_, err := NewDateRange("01/01/2024", "2024-01-10")
	assert.Error(t, err)

	_, err = NewDateRange("2024-01-01", "tomorrow")
	assert.Error(t, err)
}

func TestAmountRange_Bounds(t *testing.T) {
	five := decimal.NewFromInt(500)
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name   string
		r      AmountRange
		wantLo string
		wantHi string
	}{
		{"both missing", AmountRange{}, "0", "1000000"},
		{"missing min", AmountRange{Max: &five}, "0", "500"},
		{"missing max", AmountRange{Min: &ten}, "10", "1000000"},
		{"both set", AmountRange{Min: &ten, Max: &five}, "10", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.r.Bounds()
			assert.Equal(t, tt.wantLo, lo.String())
			assert.Equal(t, tt.wantHi, hi.String())
		})
	}
}

func TestFilterState_AppliedDateRange(t *testing.T) {
	entry := mustRange(t, "2024-01-01", "2024-01-10")
	txnEntry := mustRange(t, "2024-02-01", "2024-02-10")
	value := mustRange(t, "2024-03-01", "2024-03-10")

	tests := []struct {
		name      string
		filters   FilterState
		wantField DateField
		wantRange *DateRange
		wantOK    bool
	}{
		{"none", FilterState{}, "", nil, false},
		{"value only", FilterState{ValueDateRange: value}, DateFieldValue, value, true},
		{"txn entry over value", FilterState{TxnEntryDateRange: txnEntry, ValueDateRange: value}, DateFieldTxnEntry, txnEntry, true},
		{"entry over all", FilterState{EntryDateRange: entry, TxnEntryDateRange: txnEntry, ValueDateRange: value}, DateFieldEntry, entry, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, r, ok := tt.filters.AppliedDateRange()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantRange, r)
		})
	}
}

func TestFilterState_SuppliedDateRanges(t *testing.T) {
	f := FilterState{
		ValueDateRange: mustRange(t, "2024-03-01", "2024-03-10"),
		EntryDateRange: mustRange(t, "2024-01-01", "2024-01-10"),
	}

	assert.Equal(t, []DateField{DateFieldEntry, DateFieldValue}, f.SuppliedDateRanges())
	assert.Empty(t, FilterState{}.SuppliedDateRanges())
}

func TestFilterState_Accounts(t *testing.T) {
	f := FilterState{AccountNumbers: []string{" 123 ", "", "456", "   "}}
	assert.Equal(t, []string{"123", "456"}, f.Accounts())
}

func TestPagination_OffsetLimit(t *testing.T) {
	p := Pagination{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, 25, p.Limit())

	d := DefaultPagination()
	assert.Equal(t, 0, d.Offset())
	assert.Equal(t, DefaultPageSize, d.Limit())
}

func TestDateField_IndexField(t *testing.T) {
	assert.Equal(t, FieldEntryDate, DateFieldEntry.IndexField())
	assert.Equal(t, FieldTxnEntryDate, DateFieldTxnEntry.IndexField())
	assert.Equal(t, FieldValueDate, DateFieldValue.IndexField())
	assert.Empty(t, DateField("unknown").IndexField())
}
