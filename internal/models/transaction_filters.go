package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the calendar date format used by the index and the API
	DateLayout = "2006-01-02"

	DefaultPage     = 1
	DefaultPageSize = 20
)

var (
	// DefaultMinAmount and DefaultMaxAmount fill a missing amount bound
	DefaultMinAmount = decimal.Zero
	DefaultMaxAmount = decimal.NewFromInt(1000000)
)

// DateRange is an inclusive range of calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses a start/end pair in DateLayout
func NewDateRange(start, end string) (*DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, err
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, err
	}
	return &DateRange{Start: s, End: e}, nil
}

// Days returns the number of whole days between start and end
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// AmountRange bounds a debit or credit amount; nil bounds are defaulted at query time
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Bounds returns the range with missing bounds replaced by the defaults
func (r AmountRange) Bounds() (decimal.Decimal, decimal.Decimal) {
	lo, hi := DefaultMinAmount, DefaultMaxAmount
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// SortField is one sort key of a search
type SortField struct {
	Field     string
	Direction SortDirection
}

// FilterState holds the user-chosen search criteria before submission
type FilterState struct {
	AccountNumbers    []string
	EntryDateRange    *DateRange
	TxnEntryDateRange *DateRange
	ValueDateRange    *DateRange
	SearchText        string
	DebitAmountRange  *AmountRange
	CreditAmountRange *AmountRange
	TransactionType   string
	Currency          string
	SortFields        []SortField
}

// Accounts returns the account numbers with blank entries removed
func (f FilterState) Accounts() []string {
	accounts := make([]string, 0, len(f.AccountNumbers))
	for _, acc := range f.AccountNumbers {
		if acc = strings.TrimSpace(acc); acc != "" {
			accounts = append(accounts, acc)
		}
	}
	return accounts
}

// RangeFor returns the range stored for the given field
func (f FilterState) RangeFor(field DateField) *DateRange {
	switch field {
	case DateFieldEntry:
		return f.EntryDateRange
	case DateFieldTxnEntry:
		return f.TxnEntryDateRange
	case DateFieldValue:
		return f.ValueDateRange
	}
	return nil
}

// SuppliedDateRanges returns every populated date range group in priority order
func (f FilterState) SuppliedDateRanges() []DateField {
	var fields []DateField
	for _, field := range DateFieldPriority {
		if f.RangeFor(field) != nil {
			fields = append(fields, field)
		}
	}
	return fields
}

// AppliedDateRange returns the single date range used by a search.
// Entry date wins over transaction entry date, which wins over value date.
func (f FilterState) AppliedDateRange() (DateField, *DateRange, bool) {
	for _, field := range DateFieldPriority {
		if r := f.RangeFor(field); r != nil {
			return field, r, true
		}
	}
	return "", nil, false
}

// Pagination is the 1-based page position of a search
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns the first page with the default size
func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Offset returns the number of rows skipped before this page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size
func (p Pagination) Limit() int {
	return p.PageSize
}
