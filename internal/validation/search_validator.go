package validation

import (
	"errors"
	"time"

	"txn-search/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// MaxRangeDays is the widest date range a search may cover
	MaxRangeDays = 95
	// MaxLookbackYears bounds how far back a range may start
	MaxLookbackYears = 2
)

var (
	ErrMissingAccountNumber = errors.New("at least one account number is required")
	ErrMissingDateRange     = errors.New("one of entry date, transaction entry date or value date range is required")
	ErrRangeTooWide         = errors.New("date range cannot exceed 95 days")
	ErrRangeTooOld          = errors.New("date range cannot start more than 2 years ago")
	ErrRangeReversed        = errors.New("date range cannot end before it starts")
)

// SearchValidator checks a filter state against the mandatory field and date window rules
type SearchValidator struct {
	now func() time.Time
}

// SearchValidatorOption configures a SearchValidator
type SearchValidatorOption func(*SearchValidator)

// WithClock overrides the time source used for the lookback rule
func WithClock(now func() time.Time) SearchValidatorOption {
	return func(v *SearchValidator) {
		v.now = now
	}
}

// NewSearchValidator creates a validator using the wall clock unless overridden
func NewSearchValidator(opts ...SearchValidatorOption) *SearchValidator {
	v := &SearchValidator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateFilters returns nil when the filters may be searched, otherwise the first rule broken.
// Rules run in order: account numbers, date range presence, range order, range width, range age.
func (v *SearchValidator) ValidateFilters(filters models.FilterState) error {
	if len(filters.Accounts()) == 0 {
		return ErrMissingAccountNumber
	}

	supplied := filters.SuppliedDateRanges()
	if len(supplied) == 0 {
		return ErrMissingDateRange
	}

	ranges := make([]*models.DateRange, 0, len(supplied))
	for _, field := range supplied {
		ranges = append(ranges, filters.RangeFor(field))
	}

	for _, r := range ranges {
		if r.End.Before(r.Start) {
			return ErrRangeReversed
		}
	}

	for _, r := range ranges {
		if r.Days() > MaxRangeDays {
			return ErrRangeTooWide
		}
	}

	earliest := v.today().AddDate(-MaxLookbackYears, 0, 0)
	for _, r := range ranges {
		if r.Start.Before(earliest) {
			return ErrRangeTooOld
		}
	}

	return nil
}

// today returns the current calendar date at UTC midnight
func (v *SearchValidator) today() time.Time {
	now := v.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// IsValidationError reports whether err is one of the filter rule violations
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingAccountNumber) ||
		errors.Is(err, ErrMissingDateRange) ||
		errors.Is(err, ErrRangeTooWide) ||
		errors.Is(err, ErrRangeTooOld) ||
		errors.Is(err, ErrRangeReversed)
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(models.DateLayout, value)
}

func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}
