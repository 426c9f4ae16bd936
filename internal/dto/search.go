package dto

import (
	"strings"

	"txn-search/internal/models"

	"github.com/shopspring/decimal"
)

// SortParam is one requested sort key
type SortParam struct {
	Field     string `json:"field" validate:"required,sort_field"`
	Direction string `json:"direction" validate:"omitempty,sort_direction"`
}

// DatePair is an optional inclusive date range; both ends must be present together
type DatePair struct {
	Start string `json:"start" validate:"required_with=End,calendar_date"`
	End   string `json:"end" validate:"required_with=Start,calendar_date"`
}

// AmountPair is an optional amount range; a missing bound is filled with its default
type AmountPair struct {
	Min string `json:"min" validate:"amount"`
	Max string `json:"max" validate:"amount"`
}

// SearchTransactionsRequest is the body of a structured transaction search
type SearchTransactionsRequest struct {
	AccountNumbers  []string    `json:"accountNumbers" validate:"dive,omitempty,account_number"`
	EntryDate       *DatePair   `json:"entryDate"`
	TxnEntryDate    *DatePair   `json:"txnEntryDate"`
	ValueDate       *DatePair   `json:"valueDate"`
	SearchText      string      `json:"searchText" validate:"max=256"`
	DebitAmount     *AmountPair `json:"debitAmount"`
	CreditAmount    *AmountPair `json:"creditAmount"`
	TransactionType string      `json:"transactionType" validate:"omitempty,transaction_type"`
	Currency        string      `json:"currency" validate:"omitempty,iso4217"`
	SortFields      []SortParam `json:"sortFields" validate:"omitempty,max=2,dive"`
	Page            int         `json:"page" validate:"omitempty,min=1"`
	PageSize        int         `json:"pageSize" validate:"omitempty,min=1,max=1000"`
}

// Normalize trims user-entered text fields in place
func (r *SearchTransactionsRequest) Normalize() {
	for i, acc := range r.AccountNumbers {
		r.AccountNumbers[i] = strings.TrimSpace(acc)
	}
	r.SearchText = strings.TrimSpace(r.SearchText)
	r.TransactionType = strings.TrimSpace(r.TransactionType)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

// ToFilterState converts a validated request into search filters.
// Date and amount values are assumed to have passed their tags.
func (r *SearchTransactionsRequest) ToFilterState() models.FilterState {
	filters := models.FilterState{
		AccountNumbers:    r.AccountNumbers,
		EntryDateRange:    r.EntryDate.dateRange(),
		TxnEntryDateRange: r.TxnEntryDate.dateRange(),
		ValueDateRange:    r.ValueDate.dateRange(),
		SearchText:        r.SearchText,
		DebitAmountRange:  r.DebitAmount.amountRange(),
		CreditAmountRange: r.CreditAmount.amountRange(),
		TransactionType:   r.TransactionType,
		Currency:          r.Currency,
	}
	for _, s := range r.SortFields {
		filters.SortFields = append(filters.SortFields, models.SortField{
			Field:     s.Field,
			Direction: models.SortDirection(strings.ToLower(s.Direction)),
		})
	}
	return filters
}

// Pagination returns the requested page, defaulting missing values
func (r *SearchTransactionsRequest) Pagination() models.Pagination {
	p := models.DefaultPagination()
	if r.Page > 0 {
		p.Page = r.Page
	}
	if r.PageSize > 0 {
		p.PageSize = r.PageSize
	}
	return p
}

func (p *DatePair) dateRange() *models.DateRange {
	if p == nil || p.Start == "" || p.End == "" {
		return nil
	}
	r, err := models.NewDateRange(p.Start, p.End)
	if err != nil {
		return nil
	}
	return r
}

func (p *AmountPair) amountRange() *models.AmountRange {
	if p == nil {
		return nil
	}
	lo, loOK := parseAmount(p.Min)
	hi, hiOK := parseAmount(p.Max)
	if !loOK && !hiOK {
		return nil
	}
	r := &models.AmountRange{}
	if loOK {
		r.Min = &lo
	}
	if hiOK {
		r.Max = &hi
	}
	return r
}

func parseAmount(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// TransactionItem is one row of a search response
type TransactionItem struct {
	ID                string `json:"id"`
	AccountNumber     string `json:"accountNumber"`
	AccountName       string `json:"accountName,omitempty"`
	CustomerReference string `json:"customerReference,omitempty"`
	TransactionType   string `json:"transactionType"`
	Iban              string `json:"iban,omitempty"`
	Currency          string `json:"currency"`
	CreditAmount      string `json:"creditAmount"`
	DebitAmount       string `json:"debitAmount"`
	TxnEntryDate      string `json:"txnEntryDate,omitempty"`
	EntryDate         string `json:"entryDate,omitempty"`
	ValueDate         string `json:"valueDate,omitempty"`
}

// SearchPagination contains pagination metadata of a search response
type SearchPagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// SearchTransactionsResponse is the response of a structured transaction search
type SearchTransactionsResponse struct {
	Transactions     []TransactionItem `json:"transactions"`
	Pagination       SearchPagination  `json:"pagination"`
	AppliedDateField string            `json:"appliedDateField,omitempty"`
}

// NewSearchTransactionsResponse maps a search result to its response body
func NewSearchTransactionsResponse(result *models.SearchResult) SearchTransactionsResponse {
	items := make([]TransactionItem, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		rec := txn.Record
		items = append(items, TransactionItem{
			ID:                txn.ID,
			AccountNumber:     rec.AccountNumber,
			AccountName:       rec.AccountName,
			CustomerReference: rec.CustomerReference,
			TransactionType:   rec.TransactionType,
			Iban:              rec.Iban,
			Currency:          rec.Currency,
			CreditAmount:      rec.CreditAmount.StringFixed(2),
			DebitAmount:       rec.DebitAmount.StringFixed(2),
			TxnEntryDate:      rec.TxnEntryDate,
			EntryDate:         rec.EntryDate,
			ValueDate:         rec.ValueDate,
		})
	}

	var totalPages int64
	if size := int64(result.Pagination.PageSize); size > 0 {
		totalPages = (result.Total + size - 1) / size
	}

	return SearchTransactionsResponse{
		Transactions: items,
		Pagination: SearchPagination{
			Page:       result.Pagination.Page,
			PageSize:   result.Pagination.PageSize,
			Total:      result.Total,
			TotalPages: totalPages,
		},
		AppliedDateField: string(result.AppliedDateField),
	}
}
