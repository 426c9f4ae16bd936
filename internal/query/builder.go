// Package query turns a transaction filter state into an engine search request.
package query

import (
	"strings"
	"unicode/utf8"

	"txn-search/internal/models"
)

const (
	// MinSearchTextLength is the shortest free text that produces a clause
	MinSearchTextLength = 3

	defaultOperator = "OR"
)

// queryStringReserved are the characters escaped in free text before it is
// turned into a prefix query
const queryStringReserved = `\+-=&|><!(){}[]^"~*?:/`

// Build creates the search request for validated filters and a page position.
// Filter clause order is fixed: accounts, date range, debit amount, credit amount.
// Must clause order is fixed: free text, transaction type, currency.
func Build(filters models.FilterState, pagination models.Pagination) models.SearchRequest {
	return models.SearchRequest{
		TrackTotalHits: true,
		Query: models.Query{
			Bool: models.BoolQuery{
				Must:   mustClauses(filters),
				Filter: filterClauses(filters),
			},
		},
		Sort: sortClauses(filters.SortFields),
		From: pagination.Offset(),
		Size: pagination.Limit(),
	}
}

func filterClauses(filters models.FilterState) []models.Clause {
	clauses := []models.Clause{TermsClause(models.FieldAccountNumber, filters.Accounts())}

	if field, r, ok := filters.AppliedDateRange(); ok {
		clauses = append(clauses, DateRangeClause(field.IndexField(), *r))
	}
	if filters.DebitAmountRange != nil {
		clauses = append(clauses, AmountRangeClause(models.FieldDebitAmount, *filters.DebitAmountRange))
	}
	if filters.CreditAmountRange != nil {
		clauses = append(clauses, AmountRangeClause(models.FieldCreditAmount, *filters.CreditAmountRange))
	}

	return clauses
}

func mustClauses(filters models.FilterState) []models.Clause {
	clauses := []models.Clause{}

	if utf8.RuneCountInString(filters.SearchText) >= MinSearchTextLength {
		clauses = append(clauses, PrefixQueryClause(filters.SearchText, models.FreeTextFields))
	}
	if filters.TransactionType != "" {
		clauses = append(clauses, MatchClause(models.FieldTransactionType, filters.TransactionType))
	}
	if filters.Currency != "" {
		clauses = append(clauses, MatchClause(models.FieldCurrency, filters.Currency))
	}

	return clauses
}

func sortClauses(fields []models.SortField) []models.SortClause {
	if len(fields) == 0 {
		fields = []models.SortField{models.DefaultSort}
	}

	clauses := make([]models.SortClause, 0, len(fields))
	for _, f := range fields {
		direction := models.SortDirection(strings.ToLower(string(f.Direction)))
		if direction != models.SortAsc {
			direction = models.SortDesc
		}
		clauses = append(clauses, models.SortClause{f.Field: {Order: direction}})
	}
	return clauses
}

// TermsClause matches documents whose field is any of values
func TermsClause(field string, values []string) models.Clause {
	return models.Clause{Terms: map[string][]string{field: values}}
}

// DateRangeClause bounds a date field inclusively
func DateRangeClause(field string, r models.DateRange) models.Clause {
	return models.Clause{Range: map[string]models.RangeBounds{
		field: {Gte: r.Start.Format(models.DateLayout), Lte: r.End.Format(models.DateLayout)},
	}}
}

// AmountRangeClause bounds an amount field inclusively, defaulting missing bounds
func AmountRangeClause(field string, r models.AmountRange) models.Clause {
	lo, hi := r.Bounds()
	return models.Clause{Range: map[string]models.RangeBounds{
		field: {Gte: lo.String(), Lte: hi.String()},
	}}
}

// MatchClause matches a single field value
func MatchClause(field, value string) models.Clause {
	return models.Clause{Match: map[string]string{field: value}}
}

// PrefixQueryClause matches text as a prefix in any of fields
func PrefixQueryClause(text string, fields []string) models.Clause {
	return models.Clause{QueryString: &models.QueryString{
		Query:           EscapeQueryString(text) + "*",
		Fields:          append([]string(nil), fields...),
		DefaultOperator: defaultOperator,
	}}
}

// EscapeQueryString backslash-escapes query_string syntax characters wherever they
// appear, so ACC-12 is sent as ACC\-12. A leading -, a colon or an unbalanced
// quote or bracket in user text is then matched literally rather than parsed.
func EscapeQueryString(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(queryStringReserved, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
