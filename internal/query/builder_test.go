package query

import (
	"encoding/json"
	"testing"

	"txn-search/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRange(t *testing.T, start, end string) *models.DateRange {
	t.Helper()
	r, err := models.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func baseFilters(t *testing.T) models.FilterState {
	return models.FilterState{
		AccountNumbers: []string{"123", "456"},
		EntryDateRange: dateRange(t, "2024-01-01", "2024-01-10"),
	}
}

func TestBuild_PaginationAccountsAndEntryDate(t *testing.T) {
	f := baseFilters(t)
	f.TxnEntryDateRange = dateRange(t, "2024-02-01", "2024-02-10")
	f.ValueDateRange = dateRange(t, "2024-03-01", "2024-03-10")

	req := Build(f, models.Pagination{Page: 2, PageSize: 20})

	assert.True(t, req.TrackTotalHits)
	assert.Equal(t, 20, req.From)
	assert.Equal(t, 20, req.Size)

	require.Len(t, req.Query.Bool.Filter, 2)
	assert.Equal(t, map[string][]string{"AccNmbr": {"123", "456"}}, req.Query.Bool.Filter[0].Terms)
	assert.Equal(t, map[string]models.RangeBounds{
		"EntrDte": {Gte: "2024-01-01", Lte: "2024-01-10"},
	}, req.Query.Bool.Filter[1].Range)
	assert.Empty(t, req.Query.Bool.Must)
}

func TestBuild_DateRangePriority(t *testing.T) {
	txn := dateRange(t, "2024-02-01", "2024-02-10")
	value := dateRange(t, "2024-03-01", "2024-03-10")

	tests := []struct {
		name      string
		filters   models.FilterState
		wantField string
		wantGte   string
	}{
		{
			name:      "transaction entry over value",
			filters:   models.FilterState{AccountNumbers: []string{"1"}, TxnEntryDateRange: txn, ValueDateRange: value},
			wantField: "TxnEntDte",
			wantGte:   "2024-02-01",
		},
		{
			name:      "value alone",
			filters:   models.FilterState{AccountNumbers: []string{"1"}, ValueDateRange: value},
			wantField: "ValDte",
			wantGte:   "2024-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Build(tt.filters, models.DefaultPagination())

			var ranges []map[string]models.RangeBounds
			for _, c := range req.Query.Bool.Filter {
				if c.Range != nil {
					ranges = append(ranges, c.Range)
				}
			}
			require.Len(t, ranges, 1)
			require.Contains(t, ranges[0], tt.wantField)
			assert.Equal(t, tt.wantGte, ranges[0][tt.wantField].Gte)
		})
	}
}

func TestBuild_SearchTextThreshold(t *testing.T) {
	f := baseFilters(t)

	f.SearchText = "ab"
	req := Build(f, models.DefaultPagination())
	assert.Empty(t, req.Query.Bool.Must)

	f.SearchText = "abc"
	req = Build(f, models.DefaultPagination())
	require.Len(t, req.Query.Bool.Must, 1)
	qs := req.Query.Bool.Must[0].QueryString
	require.NotNil(t, qs)
	assert.Equal(t, "abc*", qs.Query)
	assert.Equal(t, []string{"AccNmbr", "CstmrRef", "TxnTyp", "Iban", "AccName"}, qs.Fields)
	assert.Equal(t, "OR", qs.DefaultOperator)
}

func TestBuild_SearchTextCountsRunes(t *testing.T) {
	f := baseFilters(t)
	f.SearchText = "éé"
	assert.Empty(t, Build(f, models.DefaultPagination()).Query.Bool.Must)

	f.SearchText = "äöü"
	assert.Len(t, Build(f, models.DefaultPagination()).Query.Bool.Must, 1)
}

func TestBuild_SearchTextEscaped(t *testing.T) {
	f := baseFilters(t)
	f.SearchText = "GB:12/3"

	req := Build(f, models.DefaultPagination())
	require.Len(t, req.Query.Bool.Must, 1)
	assert.Equal(t, `GB\:12\/3*`, req.Query.Bool.Must[0].QueryString.Query)
}

func TestBuild_ExactMatchClauses(t *testing.T) {
	f := baseFilters(t)
	f.SearchText = "CustRef"
	f.TransactionType = "TRANSFER"
	f.Currency = "GBP"

	must := Build(f, models.DefaultPagination()).Query.Bool.Must
	require.Len(t, must, 3)
	assert.NotNil(t, must[0].QueryString)
	assert.Equal(t, map[string]string{"TxnTyp": "TRANSFER"}, must[1].Match)
	assert.Equal(t, map[string]string{"Ccy": "GBP"}, must[2].Match)
}

func TestBuild_AmountRanges(t *testing.T) {
	maxAmount := decimal.NewFromInt(500)
	minAmount := decimal.RequireFromString("10.5")

	f := baseFilters(t)
	f.DebitAmountRange = &models.AmountRange{Max: &maxAmount}
	f.CreditAmountRange = &models.AmountRange{Min: &minAmount}

	filter := Build(f, models.DefaultPagination()).Query.Bool.Filter
	require.Len(t, filter, 4)
	assert.Equal(t, map[string]models.RangeBounds{"DbAmt": {Gte: "0", Lte: "500"}}, filter[2].Range)
	assert.Equal(t, map[string]models.RangeBounds{"CrAmt": {Gte: "10.5", Lte: "1000000"}}, filter[3].Range)
}

func TestBuild_NoAmountRangeWhenAbsent(t *testing.T) {
	filter := Build(baseFilters(t), models.DefaultPagination()).Query.Bool.Filter
	for _, c := range filter {
		assert.NotContains(t, c.Range, "DbAmt")
		assert.NotContains(t, c.Range, "CrAmt")
	}
}

func TestBuild_Sort(t *testing.T) {
	f := baseFilters(t)

	req := Build(f, models.DefaultPagination())
	assert.Equal(t, []models.SortClause{{"TxnEntDte": {Order: models.SortDesc}}}, req.Sort)

	f.SortFields = []models.SortField{{Field: "CrAmt", Direction: "ASC"}}
	req = Build(f, models.DefaultPagination())
	assert.Equal(t, []models.SortClause{{"CrAmt": {Order: models.SortAsc}}}, req.Sort)

	f.SortFields = []models.SortField{
		{Field: "ValDte", Direction: models.SortDesc},
		{Field: "DbAmt", Direction: models.SortAsc},
	}
	req = Build(f, models.DefaultPagination())
	assert.Equal(t, []models.SortClause{
		{"ValDte": {Order: models.SortDesc}},
		{"DbAmt": {Order: models.SortAsc}},
	}, req.Sort)
}

func TestBuild_LargePageSizeNotCapped(t *testing.T) {
	req := Build(baseFilters(t), models.Pagination{Page: 3, PageSize: 5000})
	assert.Equal(t, 10000, req.From)
	assert.Equal(t, 5000, req.Size)
}

func TestBuild_Deterministic(t *testing.T) {
	maxAmount := decimal.NewFromInt(900)
	f := baseFilters(t)
	f.SearchText = "IBAN"
	f.Currency = "EUR"
	f.DebitAmountRange = &models.AmountRange{Max: &maxAmount}
	f.SortFields = []models.SortField{{Field: "CrAmt", Direction: models.SortAsc}, {Field: "EntrDte", Direction: models.SortDesc}}
	p := models.Pagination{Page: 4, PageSize: 15}

	first, err := json.Marshal(Build(f, p))
	require.NoError(t, err)
	second, err := json.Marshal(Build(f, p))
	require.NoError(t, err)

	assert.Equal(t, Build(f, p), Build(f, p))
	assert.JSONEq(t, string(first), string(second))
}

func TestBuild_WireFormat(t *testing.T) {
	f := baseFilters(t)
	f.AccountNumbers = []string{"123"}
	f.Currency = "GBP"

	data, err := json.Marshal(Build(f, models.Pagination{Page: 1, PageSize: 20}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"track_total_hits": true,
		"query": {"bool": {
			"must": [{"match": {"Ccy": "GBP"}}],
			"filter": [
				{"terms": {"AccNmbr": ["123"]}},
				{"range": {"EntrDte": {"gte": "2024-01-01", "lte": "2024-01-10"}}}
			]
		}},
		"sort": [{"TxnEntDte": {"order": "desc"}}],
		"from": 0,
		"size": 20
	}`, string(data))
}

func TestEscapeQueryString(t *testing.T) {
	assert.Equal(t, "plain text", EscapeQueryString("plain text"))
	assert.Equal(t, `a\+b\-c\(d\)`, EscapeQueryString("a+b-c(d)"))
	assert.Equal(t, `ACC\-12`, EscapeQueryString("ACC-12"))
	assert.Equal(t, `\-ACC`, EscapeQueryString("-ACC"))
	assert.Equal(t, `\"quoted\"`, EscapeQueryString(`"quoted"`))
}
