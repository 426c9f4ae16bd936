package models

// SearchRequest is the body of an engine _search call
type SearchRequest struct {
	TrackTotalHits bool         `json:"track_total_hits"`
	Query          Query        `json:"query"`
	Sort           []SortClause `json:"sort"`
	From           int          `json:"from"`
	Size           int          `json:"size"`
}

// Query wraps the boolean query of a search
type Query struct {
	Bool BoolQuery `json:"bool"`
}

// BoolQuery combines scored must clauses with unscored filter clauses
type BoolQuery struct {
	Must   []Clause `json:"must"`
	Filter []Clause `json:"filter"`
}

// Clause is a single leaf query; exactly one member is set
type Clause struct {
	Terms       map[string][]string    `json:"terms,omitempty"`
	Range       map[string]RangeBounds `json:"range,omitempty"`
	QueryString *QueryString           `json:"query_string,omitempty"`
	Match       map[string]string      `json:"match,omitempty"`
}

// RangeBounds is an inclusive lower/upper bound pair
type RangeBounds struct {
	Gte string `json:"gte"`
	Lte string `json:"lte"`
}

// QueryString is a Lucene query across several fields
type QueryString struct {
	Query           string   `json:"query"`
	Fields          []string `json:"fields"`
	DefaultOperator string   `json:"default_operator"`
}

// SortClause maps one field to its order
type SortClause map[string]SortOrder

// SortOrder is the order of a sort clause
type SortOrder struct {
	Order SortDirection `json:"order"`
}
