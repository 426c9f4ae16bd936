package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is a transaction document as stored in the index
type TransactionRecord struct {
	AccountNumber     string          `json:"AccNmbr"`
	AccountName       string          `json:"AccName"`
	CustomerReference string          `json:"CstmrRef"`
	TransactionType   string          `json:"TxnTyp"`
	Iban              string          `json:"Iban"`
	Currency          string          `json:"Ccy"`
	CreditAmount      decimal.Decimal `json:"CrAmt"`
	DebitAmount       decimal.Decimal `json:"DbAmt"`
	TxnEntryDate      string          `json:"TxnEntDte"`
	EntryDate         string          `json:"EntrDte"`
	ValueDate         string          `json:"ValDte"`
}

// SearchResponse is the subset of an engine _search response that is consumed
type SearchResponse struct {
	Took int        `json:"took"`
	Hits SearchHits `json:"hits"`
}

// SearchHits holds the matching documents and their total count
type SearchHits struct {
	Total TotalHits   `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// TotalHits is the tracked total number of matches
type TotalHits struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation,omitempty"`
}

// SearchHit is one matching document
type SearchHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// Transaction is a decoded row together with its raw document
type Transaction struct {
	ID     string
	Record TransactionRecord
	Raw    json.RawMessage
}

// storedDocument reads a _source with its amounts left undecoded
type storedDocument struct {
	TransactionRecord
	CreditAmount json.RawMessage `json:"CrAmt"`
	DebitAmount  json.RawMessage `json:"DbAmt"`
}

// Transactions decodes every hit's _source into a row.
// Amounts that are not a number or numeric string decode as zero; the raw
// document keeps the stored value.
func (r *SearchResponse) Transactions() ([]Transaction, error) {
	rows := make([]Transaction, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		var record TransactionRecord
		if len(hit.Source) > 0 {
			var doc storedDocument
			if err := json.Unmarshal(hit.Source, &doc); err != nil {
				return nil, fmt.Errorf("failed to decode hit %s: %w", hit.ID, err)
			}
			record = doc.TransactionRecord
			record.CreditAmount = storedAmount(doc.CreditAmount)
			record.DebitAmount = storedAmount(doc.DebitAmount)
		}
		rows = append(rows, Transaction{ID: hit.ID, Record: record, Raw: hit.Source})
	}
	return rows, nil
}

func storedAmount(raw json.RawMessage) decimal.Decimal {
	value := strings.TrimSpace(string(raw))
	if strings.HasPrefix(value, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		value = strings.TrimSpace(s)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// SearchResult is a page of decoded transactions
type SearchResult struct {
	Transactions     []Transaction
	Total            int64
	Pagination       Pagination
	AppliedDateField DateField
}
