// Package seed generates fake transaction documents and loads them into the index.
package seed

import (
	"fmt"
	"strings"
	"time"

	"txn-search/internal/models"
	"txn-search/internal/searchengine"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	// WindowDays bounds how far back generated dates go
	WindowDays = 95

	defaultAccountPool  = 50
	customerRefPool     = 10
	minAmount           = 100.0
	maxAmount           = 10000.0
	maxValueDateLagDays = 2
)

// Currencies are the currencies generated documents use
var Currencies = []string{"USD", "EUR", "GBP", "JPY"}

var bankRefs = []string{"BankRef001", "BankRef002", "BankRef003"}

type weightedType struct {
	txnType string
	weight  float64
}

// typeDistribution is cumulative: 35% transfer, 25% payment, 20% withdrawal, 20% deposit
var typeDistribution = []weightedType{
	{models.TransactionTypeTransfer, 0.35},
	{models.TransactionTypePayment, 0.60},
	{models.TransactionTypeWithdrawal, 0.80},
	{models.TransactionTypeDeposit, 1.00},
}

// Document is a generated transaction as indexed
type Document struct {
	models.TransactionRecord
	BankReference     string `json:"BnkRef"`
	DebitCreditInd    string `json:"DbCreInd"`
	Narrative         string `json:"Narrative1"`
	CounterpartyName  string `json:"CntrPrtyNme"`
	SourceSystemTxnID string `json:"SrcSysTrnRef"`
}

// Generator produces fake transactions over a fixed pool of accounts
type Generator struct {
	faker        *gofakeit.Faker
	now          func() time.Time
	accounts     []string
	accountNames map[string]string
	customerRefs []string
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the reference time that generated dates count back from
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithAccountPool sets how many distinct accounts documents are spread over
func WithAccountPool(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.accounts = make([]string, size)
		}
	}
}

// NewGenerator creates a generator. A seed of 0 picks a random seed.
func NewGenerator(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		faker:    gofakeit.New(seed),
		now:      time.Now,
		accounts: make([]string, defaultAccountPool),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.accountNames = make(map[string]string, len(g.accounts))
	for i := range g.accounts {
		acc := g.faker.Numerify("############")
		for acc[0] == '0' {
			acc = g.faker.Numerify("############")
		}
		g.accounts[i] = acc
		g.accountNames[acc] = g.faker.Company()
	}

	g.customerRefs = make([]string, customerRefPool)
	for i := range g.customerRefs {
		g.customerRefs[i] = fmt.Sprintf("CustRef%d", g.faker.IntRange(10000, 99999))
	}

	return g
}

// Accounts returns the account numbers documents are generated for
func (g *Generator) Accounts() []string {
	return append([]string(nil), g.accounts...)
}

// Transaction generates one document with all dates inside the last WindowDays days
func (g *Generator) Transaction() Document {
	today := truncateDay(g.now().UTC())
	txnDate := today.AddDate(0, 0, -g.faker.IntRange(1, WindowDays))
	entryDate := minDate(txnDate.AddDate(0, 0, g.faker.IntRange(0, 1)), today)
	valueDate := minDate(txnDate.AddDate(0, 0, g.faker.IntRange(0, maxValueDateLagDays)), today)

	txnType := g.transactionType()
	amount := decimal.NewFromFloat(g.faker.Float64Range(minAmount, maxAmount)).Round(2)
	credit, debit := decimal.Zero, decimal.Zero
	indicator := "DB"
	switch txnType {
	case models.TransactionTypeDeposit:
		credit, indicator = amount, "CR"
	case models.TransactionTypeTransfer:
		if g.faker.Bool() {
			credit, indicator = amount, "CR"
		} else {
			debit = amount
		}
	default:
		debit = amount
	}

	account := g.faker.RandomString(g.accounts)
	return Document{
		TransactionRecord: models.TransactionRecord{
			AccountNumber:     account,
			AccountName:       g.accountNames[account],
			CustomerReference: g.faker.RandomString(g.customerRefs),
			TransactionType:   txnType,
			Iban:              g.iban(),
			Currency:          g.faker.RandomString(Currencies),
			CreditAmount:      credit,
			DebitAmount:       debit,
			TxnEntryDate:      txnDate.Format(models.DateLayout),
			EntryDate:         entryDate.Format(models.DateLayout),
			ValueDate:         valueDate.Format(models.DateLayout),
		},
		BankReference:     g.faker.RandomString(bankRefs),
		DebitCreditInd:    indicator,
		Narrative:         g.faker.Phrase(),
		CounterpartyName:  g.faker.Company(),
		SourceSystemTxnID: g.faker.UUID(),
	}
}

// Batch generates n documents keyed by fresh ids
func (g *Generator) Batch(n int) []searchengine.BulkDocument {
	docs := make([]searchengine.BulkDocument, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, searchengine.BulkDocument{ID: g.faker.UUID(), Source: g.Transaction()})
	}
	return docs
}

// transactionType picks a type using the weighted distribution
func (g *Generator) transactionType() string {
	roll := g.faker.Float64()
	for _, wt := range typeDistribution {
		if roll < wt.weight {
			return wt.txnType
		}
	}
	return models.TransactionTypeDeposit
}

func (g *Generator) iban() string {
	return "GB" + g.faker.Numerify("##") + strings.ToUpper(g.faker.Lexify("????")) + g.faker.Numerify("##############")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func minDate(a, b time.Time) time.Time {
	if a.After(b) {
		return b
	}
	return a
}
