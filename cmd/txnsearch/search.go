package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"txn-search/internal/dto"
	"txn-search/internal/models"
	"txn-search/internal/services"
	"txn-search/internal/validation"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	accounts   []string
	entryFrom  string
	entryTo    string
	txnFrom    string
	txnTo      string
	valueFrom  string
	valueTo    string
	text       string
	txnType    string
	currency   string
	debitMin   string
	debitMax   string
	creditMin  string
	creditMax  string
	sort       []string
	page       int
	pageSize   int
	pages      int
	raw        bool
	jsonOutput bool
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search transactions",
	Example: `  txnsearch search --account 123456789012 --entry-from 2024-05-01 --entry-to 2024-05-31
  txnsearch search -a 111 -a 222 --txn-from 2024-03-01 --txn-to 2024-03-31 --text acme --currency EUR
  txnsearch search -a 111 --value-from 2024-05-01 --value-to 2024-05-31 --sort CrAmt:asc --pages 2 --raw`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr())
		client, _, err := newEngineClient(logger)
		if err != nil {
			return err
		}
		service := services.NewSearchService(client, validation.NewSearchValidator(), services.NoopMetrics{}, logger)
		return runSearch(cmd, service, searchOpts)
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVarP(&searchOpts.accounts, "account", "a", nil, "account number (repeatable or comma separated)")
	f.StringVar(&searchOpts.entryFrom, "entry-from", "", "entry date range start (YYYY-MM-DD)")
	f.StringVar(&searchOpts.entryTo, "entry-to", "", "entry date range end (YYYY-MM-DD)")
	f.StringVar(&searchOpts.txnFrom, "txn-from", "", "transaction entry date range start (YYYY-MM-DD)")
	f.StringVar(&searchOpts.txnTo, "txn-to", "", "transaction entry date range end (YYYY-MM-DD)")
	f.StringVar(&searchOpts.valueFrom, "value-from", "", "value date range start (YYYY-MM-DD)")
	f.StringVar(&searchOpts.valueTo, "value-to", "", "value date range end (YYYY-MM-DD)")
	f.StringVarP(&searchOpts.text, "text", "t", "", "prefix search over account, customer reference, type, IBAN and name (3+ characters)")
	f.StringVar(&searchOpts.txnType, "type", "", "transaction type, e.g. TRANSFER")
	f.StringVar(&searchOpts.currency, "currency", "", "ISO 4217 currency code")
	f.StringVar(&searchOpts.debitMin, "debit-min", "", "minimum debit amount")
	f.StringVar(&searchOpts.debitMax, "debit-max", "", "maximum debit amount")
	f.StringVar(&searchOpts.creditMin, "credit-min", "", "minimum credit amount")
	f.StringVar(&searchOpts.creditMax, "credit-max", "", "maximum credit amount")
	f.StringSliceVar(&searchOpts.sort, "sort", nil, "sort key FIELD[:asc|desc], up to two (default TxnEntDte:desc)")
	f.IntVar(&searchOpts.page, "page", models.DefaultPage, "first page to fetch")
	f.IntVar(&searchOpts.pageSize, "page-size", models.DefaultPageSize, "rows per page")
	f.IntVar(&searchOpts.pages, "pages", 1, "number of consecutive pages to fetch")
	f.BoolVar(&searchOpts.raw, "raw", false, "print stored documents as colored JSON")
	f.BoolVar(&searchOpts.jsonOutput, "json", false, "print each page as the API response JSON")

	_ = searchCmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var fields []string
		for field := range models.SortableFields {
			fields = append(fields, field+":asc", field+":desc")
		}
		return fields, cobra.ShellCompDirectiveNoFileComp
	})
}

// toRequest maps flags onto the API request so both share one set of checks
func (o searchOptions) toRequest() (*dto.SearchTransactionsRequest, error) {
	req := &dto.SearchTransactionsRequest{
		AccountNumbers:  o.accounts,
		EntryDate:       datePair(o.entryFrom, o.entryTo),
		TxnEntryDate:    datePair(o.txnFrom, o.txnTo),
		ValueDate:       datePair(o.valueFrom, o.valueTo),
		SearchText:      o.text,
		DebitAmount:     amountPair(o.debitMin, o.debitMax),
		CreditAmount:    amountPair(o.creditMin, o.creditMax),
		TransactionType: o.txnType,
		Currency:        o.currency,
		Page:            o.page,
		PageSize:        o.pageSize,
	}

	for _, s := range o.sort {
		field, dir, _ := strings.Cut(s, ":")
		req.SortFields = append(req.SortFields, dto.SortParam{Field: field, Direction: dir})
	}

	req.Normalize()
	if err := validation.GetValidator().Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validation.FormatFieldError(fe)))
			}
			return nil, fmt.Errorf("invalid search: %s", strings.Join(msgs, "; "))
		}
		return nil, err
	}
	return req, nil
}

func datePair(from, to string) *dto.DatePair {
	if from == "" && to == "" {
		return nil
	}
	return &dto.DatePair{Start: from, End: to}
}

func amountPair(lo, hi string) *dto.AmountPair {
	if lo == "" && hi == "" {
		return nil
	}
	return &dto.AmountPair{Min: lo, Max: hi}
}

// runSearch fetches the requested pages through a session, one page change at a time
func runSearch(cmd *cobra.Command, service services.SearchServiceInterface, opts searchOptions) error {
	req, err := opts.toRequest()
	if err != nil {
		return err
	}

	session := services.NewSearchSession(service)
	session.SetFilters(req.ToFilterState())
	pagination := req.Pagination()
	pages := max(opts.pages, 1)

	out := cmd.OutOrStdout()
	for i := 0; i < pages; i++ {
		if err := session.ChangePage(cmd.Context(), pagination.Page+i, pagination.PageSize); err != nil {
			return err
		}

		state := session.State()
		if err := printPage(out, state, opts); err != nil {
			return err
		}
		if int64(state.Pagination.Offset()+state.Pagination.PageSize) >= state.Total {
			break
		}
	}
	return nil
}

func printPage(w io.Writer, state services.SessionState, opts searchOptions) error {
	switch {
	case opts.jsonOutput:
		result := &models.SearchResult{
			Transactions:     state.Transactions,
			Total:            state.Total,
			Pagination:       state.Pagination,
			AppliedDateField: state.AppliedDateField,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewSearchTransactionsResponse(result))
	case opts.raw:
		if err := printRaw(w, state.Transactions); err != nil {
			return err
		}
	default:
		if err := printTable(w, state.Transactions); err != nil {
			return err
		}
	}
	printFooter(w, state)
	return nil
}

func printTable(w io.Writer, rows []models.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TXN ENTRY\tENTRY\tVALUE\tACCOUNT\tTYPE\tCCY\tDEBIT\tCREDIT\tCUSTOMER REF\tNAME")
	for _, row := range rows {
		r := row.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TxnEntryDate, r.EntryDate, r.ValueDate, r.AccountNumber, r.TransactionType, r.Currency,
			r.DebitAmount.StringFixed(2), r.CreditAmount.StringFixed(2), r.CustomerReference, r.AccountName)
	}
	return tw.Flush()
}

func printRaw(w io.Writer, rows []models.Transaction) error {
	f := colorjson.NewFormatter()
	f.Indent = 2
	for _, row := range rows {
		var obj map[string]interface{}
		if err := json.Unmarshal(row.Raw, &obj); err != nil {
			return fmt.Errorf("failed to decode document %s: %w", row.ID, err)
		}
		s, err := f.Marshal(obj)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(s))
	}
	return nil
}

func printFooter(w io.Writer, state services.SessionState) {
	p := state.Pagination
	var totalPages int64
	if p.PageSize > 0 {
		totalPages = (state.Total + int64(p.PageSize) - 1) / int64(p.PageSize)
	}
	color.New(color.Faint).Fprintf(w, "page %d of %d, %d transactions, date range on %s\n",
		p.Page, totalPages, state.Total, state.AppliedDateField.IndexField())
}
