package models

// Index field names of a transaction document
const (
	FieldAccountNumber     = "AccNmbr"
	FieldAccountName       = "AccName"
	FieldCustomerReference = "CstmrRef"
	FieldTransactionType   = "TxnTyp"
	FieldIban              = "Iban"
	FieldCurrency          = "Ccy"
	FieldCreditAmount      = "CrAmt"
	FieldDebitAmount       = "DbAmt"
	FieldTxnEntryDate      = "TxnEntDte"
	FieldEntryDate         = "EntrDte"
	FieldValueDate         = "ValDte"
)

// DateField identifies which date of a transaction a range applies to
type DateField string

const (
	DateFieldEntry    DateField = "entry"
	DateFieldTxnEntry DateField = "txn_entry"
	DateFieldValue    DateField = "value"
)

// DateFieldPriority orders the date fields; only the first supplied one is applied
var DateFieldPriority = []DateField{DateFieldEntry, DateFieldTxnEntry, DateFieldValue}

// IndexField returns the document field the date range filters on
func (d DateField) IndexField() string {
	switch d {
	case DateFieldEntry:
		return FieldEntryDate
	case DateFieldTxnEntry:
		return FieldTxnEntryDate
	case DateFieldValue:
		return FieldValueDate
	}
	return ""
}

// SortDirection is the order of a sort key
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortableFields lists the document fields a search may be ordered by
var SortableFields = map[string]bool{
	FieldTxnEntryDate:  true,
	FieldAccountNumber: true,
	FieldEntryDate:     true,
	FieldValueDate:     true,
	FieldCurrency:      true,
	FieldIban:          true,
	FieldCreditAmount:  true,
	FieldDebitAmount:   true,
}

// DefaultSort is applied when a search names no sort field
var DefaultSort = SortField{Field: FieldTxnEntryDate, Direction: SortDesc}

// FreeTextFields are matched by the free-text prefix query
var FreeTextFields = []string{
	FieldAccountNumber,
	FieldCustomerReference,
	FieldTransactionType,
	FieldIban,
	FieldAccountName,
}

// Known transaction types offered by the search form
const (
	TransactionTypeTransfer   = "TRANSFER"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypePayment    = "PAYMENT"
	TransactionTypeDeposit    = "DEPOSIT"
)
