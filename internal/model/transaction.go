package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the frozen record of one checkout. Its fields are set once
// by NewTransaction and only exposed through accessors; Lines returns a copy.
type Transaction struct {
	id            string
	timestamp     time.Time
	paymentMethod PaymentMethod
	lines         []CartLine
	taxRate       decimal.Decimal
	subtotal      decimal.Decimal
	tax           decimal.Decimal
	total         decimal.Decimal
}

// TransactionTotals holds the rounded money figures stored on a transaction.
type TransactionTotals struct {
	TaxRate  decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// NewTransaction copies lines so later cart mutations cannot reach the record.
func NewTransaction(id string, at time.Time, method PaymentMethod, lines []CartLine, totals TransactionTotals) *Transaction {
	return &Transaction{
		id:            id,
		timestamp:     at,
		paymentMethod: method,
		lines:         CopyLines(lines),
		taxRate:       totals.TaxRate,
		subtotal:      totals.Subtotal,
		tax:           totals.Tax,
		total:         totals.Total,
	}
}

func (t *Transaction) ID() string                   { return t.id }
func (t *Transaction) Timestamp() time.Time         { return t.timestamp }
func (t *Transaction) PaymentMethod() PaymentMethod { return t.paymentMethod }
func (t *Transaction) TaxRate() decimal.Decimal     { return t.taxRate }
func (t *Transaction) Subtotal() decimal.Decimal    { return t.subtotal }
func (t *Transaction) Tax() decimal.Decimal         { return t.tax }
func (t *Transaction) Total() decimal.Decimal       { return t.total }

// Lines returns a copy of the frozen lines.
func (t *Transaction) Lines() []CartLine {
	return CopyLines(t.lines)
}

// ItemCount is the sum of line quantities.
func (t *Transaction) ItemCount() int {
	n := 0
	for _, l := range t.lines {
		n += l.Quantity
	}
	return n
}

type transactionJSON struct {
	ID            string          `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Lines         []CartLine      `json:"lines"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:            t.id,
		Timestamp:     t.timestamp,
		PaymentMethod: t.paymentMethod,
		Lines:         t.lines,
		TaxRate:       t.taxRate,
		Subtotal:      t.subtotal,
		Tax:           t.tax,
		Total:         t.total,
	})
}
