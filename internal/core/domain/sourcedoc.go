package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceDocumentStatus mirrors the status field owned by the source-document
// subsystems. Only documents in Posted status are expected to have an active
// ledger entry.
type SourceDocumentStatus string

const (
	SourceDocDraft  SourceDocumentStatus = "DRAFT"
	SourceDocPosted SourceDocumentStatus = "POSTED"
	SourceDocVoided SourceDocumentStatus = "VOIDED"
)

// SourceDocument is the ledger's read-only view of an external business record
// (expense, invoice, payment). The ledger holds a weak back-reference via
// (SourceType, SourceID) and never mutates the document.
type SourceDocument struct {
	SourceType SourceType           `json:"sourceType"`
	SourceID   string               `json:"sourceID"`
	Payee      string               `json:"payee"` // Payee or counterparty name
	Amount     decimal.Decimal      `json:"amount"`
	DocDate    time.Time            `json:"docDate"`
	Status     SourceDocumentStatus `json:"status"`
}

// ExpenseDocument carries the fields the posting service needs to journalize
// an approved expense: debit expense (net) and tax receivable, credit cash.
type ExpenseDocument struct {
	ExpenseID   string
	Payee       string
	Total       decimal.Decimal // Gross amount, tax inclusive
	TaxAmount   decimal.Decimal // Flat-rate tax portion of Total, may be zero
	TaxRate     decimal.Decimal // Tax-inclusive rate, used when TaxAmount is unset
	ExpenseDate time.Time
}

// InvoiceDocument carries the fields needed to journalize a finalized invoice:
// debit accounts receivable, credit sales (net) and tax payable.
type InvoiceDocument struct {
	InvoiceID     string
	InvoiceNumber string
	Total         decimal.Decimal
	TaxAmount     decimal.Decimal
	TaxRate       decimal.Decimal // Tax-inclusive rate, used when TaxAmount is unset
	InvoiceDate   time.Time
}

// PaymentDocument carries the fields needed to journalize a confirmed payment:
// debit cash, credit accounts receivable.
type PaymentDocument struct {
	PaymentID   string
	Reference   string
	Amount      decimal.Decimal
	PaymentDate time.Time
}
