package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceDocument represents a row in the source_documents table. The table is
// written by the expense/invoice/payment subsystems; the ledger only reads it.
type SourceDocument struct {
	SourceType string          `db:"source_type"`
	SourceID   string          `db:"source_id"`
	Payee      string          `db:"payee"`
	Amount     decimal.Decimal `db:"amount"`
	DocDate    time.Time       `db:"doc_date"`
	Status     string          `db:"status"`
}
