package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row in the journal_entries table.
// EntryNumber is assigned by the database from a sequence; the application
// never generates it.
type JournalEntry struct {
	EntryID      string    `db:"entry_id"`
	EntryNumber  string    `db:"entry_number"`
	EntryDate    time.Time `db:"entry_date"`
	Memo         string    `db:"memo"`
	SourceType   *string   `db:"source_type"`
	SourceID     *string   `db:"source_id"`
	IsAdjusting  bool      `db:"is_adjusting"`
	IsReversed   bool      `db:"is_reversed"`
	ReversalOfID *string   `db:"reversal_of_id"`
	AuditFields
}

// EntryLine represents a row in the journal_entry_lines table.
// A check constraint guarantees exactly one of debit/credit is non-zero.
type EntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	LineOrder   int             `db:"line_order"`
	AuditFields
}
