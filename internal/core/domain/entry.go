package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies the subsystem that owns the source document behind an
// entry. Manual entries carry no source key at all.
type SourceType string

const (
	SourceExpense SourceType = "EXPENSE"
	SourceInvoice SourceType = "INVOICE"
	SourcePayment SourceType = "PAYMENT"
)

// IsValid reports whether t is one of the recognised source types.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceExpense, SourceInvoice, SourcePayment:
		return true
	}
	return false
}

// JournalEntry is an atomic, balanced set of ledger lines recorded on one date.
// Entries are created only through the posting service. IsReversed flips
// false -> true exactly once, performed only by the reversal flow; entries are
// never updated otherwise and never deleted.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`      // Primary Key (UUID)
	EntryNumber  string      `json:"entryNumber"`  // Human-readable, unique, storage-assigned (e.g. JE-000042)
	EntryDate    time.Time   `json:"entryDate"`    // Date the event occurred
	Memo         string      `json:"memo"`         // Nullable user description
	SourceType   *SourceType `json:"sourceType"`   // Nil for manual entries
	SourceID     *string     `json:"sourceID"`     // Nil for manual entries
	IsAdjusting  bool        `json:"isAdjusting"`  // Adjusting entries (incl. reversals)
	IsReversed   bool        `json:"isReversed"`   // Set when a mirror entry has been posted
	ReversalOfID *string     `json:"reversalOfID"` // Set on the mirror, pointing at the original
	Lines        []EntryLine `json:"lines,omitempty"`
	AuditFields
}

// IsActive reports whether the entry still represents financial truth.
// Once an entry is reversed, both it and its mirror drop out of balances.
func (e *JournalEntry) IsActive() bool {
	return !e.IsReversed && e.ReversalOfID == nil
}

// HasSource reports whether the entry is keyed to a source document.
func (e *JournalEntry) HasSource() bool {
	return e.SourceType != nil && e.SourceID != nil
}

// EntryLine is one debit or credit amount against one account within an entry.
// Exactly one of Debit/Credit is non-zero. Lines are created atomically with
// their parent entry and are immutable thereafter.
type EntryLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	EntryID     string          `json:"entryID"`   // FK -> JournalEntry (composition)
	AccountID   string          `json:"accountID"` // FK -> Account
	Debit       decimal.Decimal `json:"debit"`     // Non-negative, minor-unit precision
	Credit      decimal.Decimal `json:"credit"`    // Non-negative, minor-unit precision
	Description string          `json:"description"`
	LineOrder   int             `json:"lineOrder"` // Position within the entry
	AuditFields
}

// IsDebit reports whether the line sits on the debit side.
func (l *EntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l *EntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
