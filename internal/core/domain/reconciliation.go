package domain

import "github.com/shopspring/decimal"

// MatchKey selects a source-document attribute used to group candidates when
// hunting for duplicate data entry upstream.
type MatchKey string

const (
	MatchPayee   MatchKey = "payee"
	MatchAmount  MatchKey = "amount"
	MatchDocDate MatchKey = "docDate"
)

// DuplicateGroup is a set of source documents sharing the same match-key tuple.
type DuplicateGroup struct {
	Key       string   `json:"key"` // Rendered key tuple, e.g. "Acme|150.00|2026-03-01"
	SourceIDs []string `json:"sourceIDs"`
}

// TotalsComparison reports drift between source-document totals and the
// ledger-derived total for one source type. Drift is informational, never a
// hard failure: partial postings legitimately produce non-zero deltas.
type TotalsComparison struct {
	SourceType  SourceType      `json:"sourceType"`
	RawTotal    decimal.Decimal `json:"rawTotal"`    // Sum of posted source-document amounts
	LedgerTotal decimal.Decimal `json:"ledgerTotal"` // Sum of the relevant side on active entries
	Delta       decimal.Decimal `json:"delta"`       // RawTotal - LedgerTotal
	Drift       bool            `json:"drift"`       // |Delta| exceeded the configured epsilon
}
