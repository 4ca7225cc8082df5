package dto

import (
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one candidate line of a posting request. Exactly one of
// Debit/Credit must be positive; the posting service enforces this.
type CreateLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest is the candidate-entry shape accepted by the posting
// service. SourceType/SourceID key the entry to a source document; both or
// neither must be present.
type CreateEntryRequest struct {
	EntryDate   time.Time           `json:"entryDate" binding:"required"`
	Memo        string              `json:"memo"`
	SourceType  *string             `json:"sourceType,omitempty" binding:"omitempty,oneof=EXPENSE INVOICE PAYMENT"`
	SourceID    *string             `json:"sourceID,omitempty"`
	IsAdjusting bool                `json:"isAdjusting"`
	Lines       []CreateLineRequest `json:"lines" binding:"required"`
}

// ReverseEntryRequest carries the operator-supplied reason recorded on the
// mirror entry's memo.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LineResponse defines the data returned for one entry line.
type LineResponse struct {
	LineID      string `json:"lineID"`
	AccountID   string `json:"accountID"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string         `json:"entryID"`
	EntryNumber  string         `json:"entryNumber"`
	EntryDate    time.Time      `json:"entryDate"`
	Memo         string         `json:"memo"`
	SourceType   *string        `json:"sourceType,omitempty"`
	SourceID     *string        `json:"sourceID,omitempty"`
	IsAdjusting  bool           `json:"isAdjusting"`
	IsReversed   bool           `json:"isReversed"`
	ReversalOfID *string        `json:"reversalOfID,omitempty"`
	Lines        []LineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	CreatedBy    string         `json:"createdBy"`
}

// ListEntriesParams holds query parameters for listing entries.
// IncludeReversed switches to the audit view, which also returns reversed
// entries and their mirrors.
type ListEntriesParams struct {
	Limit           int     `form:"limit"`
	NextToken       *string `form:"nextToken"`
	IncludeReversed bool    `form:"includeReversed"`
}

// ListEntriesResponse wraps a page of entries with the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.EntryLine to LineResponse.
func ToLineResponse(l *domain.EntryLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit.StringFixed(2),
		Credit:      l.Credit.StringFixed(2),
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Memo:         e.Memo,
		SourceID:     e.SourceID,
		IsAdjusting:  e.IsAdjusting,
		IsReversed:   e.IsReversed,
		ReversalOfID: e.ReversalOfID,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if e.SourceType != nil {
		st := string(*e.SourceType)
		resp.SourceType = &st
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
