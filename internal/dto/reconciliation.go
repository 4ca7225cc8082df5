package dto

import (
	"github.com/rusingacademy/ledger-service/internal/core/domain"
)

// OrphanSourceDocumentsResponse lists posted source documents that have no
// active journal entry.
type OrphanSourceDocumentsResponse struct {
	SourceType string   `json:"sourceType"`
	SourceIDs  []string `json:"sourceIDs"`
}

// DuplicateGroupResponse is one group of source documents sharing a match-key
// tuple.
type DuplicateGroupResponse struct {
	Key       string   `json:"key"`
	SourceIDs []string `json:"sourceIDs"`
}

// DuplicateSourceDocumentsResponse lists groups with more than one member.
type DuplicateSourceDocumentsResponse struct {
	SourceType string                   `json:"sourceType"`
	MatchKeys  []string                 `json:"matchKeys"`
	Groups     []DuplicateGroupResponse `json:"groups"`
}

// TotalsComparisonResponse reports raw vs ledger totals for one source type.
// Drift is informational; it never fails the request.
type TotalsComparisonResponse struct {
	SourceType  string `json:"sourceType"`
	RawTotal    string `json:"rawTotal"`
	LedgerTotal string `json:"ledgerTotal"`
	Delta       string `json:"delta"`
	Drift       bool   `json:"drift"`
}

// ToTotalsComparisonResponse formats a comparison for display.
func ToTotalsComparisonResponse(c *domain.TotalsComparison) TotalsComparisonResponse {
	return TotalsComparisonResponse{
		SourceType:  string(c.SourceType),
		RawTotal:    c.RawTotal.StringFixed(2),
		LedgerTotal: c.LedgerTotal.StringFixed(2),
		Delta:       c.Delta.StringFixed(2),
		Drift:       c.Drift,
	}
}

// ToDuplicateGroupResponses converts domain duplicate groups for display.
func ToDuplicateGroupResponses(groups []domain.DuplicateGroup) []DuplicateGroupResponse {
	out := make([]DuplicateGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = DuplicateGroupResponse{Key: g.Key, SourceIDs: g.SourceIDs}
	}
	return out
}
