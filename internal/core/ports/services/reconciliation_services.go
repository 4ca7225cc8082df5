package services

import (
	"context"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
)

// ReconciliationService defines batch checks between source documents and the
// posted ledger. All findings are data, never errors.
type ReconciliationService interface {
	// FindOrphanSourceDocuments lists posted documents with no active entry.
	FindOrphanSourceDocuments(ctx context.Context, sourceType domain.SourceType) ([]string, error)

	// FindDuplicateSourceDocuments groups posted documents by the given match-key
	// tuple and returns groups with more than one member.
	FindDuplicateSourceDocuments(ctx context.Context, sourceType domain.SourceType, matchKeys []domain.MatchKey) ([]domain.DuplicateGroup, error)

	// CompareTotals compares posted document totals with the ledger-derived total
	// for one source type, flagging drift beyond the configured epsilon.
	CompareTotals(ctx context.Context, sourceType domain.SourceType) (*domain.TotalsComparison, error)
}
