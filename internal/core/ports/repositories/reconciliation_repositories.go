package repositories

import (
	"context"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SourceDocumentReader defines read operations against the source_documents
// table. The table is owned by the expense/invoice/payment subsystems; the
// ledger never writes it.
type SourceDocumentReader interface {
	// FindPostedDocuments retrieves all documents of one type in posted status.
	FindPostedDocuments(ctx context.Context, sourceType domain.SourceType) ([]domain.SourceDocument, error)
}

// ReconciliationRepository defines the cross-table queries behind the
// reconciliation engine.
type ReconciliationRepository interface {
	SourceDocumentReader

	// FindOrphanSourceIDs retrieves IDs of posted documents with no active entry.
	FindOrphanSourceIDs(ctx context.Context, sourceType domain.SourceType) ([]string, error)

	// GetPostedDocumentTotal sums the amounts of posted documents of one type.
	GetPostedDocumentTotal(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error)

	// GetLedgerTotalBySource sums the debit side of active entries keyed to one
	// source type.
	GetLedgerTotalBySource(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error)
}
