package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	"github.com/rusingacademy/ledger-service/internal/models"
	"github.com/rusingacademy/ledger-service/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// reconciliationRepository implements the ReconciliationRepository interface.
// It reads source_documents, which is owned by the expense/invoice/payment
// subsystems, alongside the ledger's own tables.
type reconciliationRepository struct {
	BaseRepository
}

// newReconciliationRepository creates a new reconciliation repository
func newReconciliationRepository(db *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &reconciliationRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindPostedDocuments retrieves all documents of one type in posted status.
func (r *reconciliationRepository) FindPostedDocuments(ctx context.Context, sourceType domain.SourceType) ([]domain.SourceDocument, error) {
	query := `
		SELECT source_type, source_id, payee, amount, doc_date, status
		FROM source_documents
		WHERE source_type = $1 AND status = 'POSTED'
		ORDER BY doc_date, source_id;
	`

	rows, err := r.Pool.Query(ctx, query, string(sourceType))
	if err != nil {
		return nil, fmt.Errorf("error querying posted documents for %s: %w", sourceType, err)
	}
	defer rows.Close()

	docs := []domain.SourceDocument{}
	for rows.Next() {
		var m models.SourceDocument
		if err := rows.Scan(
			&m.SourceType,
			&m.SourceID,
			&m.Payee,
			&m.Amount,
			&m.DocDate,
			&m.Status,
		); err != nil {
			return nil, fmt.Errorf("error scanning source document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainSourceDocument(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source document rows: %w", err)
	}

	return docs, nil
}

// FindOrphanSourceIDs retrieves IDs of posted documents with no active entry.
func (r *reconciliationRepository) FindOrphanSourceIDs(ctx context.Context, sourceType domain.SourceType) ([]string, error) {
	query := `
		SELECT d.source_id
		FROM source_documents d
		WHERE d.source_type = $1
			AND d.status = 'POSTED'
			AND NOT EXISTS (
				SELECT 1
				FROM journal_entries e
				WHERE e.source_type = d.source_type
					AND e.source_id = d.source_id
					AND e.is_reversed = FALSE
			)
		ORDER BY d.source_id;
	`

	rows, err := r.Pool.Query(ctx, query, string(sourceType))
	if err != nil {
		return nil, fmt.Errorf("error querying orphan documents for %s: %w", sourceType, err)
	}
	defer rows.Close()

	orphans := []string{}
	for rows.Next() {
		var sourceID string
		if err := rows.Scan(&sourceID); err != nil {
			return nil, fmt.Errorf("error scanning orphan row: %w", err)
		}
		orphans = append(orphans, sourceID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orphan rows: %w", err)
	}

	return orphans, nil
}

// GetPostedDocumentTotal sums the amounts of posted documents of one type.
func (r *reconciliationRepository) GetPostedDocumentTotal(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM source_documents
		WHERE source_type = $1 AND status = 'POSTED';
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(sourceType)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying document total for %s: %w", sourceType, err)
	}
	return total, nil
}

// GetLedgerTotalBySource sums the debit side of active entries keyed to one
// source type. The debit sum of a balanced entry equals the amount it posted.
func (r *reconciliationRepository) GetLedgerTotalBySource(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.source_type = $1
			AND ` + activeEntryFilter + `
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(sourceType)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying ledger total for %s: %w", sourceType, err)
	}
	return total, nil
}
