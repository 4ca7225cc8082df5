package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	"github.com/rusingacademy/ledger-service/internal/models"
	"github.com/rusingacademy/ledger-service/internal/utils/mapping"
	"github.com/rusingacademy/ledger-service/internal/utils/pagination"
)

// Name of the partial unique index guarding one active entry per source document.
const sourceActiveConstraint = "uq_journal_entries_source_active"

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, entry_number, entry_date, memo, source_type, source_id, is_adjusting, is_reversed, reversal_of_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, description, line_order, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var sourceType, sourceID, reversalOfID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Memo,
		&sourceType,
		&sourceID,
		&m.IsAdjusting,
		&m.IsReversed,
		&reversalOfID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}

	if sourceType.Valid {
		m.SourceType = &sourceType.String
	}
	if sourceID.Valid {
		m.SourceID = &sourceID.String
	}
	if reversalOfID.Valid {
		m.ReversalOfID = &reversalOfID.String
	}
	return m, nil
}

func scanLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.LineOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntryTx inserts the entry row within tx and returns the entry number
// the database assigned from its sequence.
func (r *PgxEntryRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (string, error) {
	m := mapping.ToModelEntry(entry)

	query := `
		INSERT INTO journal_entries (
			entry_id, entry_date, memo, source_type, source_id,
			is_adjusting, is_reversed, reversal_of_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING entry_number;
	`

	var entryNumber string
	err := tx.QueryRow(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Memo,
		m.SourceType,
		m.SourceID,
		m.IsAdjusting,
		m.IsReversed,
		m.ReversalOfID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entryNumber)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == sourceActiveConstraint {
				// Lost a race: another active entry holds this source key.
				return "", fmt.Errorf("%w: source document already posted", apperrors.ErrDuplicateSource)
			}
			return "", fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return "", fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}
	return entryNumber, nil
}

// insertLinesTx batch-inserts the entry's lines within tx.
func (r *PgxEntryRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.EntryLine) error {
	query := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.LineOrder,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch: %w", err)
	}
	return nil
}

// SaveEntry persists an entry and its lines in one transaction and returns the
// storage-assigned entry number.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := r.insertEntryTx(ctx, tx, entry)
	if err != nil {
		return "", err
	}

	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return "", fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// SaveReversal flips the original's reversed flag and persists the mirror
// entry plus lines in one transaction. The flag update is conditional; zero
// rows affected means a concurrent reversal won, and nothing is written.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, mirror domain.JournalEntry, lines []domain.EntryLine, originalEntryID string, updatedBy string, now time.Time) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	flagQuery := `
		UPDATE journal_entries
		SET is_reversed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND is_reversed = FALSE AND reversal_of_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, flagQuery, originalEntryID, now, updatedBy)
	if err != nil {
		return "", fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return "", fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, originalEntryID)
	}

	entryNumber, err := r.insertEntryTx(ctx, tx, mirror)
	if err != nil {
		return "", err
	}

	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return "", fmt.Errorf("failed to insert lines for reversal %s: %w", mirror.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// FindEntryByID retrieves an entry by its ID, without lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// FindActiveEntryBySource retrieves the active entry keyed to a source
// document, or nil when none exists.
func (r *PgxEntryRepository) FindActiveEntryBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2 AND is_reversed = FALSE;
	`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, string(sourceType), sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find entry for source %s/%s: %w", sourceType, sourceID, err)
	}

	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines of a single entry, in line order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.EntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
// Entries with no lines get an empty slice.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.EntryLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry IDs: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.EntryLine)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row during batch fetch: %w", err)
		}
		linesMap[m.EntryID] = append(linesMap[m.EntryID], mapping.ToDomainLine(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows during batch fetch: %w", err)
	}

	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.EntryLine{}
		}
	}

	return linesMap, nil
}

// ListEntries retrieves a paginated list of entries using token-based
// pagination, newest first. When includeReversed is false, reversed entries
// and their mirrors are filtered out.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeReversed bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`

	filterClause := ``
	if !includeReversed {
		filterClause = `WHERE is_reversed = FALSE AND reversal_of_id IS NULL`
	}

	// Ordering must be stable: entry_date DESC with created_at DESC tie-break.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `(entry_date, created_at) < ($1, $2)`
		if filterClause == "" {
			filterClause = `WHERE ` + cursorClause
		} else {
			filterClause += ` AND ` + cursorClause
		}
		args = append(args, lastEntryDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)
	rows, err = r.Pool.Query(ctx, query, args...)

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points at the last item included in this page; the next
		// query starts after it.
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainEntry(m)
	}

	return domainEntries, nextTokenVal, nil
}
