package repositories

import (
	"context"
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a single entry, in line order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)

	// FindActiveEntryBySource retrieves the active entry keyed to a source document,
	// or nil when none exists.
	FindActiveEntryBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination,
	// newest first. When includeReversed is false, reversed entries and their mirrors
	// are filtered out. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeReversed bool) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry and its lines in one transaction and returns the
	// storage-assigned entry number. A unique-constraint violation on the active
	// source key surfaces as apperrors.ErrDuplicateSource.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (string, error)

	// SaveReversal persists the mirror entry and flips the original's reversed flag
	// in one transaction. It returns the mirror's entry number, or
	// apperrors.ErrAlreadyReversed if the original was reversed concurrently.
	SaveReversal(ctx context.Context, mirror domain.JournalEntry, lines []domain.EntryLine, originalEntryID string, updatedBy string, now time.Time) (string, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
