package services

import (
	"context"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/rusingacademy/ledger-service/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries. IncludeReversed switches
	// to the audit view, which also returns reversed entries and their mirrors.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entry data
type EntryWriterSvc interface {
	// PostEntry validates a candidate entry and persists it atomically.
	PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry posts the mirror of an existing entry and marks the original
	// reversed. The original is never mutated beyond the reversed flag.
	ReverseEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}

// SourceJournalizerSvc builds and posts the canonical entry shape for each
// source-document type.
type SourceJournalizerSvc interface {
	// PostExpense journalizes an approved expense: debit expense (net) and tax
	// receivable, credit cash.
	PostExpense(ctx context.Context, doc domain.ExpenseDocument, accounts dto.ExpenseAccounts, creatorUserID string) (*domain.JournalEntry, error)

	// PostInvoice journalizes a finalized invoice: debit accounts receivable,
	// credit sales (net) and tax payable.
	PostInvoice(ctx context.Context, doc domain.InvoiceDocument, accounts dto.InvoiceAccounts, creatorUserID string) (*domain.JournalEntry, error)

	// PostPayment journalizes a confirmed payment: debit cash, credit accounts
	// receivable.
	PostPayment(ctx context.Context, doc domain.PaymentDocument, accounts dto.PaymentAccounts, creatorUserID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
// This is a facade for clients that need access to all operations
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	SourceJournalizerSvc
}
