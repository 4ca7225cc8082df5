package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/dto"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/rusingacademy/ledger-service/internal/utils/accounting"
	"github.com/rusingacademy/ledger-service/internal/utils/allocation"
	"github.com/shopspring/decimal"
)

// entryService implements posting, reversal and source-document journalizing.
type entryService struct {
	entryRepo  portsrepo.EntryRepositoryFacade
	accountSvc portssvc.AccountReaderSvc
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountReaderSvc) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:  entryRepo,
		accountSvc: accountSvc,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validateLines checks each candidate line in isolation: non-negative amounts
// at minor-unit precision, with exactly one of debit/credit positive.
func (s *entryService) validateLines(lines []dto.CreateLineRequest) error {
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrMalformedLine, i)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d", apperrors.ErrMalformedLine, i)
		}
		if !accounting.HasMinorUnitPrecision(line.Debit) || !accounting.HasMinorUnitPrecision(line.Credit) {
			return fmt.Errorf("%w: line %d exceeds two decimal places", apperrors.ErrMalformedLine, i)
		}
	}
	return nil
}

// validateAccounts fetches every referenced account and rejects missing or
// deactivated ones.
func (s *entryService) validateAccounts(ctx context.Context, lines []dto.CreateLineRequest) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	uniqueIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range uniqueIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is deactivated", apperrors.ErrUnknownAccount, id)
		}
	}
	return accountsMap, nil
}

// validateBalance checks the double-entry invariant: total debits equal total
// credits, compared exactly at minor-unit precision.
func (s *entryService) validateBalance(lines []dto.CreateLineRequest) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s and credits to %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// PostEntry validates a candidate entry and persists it atomically. Validation
// fails fast in a fixed order: empty entry, malformed lines, unknown accounts,
// unbalanced totals, then the duplicate source check.
func (s *entryService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: got %d lines", apperrors.ErrEmptyEntry, len(req.Lines))
	}

	if err := s.validateLines(req.Lines); err != nil {
		return nil, err
	}

	var sourceType *domain.SourceType
	if (req.SourceType == nil) != (req.SourceID == nil) {
		return nil, fmt.Errorf("%w: sourceType and sourceID must be provided together", apperrors.ErrValidation)
	}
	if req.SourceType != nil {
		st := domain.SourceType(*req.SourceType)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, *req.SourceType)
		}
		sourceType = &st
	}

	if _, err := s.validateAccounts(ctx, req.Lines); err != nil {
		return nil, err
	}

	if err := s.validateBalance(req.Lines); err != nil {
		return nil, err
	}

	// Fast-path duplicate check; the partial unique index catches the race.
	if sourceType != nil {
		existing, err := s.entryRepo.FindActiveEntryBySource(ctx, *sourceType, *req.SourceID)
		if err != nil {
			logger.Error("Failed to check for existing source entry", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check source document: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s/%s already posted as %s",
				apperrors.ErrDuplicateSource, *sourceType, *req.SourceID, existing.EntryNumber)
		}
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.EntryLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
			LineOrder:   i,
			AuditFields: audit,
		}
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Memo:        req.Memo,
		SourceType:  sourceType,
		SourceID:    req.SourceID,
		IsAdjusting: req.IsAdjusting,
		AuditFields: audit,
	}

	entryNumber, err := s.entryRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateSource) {
			logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.EntryNumber = entryNumber
	entry.Lines = lines

	logger.Info("Entry posted successfully", slog.String("entry_id", entryID), slog.String("entry_number", entryNumber))
	return &entry, nil
}

// ReverseEntry posts the mirror of an existing entry and marks the original
// reversed. Both steps happen in one storage transaction; a concurrent second
// reversal loses the conditional update and fails with ErrAlreadyReversed.
func (s *entryService) ReverseEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch entry for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if original.IsReversed {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	}
	if original.ReversalOfID != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrValidation, entryID)
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	mirrorID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	// Mirror each line with debit and credit swapped.
	mirrorLines := make([]domain.EntryLine, len(originalLines))
	for i, origLine := range originalLines {
		mirrorLines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     mirrorID,
			AccountID:   origLine.AccountID,
			Debit:       origLine.Credit,
			Credit:      origLine.Debit,
			Description: origLine.Description,
			LineOrder:   origLine.LineOrder,
			AuditFields: audit,
		}
	}

	// The mirror carries no source key, so the reversed document may be
	// re-posted afterwards.
	mirror := domain.JournalEntry{
		EntryID:      mirrorID,
		EntryDate:    original.EntryDate,
		Memo:         fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		IsAdjusting:  true,
		ReversalOfID: &original.EntryID,
		AuditFields:  audit,
	}

	entryNumber, err := s.entryRepo.SaveReversal(ctx, mirror, mirrorLines, original.EntryID, userID, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReversed) {
			logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	mirror.EntryNumber = entryNumber
	mirror.Lines = mirrorLines

	logger.Info("Entry reversed successfully", slog.String("entry_id", entryID), slog.String("mirror_entry_number", entryNumber))
	return &mirror, nil
}

// GetEntryByID retrieves a specific entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a paginated list of entries with their lines.
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, params.Limit, params.NextToken, params.IncludeReversed)
	if err != nil {
		logger.Error("Failed to list entries from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	var linesMap map[string][]domain.EntryLine
	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.EntryID
		}
		linesMap, err = s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			logger.Error("Failed to fetch lines for entries", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to retrieve entry lines: %w", err)
		}
	}

	entryResponses := make([]dto.EntryResponse, len(entries))
	for i, entry := range entries {
		entry.Lines = linesMap[entry.EntryID]
		entryResponses[i] = dto.ToEntryResponse(&entry)
	}

	logger.Info("Entries listed successfully", slog.Int("count", len(entries)), slog.Bool("include_reversed", params.IncludeReversed))
	return &dto.ListEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}, nil
}

// splitDocumentTax resolves a document's net and tax portions. An explicit tax
// amount wins; otherwise a tax-inclusive rate is split with the
// largest-remainder allocator so the portions recompose the total exactly.
func splitDocumentTax(total, taxAmount, taxRate decimal.Decimal) (net, tax decimal.Decimal, err error) {
	if taxRate.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tax rate must be non-negative, got %s", taxRate)
	}
	if taxAmount.IsZero() && taxRate.IsPositive() {
		return allocation.SplitTaxRate(total, taxRate)
	}
	return allocation.SplitTax(total, taxAmount)
}

// PostExpense journalizes an approved expense: debit the expense account for
// the net amount and tax receivable for the recoverable tax, credit cash for
// the gross total.
func (s *entryService) PostExpense(ctx context.Context, doc domain.ExpenseDocument, accounts dto.ExpenseAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	net, tax, err := splitDocumentTax(doc.Total, doc.TaxAmount, doc.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	sourceType := string(domain.SourceExpense)
	req := dto.CreateEntryRequest{
		EntryDate:  doc.ExpenseDate,
		Memo:       fmt.Sprintf("Expense %s - %s", doc.ExpenseID, doc.Payee),
		SourceType: &sourceType,
		SourceID:   &doc.ExpenseID,
		Lines: []dto.CreateLineRequest{
			{AccountID: accounts.ExpenseAccountID, Debit: net, Description: doc.Payee},
		},
	}
	if tax.IsPositive() {
		req.Lines = append(req.Lines, dto.CreateLineRequest{
			AccountID: accounts.TaxReceivableAccountID, Debit: tax, Description: "Recoverable tax",
		})
	}
	req.Lines = append(req.Lines, dto.CreateLineRequest{
		AccountID: accounts.CashAccountID, Credit: doc.Total, Description: doc.Payee,
	})

	return s.PostEntry(ctx, req, creatorUserID)
}

// PostInvoice journalizes a finalized invoice: debit accounts receivable for
// the gross total, credit sales for the net amount and tax payable for the
// collected tax.
func (s *entryService) PostInvoice(ctx context.Context, doc domain.InvoiceDocument, accounts dto.InvoiceAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	net, tax, err := splitDocumentTax(doc.Total, doc.TaxAmount, doc.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	sourceType := string(domain.SourceInvoice)
	req := dto.CreateEntryRequest{
		EntryDate:  doc.InvoiceDate,
		Memo:       fmt.Sprintf("Invoice %s", doc.InvoiceNumber),
		SourceType: &sourceType,
		SourceID:   &doc.InvoiceID,
		Lines: []dto.CreateLineRequest{
			{AccountID: accounts.ReceivableAccountID, Debit: doc.Total, Description: doc.InvoiceNumber},
			{AccountID: accounts.SalesAccountID, Credit: net, Description: doc.InvoiceNumber},
		},
	}
	if tax.IsPositive() {
		req.Lines = append(req.Lines, dto.CreateLineRequest{
			AccountID: accounts.TaxPayableAccountID, Credit: tax, Description: "Tax collected",
		})
	}

	return s.PostEntry(ctx, req, creatorUserID)
}

// PostPayment journalizes a confirmed payment: debit cash, credit accounts
// receivable.
func (s *entryService) PostPayment(ctx context.Context, doc domain.PaymentDocument, accounts dto.PaymentAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	sourceType := string(domain.SourcePayment)
	req := dto.CreateEntryRequest{
		EntryDate:  doc.PaymentDate,
		Memo:       fmt.Sprintf("Payment %s", doc.Reference),
		SourceType: &sourceType,
		SourceID:   &doc.PaymentID,
		Lines: []dto.CreateLineRequest{
			{AccountID: accounts.CashAccountID, Debit: doc.Amount, Description: doc.Reference},
			{AccountID: accounts.ReceivableAccountID, Credit: doc.Amount, Description: doc.Reference},
		},
	}

	return s.PostEntry(ctx, req, creatorUserID)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
