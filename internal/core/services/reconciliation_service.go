package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/shopspring/decimal"
)

// reconciliationService implements the ReconciliationService interface.
// Findings are returned as data; a non-empty result never fails the call.
type reconciliationService struct {
	reconciliationRepo portsrepo.ReconciliationRepository
	driftEpsilon       decimal.Decimal
}

// NewReconciliationService creates a new reconciliation service. driftEpsilon
// is the absolute delta above which a totals comparison is flagged as drift.
func NewReconciliationService(repo portsrepo.ReconciliationRepository, driftEpsilon decimal.Decimal) portssvc.ReconciliationService {
	return &reconciliationService{
		reconciliationRepo: repo,
		driftEpsilon:       driftEpsilon,
	}
}

// Ensure reconciliationService implements the ReconciliationService interface
var _ portssvc.ReconciliationService = (*reconciliationService)(nil)

func validateSourceType(sourceType domain.SourceType) error {
	if !sourceType.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, sourceType)
	}
	return nil
}

// FindOrphanSourceDocuments lists posted documents with no active entry.
func (s *reconciliationService) FindOrphanSourceDocuments(ctx context.Context, sourceType domain.SourceType) ([]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateSourceType(sourceType); err != nil {
		return nil, err
	}

	orphans, err := s.reconciliationRepo.FindOrphanSourceIDs(ctx, sourceType)
	if err != nil {
		logger.Error("Failed to find orphan source documents",
			slog.String("error", err.Error()),
			slog.String("source_type", string(sourceType)))
		return nil, fmt.Errorf("failed to find orphan source documents: %w", err)
	}

	logger.Info("Orphan scan completed",
		slog.String("source_type", string(sourceType)),
		slog.Int("orphan_count", len(orphans)))
	return orphans, nil
}

// matchKeyValue renders one match-key attribute of a document. Amounts use two
// fixed decimals and dates the calendar day, so equal values collide reliably.
func matchKeyValue(doc domain.SourceDocument, key domain.MatchKey) (string, error) {
	switch key {
	case domain.MatchPayee:
		return doc.Payee, nil
	case domain.MatchAmount:
		return doc.Amount.StringFixed(2), nil
	case domain.MatchDocDate:
		return doc.DocDate.Format("2006-01-02"), nil
	default:
		return "", fmt.Errorf("%w: unknown match key %q", apperrors.ErrValidation, key)
	}
}

// FindDuplicateSourceDocuments groups posted documents by the given match-key
// tuple and returns groups with more than one member, ordered by key.
func (s *reconciliationService) FindDuplicateSourceDocuments(ctx context.Context, sourceType domain.SourceType, matchKeys []domain.MatchKey) ([]domain.DuplicateGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateSourceType(sourceType); err != nil {
		return nil, err
	}
	if len(matchKeys) == 0 {
		return nil, fmt.Errorf("%w: at least one match key is required", apperrors.ErrValidation)
	}

	docs, err := s.reconciliationRepo.FindPostedDocuments(ctx, sourceType)
	if err != nil {
		logger.Error("Failed to fetch posted documents for duplicate scan",
			slog.String("error", err.Error()),
			slog.String("source_type", string(sourceType)))
		return nil, fmt.Errorf("failed to fetch posted documents: %w", err)
	}

	groupsByKey := make(map[string][]string)
	for _, doc := range docs {
		parts := make([]string, len(matchKeys))
		for i, key := range matchKeys {
			value, err := matchKeyValue(doc, key)
			if err != nil {
				return nil, err
			}
			parts[i] = value
		}
		key := strings.Join(parts, "|")
		groupsByKey[key] = append(groupsByKey[key], doc.SourceID)
	}

	groups := []domain.DuplicateGroup{}
	for key, sourceIDs := range groupsByKey {
		if len(sourceIDs) < 2 {
			continue
		}
		sort.Strings(sourceIDs)
		groups = append(groups, domain.DuplicateGroup{Key: key, SourceIDs: sourceIDs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	logger.Info("Duplicate scan completed",
		slog.String("source_type", string(sourceType)),
		slog.Int("group_count", len(groups)))
	return groups, nil
}

// CompareTotals compares posted document totals with the ledger-derived total
// for one source type. Drift beyond the epsilon is flagged, never an error:
// partial postings legitimately produce non-zero deltas.
func (s *reconciliationService) CompareTotals(ctx context.Context, sourceType domain.SourceType) (*domain.TotalsComparison, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateSourceType(sourceType); err != nil {
		return nil, err
	}

	rawTotal, err := s.reconciliationRepo.GetPostedDocumentTotal(ctx, sourceType)
	if err != nil {
		logger.Error("Failed to sum posted documents",
			slog.String("error", err.Error()),
			slog.String("source_type", string(sourceType)))
		return nil, fmt.Errorf("failed to sum posted documents: %w", err)
	}

	ledgerTotal, err := s.reconciliationRepo.GetLedgerTotalBySource(ctx, sourceType)
	if err != nil {
		logger.Error("Failed to sum ledger entries",
			slog.String("error", err.Error()),
			slog.String("source_type", string(sourceType)))
		return nil, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	delta := rawTotal.Sub(ledgerTotal)
	comparison := &domain.TotalsComparison{
		SourceType:  sourceType,
		RawTotal:    rawTotal,
		LedgerTotal: ledgerTotal,
		Delta:       delta,
		Drift:       delta.Abs().GreaterThan(s.driftEpsilon),
	}

	logger.Info("Totals comparison completed",
		slog.String("source_type", string(sourceType)),
		slog.String("delta", delta.String()),
		slog.Bool("drift", comparison.Drift))
	return comparison, nil
}
