package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepository = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindPostedDocuments(ctx context.Context, sourceType domain.SourceType) ([]domain.SourceDocument, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceDocument), args.Error(1)
}

func (m *MockReconciliationRepository) FindOrphanSourceIDs(ctx context.Context, sourceType domain.SourceType) ([]string, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReconciliationRepository) GetPostedDocumentTotal(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReconciliationRepository) GetLedgerTotalBySource(ctx context.Context, sourceType domain.SourceType) (decimal.Decimal, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReconciliationRepository
	service  portssvc.ReconciliationService
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReconciliationRepository)
	suite.service = services.NewReconciliationService(suite.mockRepo, decimal.RequireFromString("0.01"))
}

func day(dayOfMonth int) time.Time {
	return time.Date(2026, 3, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestFindOrphans_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindOrphanSourceIDs", ctx, domain.SourceExpense).Return([]string{"exp-3", "exp-7"}, nil).Once()

	orphans, err := suite.service.FindOrphanSourceDocuments(ctx, domain.SourceExpense)

	suite.Require().NoError(err)
	suite.Equal([]string{"exp-3", "exp-7"}, orphans)
}

func (suite *ReconciliationServiceTestSuite) TestFindOrphans_UnknownSourceType() {
	ctx := context.Background()

	_, err := suite.service.FindOrphanSourceDocuments(ctx, domain.SourceType("REFUND"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindOrphanSourceIDs", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestFindDuplicates_GroupsByKeyTuple() {
	ctx := context.Background()
	docs := []domain.SourceDocument{
		{SourceType: domain.SourceExpense, SourceID: "exp-1", Payee: "Acme", Amount: decimal.RequireFromString("150.00"), DocDate: day(1)},
		{SourceType: domain.SourceExpense, SourceID: "exp-2", Payee: "Acme", Amount: decimal.RequireFromString("150.00"), DocDate: day(1)},
		{SourceType: domain.SourceExpense, SourceID: "exp-3", Payee: "Acme", Amount: decimal.RequireFromString("99.00"), DocDate: day(1)},
		{SourceType: domain.SourceExpense, SourceID: "exp-4", Payee: "Globex", Amount: decimal.RequireFromString("150.00"), DocDate: day(1)},
	}
	suite.mockRepo.On("FindPostedDocuments", ctx, domain.SourceExpense).Return(docs, nil).Once()

	groups, err := suite.service.FindDuplicateSourceDocuments(ctx, domain.SourceExpense,
		[]domain.MatchKey{domain.MatchPayee, domain.MatchAmount, domain.MatchDocDate})

	suite.Require().NoError(err)
	suite.Require().Len(groups, 1)
	suite.Equal("Acme|150.00|2026-03-01", groups[0].Key)
	suite.Equal([]string{"exp-1", "exp-2"}, groups[0].SourceIDs)
}

func (suite *ReconciliationServiceTestSuite) TestFindDuplicates_WiderKeyWidensGroups() {
	ctx := context.Background()
	docs := []domain.SourceDocument{
		{SourceID: "exp-1", Payee: "Acme", Amount: decimal.RequireFromString("150.00"), DocDate: day(1)},
		{SourceID: "exp-2", Payee: "Acme", Amount: decimal.RequireFromString("99.00"), DocDate: day(2)},
		{SourceID: "exp-3", Payee: "Globex", Amount: decimal.RequireFromString("10.00"), DocDate: day(3)},
	}
	suite.mockRepo.On("FindPostedDocuments", ctx, domain.SourceExpense).Return(docs, nil).Once()

	// Grouping by payee alone pulls both Acme documents together.
	groups, err := suite.service.FindDuplicateSourceDocuments(ctx, domain.SourceExpense,
		[]domain.MatchKey{domain.MatchPayee})

	suite.Require().NoError(err)
	suite.Require().Len(groups, 1)
	suite.Equal("Acme", groups[0].Key)
	suite.Equal([]string{"exp-1", "exp-2"}, groups[0].SourceIDs)
}

func (suite *ReconciliationServiceTestSuite) TestFindDuplicates_RequiresMatchKey() {
	ctx := context.Background()

	_, err := suite.service.FindDuplicateSourceDocuments(ctx, domain.SourceExpense, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestFindDuplicates_UnknownMatchKey() {
	ctx := context.Background()
	docs := []domain.SourceDocument{{SourceID: "exp-1", Payee: "Acme"}}
	suite.mockRepo.On("FindPostedDocuments", ctx, domain.SourceExpense).Return(docs, nil).Once()

	_, err := suite.service.FindDuplicateSourceDocuments(ctx, domain.SourceExpense,
		[]domain.MatchKey{domain.MatchKey("vendorTaxNumber")})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestCompareTotals_NoDrift() {
	ctx := context.Background()
	suite.mockRepo.On("GetPostedDocumentTotal", ctx, domain.SourceInvoice).Return(decimal.RequireFromString("1000.00"), nil).Once()
	suite.mockRepo.On("GetLedgerTotalBySource", ctx, domain.SourceInvoice).Return(decimal.RequireFromString("1000.00"), nil).Once()

	comparison, err := suite.service.CompareTotals(ctx, domain.SourceInvoice)

	suite.Require().NoError(err)
	suite.True(comparison.Delta.IsZero())
	suite.False(comparison.Drift)
}

func (suite *ReconciliationServiceTestSuite) TestCompareTotals_DriftIsDataNotError() {
	ctx := context.Background()
	suite.mockRepo.On("GetPostedDocumentTotal", ctx, domain.SourcePayment).Return(decimal.RequireFromString("1000.00"), nil).Once()
	suite.mockRepo.On("GetLedgerTotalBySource", ctx, domain.SourcePayment).Return(decimal.RequireFromString("750.00"), nil).Once()

	comparison, err := suite.service.CompareTotals(ctx, domain.SourcePayment)

	suite.Require().NoError(err)
	suite.True(comparison.Delta.Equal(decimal.RequireFromString("250.00")))
	suite.True(comparison.Drift)
}

func (suite *ReconciliationServiceTestSuite) TestCompareTotals_WithinEpsilon() {
	ctx := context.Background()
	suite.mockRepo.On("GetPostedDocumentTotal", ctx, domain.SourceExpense).Return(decimal.RequireFromString("100.01"), nil).Once()
	suite.mockRepo.On("GetLedgerTotalBySource", ctx, domain.SourceExpense).Return(decimal.RequireFromString("100.00"), nil).Once()

	comparison, err := suite.service.CompareTotals(ctx, domain.SourceExpense)

	suite.Require().NoError(err)
	suite.False(comparison.Drift)
}

// --- Run Test Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
