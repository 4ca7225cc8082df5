package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/dto"
	"github.com/rusingacademy/ledger-service/internal/handlers"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/rusingacademy/ledger-service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockEntryService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ReverseEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) PostExpense(ctx context.Context, doc domain.ExpenseDocument, accounts dto.ExpenseAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, doc, accounts, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) PostInvoice(ctx context.Context, doc domain.InvoiceDocument, accounts dto.InvoiceAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, doc, accounts, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) PostPayment(ctx context.Context, doc domain.PaymentDocument, accounts dto.PaymentAccounts, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, doc, accounts, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func (m *MockReportingService) TrialBalanceCSV(ctx context.Context, asOf time.Time) ([]byte, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportingService) GeneralLedger(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerAccount), args.Error(1)
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLossReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

var _ portssvc.ReconciliationService = (*MockReconciliationService)(nil)

func (m *MockReconciliationService) FindOrphanSourceDocuments(ctx context.Context, sourceType domain.SourceType) ([]string, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReconciliationService) FindDuplicateSourceDocuments(ctx context.Context, sourceType domain.SourceType, matchKeys []domain.MatchKey) ([]domain.DuplicateGroup, error) {
	args := m.Called(ctx, sourceType, matchKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuplicateGroup), args.Error(1)
}

func (m *MockReconciliationService) CompareTotals(ctx context.Context, sourceType domain.SourceType) (*domain.TotalsComparison, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TotalsComparison), args.Error(1)
}

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router                    *gin.Engine
	mockAccountService        *MockAccountService
	mockEntryService          *MockEntryService
	mockReportingService      *MockReportingService
	mockReconciliationService *MockReconciliationService
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockAccountService = new(MockAccountService)
	suite.mockEntryService = new(MockEntryService)
	suite.mockReportingService = new(MockReportingService)
	suite.mockReconciliationService = new(MockReconciliationService)

	services := &portssvc.ServiceContainer{
		Account:        suite.mockAccountService,
		Entry:          suite.mockEntryService,
		Reporting:      suite.mockReportingService,
		Reconciliation: suite.mockReconciliationService,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *EntryHandlerTestSuite) postJSON(url string, payload any, actorID string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(middleware.ActorIDHeader, actorID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestPostEntry_Created() {
	actorID := uuid.NewString()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000001",
		EntryDate:   time.Now().UTC(),
		Memo:        "Cash sale",
	}

	suite.mockEntryService.On("PostEntry",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
			return req.Memo == "Cash sale" && len(req.Lines) == 2
		}),
		actorID,
	).Return(entry, nil).Once()

	payload := gin.H{
		"entryDate": time.Now().UTC().Format(time.RFC3339),
		"memo":      "Cash sale",
		"lines": []gin.H{
			{"accountID": uuid.NewString(), "debit": "100.00"},
			{"accountID": uuid.NewString(), "credit": "100.00"},
		},
	}
	w := suite.postJSON("/api/v1/entries", payload, actorID)

	suite.Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-000001", resp.EntryNumber)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_DefaultActorWhenHeaderMissing() {
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "JE-000002"}

	suite.mockEntryService.On("PostEntry", mock.Anything, mock.Anything, middleware.DefaultActorID).Return(entry, nil).Once()

	payload := gin.H{
		"entryDate": time.Now().UTC().Format(time.RFC3339),
		"lines": []gin.H{
			{"accountID": uuid.NewString(), "debit": "10.00"},
			{"accountID": uuid.NewString(), "credit": "10.00"},
		},
	}
	w := suite.postJSON("/api/v1/entries", payload, "")

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ValidationErrorsMapTo400() {
	for _, sentinel := range []error{
		apperrors.ErrEmptyEntry,
		apperrors.ErrMalformedLine,
		apperrors.ErrUnknownAccount,
		apperrors.ErrUnbalancedEntry,
	} {
		suite.mockEntryService.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil, sentinel).Once()

		payload := gin.H{
			"entryDate": time.Now().UTC().Format(time.RFC3339),
			"lines": []gin.H{
				{"accountID": uuid.NewString(), "debit": "10.00"},
				{"accountID": uuid.NewString(), "credit": "10.00"},
			},
		}
		w := suite.postJSON("/api/v1/entries", payload, "tester")

		suite.Equal(http.StatusBadRequest, w.Code, "sentinel %v", sentinel)
	}
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_DuplicateSourceMapsTo409() {
	suite.mockEntryService.On("PostEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: INVOICE/inv-1 already posted as JE-000009", apperrors.ErrDuplicateSource)).Once()

	payload := gin.H{
		"entryDate": time.Now().UTC().Format(time.RFC3339),
		"lines": []gin.H{
			{"accountID": uuid.NewString(), "debit": "10.00"},
			{"accountID": uuid.NewString(), "credit": "10.00"},
		},
	}
	w := suite.postJSON("/api/v1/entries", payload, "tester")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_AlreadyReversedMapsTo409() {
	entryID := uuid.NewString()
	suite.mockEntryService.On("ReverseEntry", mock.Anything, entryID, "dup", mock.Anything).
		Return(nil, apperrors.ErrAlreadyReversed).Once()

	w := suite.postJSON("/api/v1/entries/"+entryID+"/reverse", gin.H{"reason": "dup"}, "tester")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_MissingReasonRejected() {
	w := suite.postJSON("/api/v1/entries/"+uuid.NewString()+"/reverse", gin.H{}, "tester")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesQueryParams() {
	token := "abc123"
	resp := &dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}

	suite.mockEntryService.On("ListEntries", mock.Anything, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 5 && p.IncludeReversed && p.NextToken != nil && *p.NextToken == token
	})).Return(resp, nil).Once()

	url := "/api/v1/entries?limit=5&includeReversed=true&nextToken=" + token
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostExpense_BindsDocumentAndAccounts() {
	actorID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "JE-000030"}

	suite.mockEntryService.On("PostExpense",
		mock.Anything,
		mock.MatchedBy(func(doc domain.ExpenseDocument) bool {
			return doc.ExpenseID == "exp-1" && doc.Payee == "Acme" && doc.Total.Equal(decimal.RequireFromString("115.00"))
		}),
		mock.AnythingOfType("dto.ExpenseAccounts"),
		actorID,
	).Return(entry, nil).Once()

	payload := gin.H{
		"expenseID":   "exp-1",
		"payee":       "Acme",
		"total":       "115.00",
		"taxAmount":   "15.00",
		"expenseDate": time.Now().UTC().Format(time.RFC3339),
		"accounts": gin.H{
			"expenseAccountID":       uuid.NewString(),
			"taxReceivableAccountID": uuid.NewString(),
			"cashAccountID":          uuid.NewString(),
		},
	}
	w := suite.postJSON("/api/v1/entries/expense", payload, actorID)

	suite.Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetProfitAndLoss_PassesPeriod() {
	report := &domain.ProfitAndLossReport{
		NetProfit: decimal.RequireFromString("180.00"),
	}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingService.On("ProfitAndLoss", mock.Anything, from, to).Return(report, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2026-01-01&to=2026-03-31", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp dto.ProfitAndLossResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("180.00", resp.NetProfit)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetProfitAndLoss_InvertedPeriodRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2026-03-31&to=2026-01-01", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestGetBalanceSheet_ReturnsSections() {
	report := &domain.BalanceSheetReport{
		TotalAssets:      decimal.RequireFromString("500.00"),
		TotalLiabilities: decimal.RequireFromString("200.00"),
		TotalEquity:      decimal.RequireFromString("300.00"),
	}
	suite.mockReportingService.On("BalanceSheet", mock.Anything, mock.AnythingOfType("time.Time")).Return(report, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp dto.BalanceSheetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("500.00", resp.TotalAssets)
	suite.Equal("200.00", resp.TotalLiabilities)
	suite.Equal("300.00", resp.TotalEquity)
	suite.mockReportingService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
