package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetGeneralLedgerData(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerAccount), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.ReportAccountLine, []domain.ReportAccountLine, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.ReportAccountLine), args.Get(1).([]domain.ReportAccountLine), args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.ReportAccountLine, []domain.ReportAccountLine, []domain.ReportAccountLine, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).([]domain.ReportAccountLine), args.Get(1).([]domain.ReportAccountLine), args.Get(2).([]domain.ReportAccountLine), args.Error(3)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountSvc    *MockAccountReader
	service           portssvc.ReportingService
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountSvc = new(MockAccountReader)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountSvc)
	suite.asOf = time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestAccountBalance_DebitNormal() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Name: "Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, suite.asOf).
		Return(decimal.RequireFromString("500.00"), decimal.RequireFromString("120.00"), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, account.AccountID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("380.00")))
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_CreditNormal() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Name: "Sales", AccountType: domain.Income, IsActive: true}

	suite.mockAccountSvc.On("GetAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, account.AccountID, suite.asOf).
		Return(decimal.RequireFromString("20.00"), decimal.RequireFromString("300.00"), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, account.AccountID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("280.00")))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NetsEachAccountIntoOneColumn() {
	ctx := context.Background()
	cashID := uuid.NewString()
	salesID := uuid.NewString()
	raw := []domain.TrialBalanceRow{
		{AccountID: cashID, AccountName: "Cash", AccountType: domain.Asset,
			Debit: decimal.RequireFromString("150.00"), Credit: decimal.RequireFromString("50.00")},
		{AccountID: salesID, AccountName: "Sales", AccountType: domain.Income,
			Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(raw, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)

	// Cash nets to a 100 debit; sales stays a 100 credit.
	suite.True(report.Rows[0].Debit.Equal(decimal.RequireFromString("100.00")))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.True(report.Rows[1].Credit.Equal(decimal.RequireFromString("100.00")))
	suite.True(report.Rows[1].Debit.IsZero())

	suite.True(report.TotalDebit.Equal(report.TotalCredit))
	suite.True(report.Balanced())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeNetLandsInCreditColumn() {
	ctx := context.Background()
	raw := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountName: "Overdrawn", AccountType: domain.Asset,
			Debit: decimal.RequireFromString("10.00"), Credit: decimal.RequireFromString("40.00")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(raw, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Rows[0].Debit.IsZero())
	suite.True(report.Rows[0].Credit.Equal(decimal.RequireFromString("30.00")))
}

func (suite *ReportingServiceTestSuite) TestTrialBalanceCSV_EndsWithTotalsRow() {
	ctx := context.Background()
	raw := []domain.TrialBalanceRow{
		{AccountID: "a-1", AccountName: "Cash", AccountType: domain.Asset,
			Debit: decimal.RequireFromString("100.00"), Credit: decimal.Zero},
		{AccountID: "a-2", AccountName: "Sales", AccountType: domain.Income,
			Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(raw, nil).Once()

	csvData, err := suite.service.TrialBalanceCSV(ctx, suite.asOf)

	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	suite.Require().Len(lines, 4)
	suite.Equal("account_id,account_name,account_type,debit,credit", lines[0])
	suite.Equal(",TOTAL,,100.00,100.00", lines[3])
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_ComputesRunningBalances() {
	ctx := context.Background()
	data := []domain.GeneralLedgerAccount{
		{
			AccountID:   uuid.NewString(),
			AccountName: "Cash",
			AccountType: domain.Asset,
			Lines: []domain.GeneralLedgerLine{
				{EntryNumber: "JE-000001", Debit: decimal.RequireFromString("100.00"), Credit: decimal.Zero},
				{EntryNumber: "JE-000002", Debit: decimal.Zero, Credit: decimal.RequireFromString("40.00")},
			},
		},
		{
			AccountID:   uuid.NewString(),
			AccountName: "Sales",
			AccountType: domain.Income,
			Lines: []domain.GeneralLedgerLine{
				{EntryNumber: "JE-000001", Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
			},
		},
	}
	suite.mockReportingRepo.On("GetGeneralLedgerData", ctx, suite.asOf).Return(data, nil).Once()

	accounts, err := suite.service.GeneralLedger(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)

	// Cash: +100 then -40 on the debit-normal side.
	suite.True(accounts[0].Lines[0].RunningBalance.Equal(decimal.RequireFromString("100.00")))
	suite.True(accounts[0].Lines[1].RunningBalance.Equal(decimal.RequireFromString("60.00")))
	suite.True(accounts[0].Balance.Equal(decimal.RequireFromString("60.00")))

	// Sales: a credit is positive on the credit-normal side.
	suite.True(accounts[1].Lines[0].RunningBalance.Equal(decimal.RequireFromString("100.00")))
	suite.True(accounts[1].Balance.Equal(decimal.RequireFromString("100.00")))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ComputesNetProfit() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	revenue := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Tuition", NetAmount: decimal.RequireFromString("250.00")},
		{AccountID: uuid.NewString(), AccountName: "Coaching", NetAmount: decimal.RequireFromString("50.00")},
	}
	expenses := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Hosting", NetAmount: decimal.RequireFromString("120.00")},
	}
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, from, suite.asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Revenue, 2)
	suite.Len(report.Expenses, 1)
	suite.True(report.TotalRevenue.Equal(decimal.RequireFromString("300.00")))
	suite.True(report.TotalExpenses.Equal(decimal.RequireFromString("120.00")))
	suite.True(report.NetProfit.Equal(decimal.RequireFromString("180.00")))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_LossYieldsNegativeNetProfit() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	revenue := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Tuition", NetAmount: decimal.RequireFromString("80.00")},
	}
	expenses := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Hosting", NetAmount: decimal.RequireFromString("130.00")},
	}
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, from, suite.asOf).Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.RequireFromString("-50.00")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_TotalsEachSection() {
	ctx := context.Background()
	assets := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Cash", NetAmount: decimal.RequireFromString("400.00")},
		{AccountID: uuid.NewString(), AccountName: "Accounts Receivable", NetAmount: decimal.RequireFromString("100.00")},
	}
	liabilities := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Tax Payable", NetAmount: decimal.RequireFromString("200.00")},
	}
	equity := []domain.ReportAccountLine{
		{AccountID: uuid.NewString(), AccountName: "Retained Earnings", NetAmount: decimal.RequireFromString("300.00")},
	}
	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.asOf).Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("500.00")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("200.00")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("300.00")))

	// Accounting equation holds on a healthy ledger.
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
