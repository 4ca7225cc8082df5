package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/rusingacademy/ledger-service/internal/apperrors"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/rusingacademy/ledger-service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountReaderSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, accountSvc portssvc.AccountReaderSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		accountSvc:    accountSvc,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// AccountBalance calculates an account's normal-side balance as of a date.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debit, credit, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf)
	if err != nil {
		logger.Error("Failed to retrieve account activity",
			slog.String("error", err.Error()),
			slog.String("account_id", accountID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return decimal.Zero, fmt.Errorf("failed to retrieve account activity: %w", err)
	}

	balance, err := accounting.NormalBalance(account.AccountType, debit, credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
	}

	logger.Debug("Account balance computed",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()))
	return balance, nil
}

// TrialBalance generates a trial balance report as of a specific date. Each
// account's net activity lands in a single column: debit when debits exceed
// credits, credit otherwise. Total debits must equal total credits on a
// healthy ledger.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rawRows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		logger.Error("Failed to retrieve trial balance data",
			slog.String("error", err.Error()),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(rawRows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, raw := range rawRows {
		net := raw.Debit.Sub(raw.Credit)
		row := domain.TrialBalanceRow{
			AccountID:   raw.AccountID,
			AccountName: raw.AccountName,
			AccountType: raw.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	if !report.Balanced() {
		// A broken invariant, not a user error. Surface it loudly.
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}

	logger.Info("Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// TrialBalanceCSV renders the trial balance as CSV with two fixed decimal
// places, ending with a totals row.
func (s *reportingService) TrialBalanceCSV(ctx context.Context, asOf time.Time) ([]byte, error) {
	report, err := s.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"account_id", "account_name", "account_type", "debit", "credit"}}
	for _, row := range report.Rows {
		records = append(records, []string{
			row.AccountID,
			row.AccountName,
			string(row.AccountType),
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		})
	}
	records = append(records, []string{
		"", "TOTAL", "",
		report.TotalDebit.StringFixed(2),
		report.TotalCredit.StringFixed(2),
	})

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to render trial balance CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
// Revenue and expense amounts arrive positive on their natural side, so net
// profit is plain revenue minus expenses.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss data",
			slog.String("error", err.Error()),
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	report := &domain.ProfitAndLossReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}

	logger.Info("Profit and loss report generated successfully",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet data",
			slog.String("error", err.Error()),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}

	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.NetAmount)
	}

	totalEquity := decimal.Zero
	for _, e := range equity {
		totalEquity = totalEquity.Add(e.NetAmount)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}

	logger.Info("Balance sheet report generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("asset_accounts", len(assets)),
		slog.Int("liability_accounts", len(liabilities)),
		slog.Int("equity_accounts", len(equity)))
	return report, nil
}

// GeneralLedger generates per-account chronological lines with running
// balances as of a specific date.
func (s *reportingService) GeneralLedger(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.reportingRepo.GetGeneralLedgerData(ctx, asOf)
	if err != nil {
		logger.Error("Failed to retrieve general ledger data",
			slog.String("error", err.Error()),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve general ledger data: %w", err)
	}

	for i := range accounts {
		running := decimal.Zero
		for j := range accounts[i].Lines {
			line := &accounts[i].Lines[j]
			signed, err := accounting.NormalBalance(accounts[i].AccountType, line.Debit, line.Credit)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
			}
			running = running.Add(signed)
			line.RunningBalance = running
		}
		accounts[i].Balance = running
	}

	logger.Info("General ledger generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("account_count", len(accounts)))
	return accounts, nil
}