package services

import (
	"context"
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// AccountBalance calculates an account's normal-side balance as of a date.
	AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// TrialBalanceCSV renders the trial balance as CSV for report consumers.
	TrialBalanceCSV(ctx context.Context, asOf time.Time) ([]byte, error)

	// GeneralLedger generates per-account chronological lines with running
	// balances as of a specific date.
	GeneralLedger(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error)

	// ProfitAndLoss generates a profit and loss report for a specific period.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
}
