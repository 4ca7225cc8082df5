package repositories

import (
	"context"
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data.
// All queries consider only active entries (neither reversed nor a mirror) with
// an entry date at or before asOf.
type ReportingRepository interface {
	// GetAccountActivity retrieves the summed debit and credit activity of one
	// account as of a specific date.
	GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (debit decimal.Decimal, credit decimal.Decimal, err error)

	// GetTrialBalanceData retrieves per-account debit and credit activity as of a
	// specific date. Rows carry raw column sums; the service nets them into the
	// account's normal column.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetGeneralLedgerData retrieves every account's lines in chronological order
	// as of a specific date. Running balances are left to the service.
	GetGeneralLedgerData(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error)

	// GetProfitAndLossData retrieves per-account net amounts for income and
	// expense accounts over a period, positive on each section's natural side.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.ReportAccountLine, err error)

	// GetBalanceSheetData retrieves per-account net amounts for asset, liability,
	// and equity accounts as of a specific date, positive on each section's
	// natural side.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.ReportAccountLine, err error)
}
