package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rusingacademy/ledger-service/internal/core/domain"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Only active entries carry financial truth: once reversed, both the original
// and its mirror drop out of every report.
const activeEntryFilter = `e.is_reversed = FALSE AND e.reversal_of_id IS NULL`

// GetAccountActivity retrieves the summed debit and credit activity of one
// account as of a specific date.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
			AND e.entry_date <= $2
			AND ` + activeEntryFilter + `
	`

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying account activity for %s: %w", accountID, err)
	}

	return debit, credit, nil
}

// GetTrialBalanceData retrieves per-account debit and credit activity as of a
// specific date. Only accounts with at least one active line appear.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.name AS account_name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
			AND ` + activeEntryFilter + `
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}

// GetProfitAndLossData retrieves per-account net amounts for income and
// expense accounts over a period. Income nets are flipped so both sections
// come back positive on their natural side.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.ReportAccountLine, []domain.ReportAccountLine, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2
			AND ` + activeEntryFilter + `
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := []domain.ReportAccountLine{}
	expenses := []domain.ReportAccountLine{}

	for rows.Next() {
		var accountType string
		var line domain.ReportAccountLine

		if err := rows.Scan(&accountType, &line.AccountID, &line.AccountName, &line.NetAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		switch domain.AccountType(accountType) {
		case domain.Income:
			// Credits increase income, so the raw debit-minus-credit net is flipped.
			line.NetAmount = line.NetAmount.Neg()
			revenue = append(revenue, line)
		case domain.Expense:
			expenses = append(expenses, line)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves per-account net amounts for asset, liability,
// and equity accounts as of a specific date. Liability and equity nets are
// flipped so every section comes back positive on its natural side.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.ReportAccountLine, []domain.ReportAccountLine, []domain.ReportAccountLine, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
			AND ` + activeEntryFilter + `
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets := []domain.ReportAccountLine{}
	liabilities := []domain.ReportAccountLine{}
	equity := []domain.ReportAccountLine{}

	for rows.Next() {
		var accountType string
		var line domain.ReportAccountLine

		if err := rows.Scan(&accountType, &line.AccountID, &line.AccountName, &line.NetAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		switch domain.AccountType(accountType) {
		case domain.Asset:
			assets = append(assets, line)
		case domain.Liability:
			line.NetAmount = line.NetAmount.Neg()
			liabilities = append(liabilities, line)
		case domain.Equity:
			line.NetAmount = line.NetAmount.Neg()
			equity = append(equity, line)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return assets, liabilities, equity, nil
}

// GetGeneralLedgerData retrieves every account's active lines in chronological
// order as of a specific date. Running balances are computed by the service.
func (r *reportingRepository) GetGeneralLedgerData(ctx context.Context, asOf time.Time) ([]domain.GeneralLedgerAccount, error) {
	query := `
		SELECT
			a.account_id,
			a.name AS account_name,
			a.account_type,
			e.entry_id,
			e.entry_number,
			e.entry_date,
			e.memo,
			l.debit,
			l.credit,
			l.description
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
			AND ` + activeEntryFilter + `
		ORDER BY a.name, a.account_id, e.entry_date, e.created_at, l.line_order
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying general ledger data: %w", err)
	}
	defer rows.Close()

	accounts := []domain.GeneralLedgerAccount{}
	for rows.Next() {
		var accountID, accountName, accountType string
		var line domain.GeneralLedgerLine

		if err := rows.Scan(
			&accountID,
			&accountName,
			&accountType,
			&line.EntryID,
			&line.EntryNumber,
			&line.EntryDate,
			&line.Memo,
			&line.Debit,
			&line.Credit,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning general ledger row: %w", err)
		}

		n := len(accounts)
		if n == 0 || accounts[n-1].AccountID != accountID {
			accounts = append(accounts, domain.GeneralLedgerAccount{
				AccountID:   accountID,
				AccountName: accountName,
				AccountType: domain.AccountType(accountType),
			})
			n++
		}
		accounts[n-1].Lines = append(accounts[n-1].Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general ledger rows: %w", err)
	}

	return accounts, nil
}
