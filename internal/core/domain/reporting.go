package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow reports one account's balance split into its normal column.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance as of a point in time.
// TotalDebit must equal TotalCredit; this is the primary correctness check
// exposed to operators.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// Balanced reports whether the debit and credit columns net out.
func (r *TrialBalanceReport) Balanced() bool {
	return r.TotalDebit.Equal(r.TotalCredit)
}

// ReportAccountLine is one account's net amount within a report section,
// positive on the section's natural side.
type ReportAccountLine struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// ProfitAndLossReport summarizes income and expense activity over a period.
type ProfitAndLossReport struct {
	From          time.Time           `json:"from"`
	To            time.Time           `json:"to"`
	Revenue       []ReportAccountLine `json:"revenue"`
	Expenses      []ReportAccountLine `json:"expenses"`
	TotalRevenue  decimal.Decimal     `json:"totalRevenue"`
	TotalExpenses decimal.Decimal     `json:"totalExpenses"`
	NetProfit     decimal.Decimal     `json:"netProfit"`
}

// BalanceSheetReport snapshots asset, liability, and equity balances as of a
// point in time.
type BalanceSheetReport struct {
	AsOf             time.Time           `json:"asOf"`
	Assets           []ReportAccountLine `json:"assets"`
	Liabilities      []ReportAccountLine `json:"liabilities"`
	Equity           []ReportAccountLine `json:"equity"`
	TotalAssets      decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal     `json:"totalEquity"`
}

// GeneralLedgerLine is one posted line in an account's chronological history,
// with the account's running balance after the line.
type GeneralLedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Memo           string          `json:"memo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerAccount groups an account's lines chronologically.
type GeneralLedgerAccount struct {
	AccountID   string              `json:"accountID"`
	AccountName string              `json:"accountName"`
	AccountType AccountType         `json:"accountType"`
	Lines       []GeneralLedgerLine `json:"lines"`
	Balance     decimal.Decimal     `json:"balance"` // Normal-side balance after the last line
}
