package dto

import (
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
)

// TrialBalanceRowResponse is one account's row with amounts formatted to two
// fixed decimal places for currency display.
type TrialBalanceRowResponse struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// TrialBalanceResponse is the full report; TotalDebit equals TotalCredit on a
// healthy ledger.
type TrialBalanceResponse struct {
	AsOf        time.Time                 `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  string                    `json:"totalDebit"`
	TotalCredit string                    `json:"totalCredit"`
	Balanced    bool                      `json:"balanced"`
}

// GeneralLedgerLineResponse is one line of an account's chronological history.
type GeneralLedgerLineResponse struct {
	EntryID        string    `json:"entryID"`
	EntryNumber    string    `json:"entryNumber"`
	EntryDate      time.Time `json:"entryDate"`
	Memo           string    `json:"memo"`
	Debit          string    `json:"debit"`
	Credit         string    `json:"credit"`
	Description    string    `json:"description"`
	RunningBalance string    `json:"runningBalance"`
}

// GeneralLedgerAccountResponse groups one account's lines.
type GeneralLedgerAccountResponse struct {
	AccountID   string                      `json:"accountID"`
	AccountName string                      `json:"accountName"`
	AccountType string                      `json:"accountType"`
	Lines       []GeneralLedgerLineResponse `json:"lines"`
	Balance     string                      `json:"balance"`
}

// GeneralLedgerResponse is the full general ledger as of a point in time.
type GeneralLedgerResponse struct {
	AsOf     time.Time                      `json:"asOf"`
	Accounts []GeneralLedgerAccountResponse `json:"accounts"`
}

// ReportAccountLineResponse is one account's net amount within a report
// section, formatted for display.
type ReportAccountLineResponse struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	NetAmount   string `json:"netAmount"`
}

// ProfitAndLossResponse summarizes income and expense activity over a period.
type ProfitAndLossResponse struct {
	From          time.Time                   `json:"from"`
	To            time.Time                   `json:"to"`
	Revenue       []ReportAccountLineResponse `json:"revenue"`
	Expenses      []ReportAccountLineResponse `json:"expenses"`
	TotalRevenue  string                      `json:"totalRevenue"`
	TotalExpenses string                      `json:"totalExpenses"`
	NetProfit     string                      `json:"netProfit"`
}

// BalanceSheetResponse snapshots asset, liability, and equity balances.
type BalanceSheetResponse struct {
	AsOf             time.Time                   `json:"asOf"`
	Assets           []ReportAccountLineResponse `json:"assets"`
	Liabilities      []ReportAccountLineResponse `json:"liabilities"`
	Equity           []ReportAccountLineResponse `json:"equity"`
	TotalAssets      string                      `json:"totalAssets"`
	TotalLiabilities string                      `json:"totalLiabilities"`
	TotalEquity      string                      `json:"totalEquity"`
}

// ToTrialBalanceResponse converts the domain report for display.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit.StringFixed(2),
			Credit:      row.Credit.StringFixed(2),
		}
	}
	return TrialBalanceResponse{
		AsOf:        r.AsOf,
		Rows:        rows,
		TotalDebit:  r.TotalDebit.StringFixed(2),
		TotalCredit: r.TotalCredit.StringFixed(2),
		Balanced:    r.Balanced(),
	}
}

func toReportAccountLineResponses(lines []domain.ReportAccountLine) []ReportAccountLineResponse {
	out := make([]ReportAccountLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ReportAccountLineResponse{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			NetAmount:   l.NetAmount.StringFixed(2),
		}
	}
	return out
}

// ToProfitAndLossResponse converts the domain report for display.
func ToProfitAndLossResponse(r *domain.ProfitAndLossReport) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		From:          r.From,
		To:            r.To,
		Revenue:       toReportAccountLineResponses(r.Revenue),
		Expenses:      toReportAccountLineResponses(r.Expenses),
		TotalRevenue:  r.TotalRevenue.StringFixed(2),
		TotalExpenses: r.TotalExpenses.StringFixed(2),
		NetProfit:     r.NetProfit.StringFixed(2),
	}
}

// ToBalanceSheetResponse converts the domain report for display.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             r.AsOf,
		Assets:           toReportAccountLineResponses(r.Assets),
		Liabilities:      toReportAccountLineResponses(r.Liabilities),
		Equity:           toReportAccountLineResponses(r.Equity),
		TotalAssets:      r.TotalAssets.StringFixed(2),
		TotalLiabilities: r.TotalLiabilities.StringFixed(2),
		TotalEquity:      r.TotalEquity.StringFixed(2),
	}
}

// ToGeneralLedgerResponse converts the grouped ledger for display.
func ToGeneralLedgerResponse(asOf time.Time, accounts []domain.GeneralLedgerAccount) GeneralLedgerResponse {
	out := make([]GeneralLedgerAccountResponse, len(accounts))
	for i, acc := range accounts {
		lines := make([]GeneralLedgerLineResponse, len(acc.Lines))
		for j, l := range acc.Lines {
			lines[j] = GeneralLedgerLineResponse{
				EntryID:        l.EntryID,
				EntryNumber:    l.EntryNumber,
				EntryDate:      l.EntryDate,
				Memo:           l.Memo,
				Debit:          l.Debit.StringFixed(2),
				Credit:         l.Credit.StringFixed(2),
				Description:    l.Description,
				RunningBalance: l.RunningBalance.StringFixed(2),
			}
		}
		out[i] = GeneralLedgerAccountResponse{
			AccountID:   acc.AccountID,
			AccountName: acc.AccountName,
			AccountType: string(acc.AccountType),
			Lines:       lines,
			Balance:     acc.Balance.StringFixed(2),
		}
	}
	return GeneralLedgerResponse{AsOf: asOf, Accounts: out}
}
