package accounting

import (
	"fmt"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalSide returns the side on which accountType's balance is conventionally
// expressed as positive. Pure function, no I/O.
//
//	ASSET, EXPENSE            -> DEBIT
//	LIABILITY, EQUITY, INCOME -> CREDIT
func NormalSide(accountType domain.AccountType) (domain.NormalSide, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.DebitNormal, nil
	case domain.Liability, domain.Equity, domain.Income:
		return domain.CreditNormal, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedAmount converts a line into the balance change it causes on its
// account, expressed on the account's normal side. A debit to a debit-normal
// account and a credit to a credit-normal account are both positive.
func SignedAmount(line domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	side, err := NormalSide(accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", line.AccountID, err)
	}
	raw := line.Debit.Sub(line.Credit)
	if side == domain.CreditNormal {
		raw = raw.Neg()
	}
	return raw, nil
}

// NormalBalance expresses raw debit/credit totals as a balance on the
// account type's normal side.
func NormalBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	side, err := NormalSide(accountType)
	if err != nil {
		return decimal.Zero, err
	}
	balance := totalDebit.Sub(totalCredit)
	if side == domain.CreditNormal {
		balance = balance.Neg()
	}
	return balance, nil
}

// HasMinorUnitPrecision reports whether d carries no more than two decimal
// places. Amounts beyond minor-unit precision cannot be compared exactly in
// cents and are rejected at posting time.
func HasMinorUnitPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
