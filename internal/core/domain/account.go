package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five recognised account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalSide is the side on which an account type's balance is conventionally
// expressed as positive.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// Account represents one bucket in the chart of accounts.
// AccountType is immutable once any line has posted against the account;
// accounts are soft-deactivated, never hard-deleted once referenced by a line.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Name        string      `json:"name"`        // Unique within its type
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Deactivated accounts reject new postings
	AuditFields
}
