package dto

import (
	"time"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description"`
}

// UpdateAccountRequest defines the payload for updating an account.
// AccountType changes are rejected once lines have posted against the account.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	AccountType *string `json:"accountType,omitempty" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description *string `json:"description,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string    `json:"accountID"`
	Name        string    `json:"name"`
	AccountType string    `json:"accountType"`
	NormalSide  string    `json:"normalSide"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse reports an account's normal-side balance at a point
// in time. Balance is formatted with two fixed decimal places for display.
type AccountBalanceResponse struct {
	AccountID string    `json:"accountID"`
	AsOf      time.Time `json:"asOf"`
	Balance   string    `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account, normalSide domain.NormalSide) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		NormalSide:  string(normalSide),
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountBalanceResponse formats a balance for display.
func ToAccountBalanceResponse(accountID string, asOf time.Time, balance decimal.Decimal) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balance:   balance.StringFixed(2),
	}
}
