package accounting_test

import (
	"testing"

	"github.com/rusingacademy/ledger-service/internal/core/domain"
	"github.com/rusingacademy/ledger-service/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalSide(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.NormalSide
	}{
		{domain.Asset, domain.DebitNormal},
		{domain.Expense, domain.DebitNormal},
		{domain.Liability, domain.CreditNormal},
		{domain.Equity, domain.CreditNormal},
		{domain.Income, domain.CreditNormal},
	}
	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			got, err := accounting.NormalSide(tt.accountType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalSide_UnknownType(t *testing.T) {
	_, err := accounting.NormalSide(domain.AccountType("CONTRA"))
	assert.Error(t, err)
}

func TestSignedAmount(t *testing.T) {
	debitLine := domain.EntryLine{Debit: decimal.NewFromInt(100)}
	creditLine := domain.EntryLine{Credit: decimal.NewFromInt(100)}

	tests := []struct {
		name        string
		line        domain.EntryLine
		accountType domain.AccountType
		want        string
	}{
		{"debit to asset increases it", debitLine, domain.Asset, "100"},
		{"credit to asset decreases it", creditLine, domain.Asset, "-100"},
		{"credit to income increases it", creditLine, domain.Income, "100"},
		{"debit to income decreases it", debitLine, domain.Income, "-100"},
		{"credit to liability increases it", creditLine, domain.Liability, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestNormalBalance(t *testing.T) {
	debit := decimal.RequireFromString("300.00")
	credit := decimal.RequireFromString("120.00")

	assetBalance, err := accounting.NormalBalance(domain.Asset, debit, credit)
	require.NoError(t, err)
	assert.True(t, assetBalance.Equal(decimal.RequireFromString("180.00")))

	incomeBalance, err := accounting.NormalBalance(domain.Income, debit, credit)
	require.NoError(t, err)
	assert.True(t, incomeBalance.Equal(decimal.RequireFromString("-180.00")))
}

func TestHasMinorUnitPrecision(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"100", true},
		{"100.1", true},
		{"100.10", true},
		{"100.105", false},
		{"0.001", false},
		{"0", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.HasMinorUnitPrecision(decimal.RequireFromString(tt.value)))
		})
	}
}
