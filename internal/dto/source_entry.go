package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseAccounts names the chart-of-accounts buckets an expense posting hits.
type ExpenseAccounts struct {
	ExpenseAccountID       string `json:"expenseAccountID" binding:"required"`
	TaxReceivableAccountID string `json:"taxReceivableAccountID" binding:"required"`
	CashAccountID          string `json:"cashAccountID" binding:"required"`
}

// InvoiceAccounts names the buckets an invoice posting hits.
type InvoiceAccounts struct {
	ReceivableAccountID string `json:"receivableAccountID" binding:"required"`
	SalesAccountID      string `json:"salesAccountID" binding:"required"`
	TaxPayableAccountID string `json:"taxPayableAccountID" binding:"required"`
}

// PaymentAccounts names the buckets a payment posting hits.
type PaymentAccounts struct {
	CashAccountID       string `json:"cashAccountID" binding:"required"`
	ReceivableAccountID string `json:"receivableAccountID" binding:"required"`
}

// PostExpenseRequest journalizes an approved expense document.
type PostExpenseRequest struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	Payee       string          `json:"payee"`
	Total       decimal.Decimal `json:"total" binding:"required"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	Accounts    ExpenseAccounts `json:"accounts" binding:"required"`
}

// PostInvoiceRequest journalizes a finalized invoice document.
type PostInvoiceRequest struct {
	InvoiceID     string          `json:"invoiceID" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Total         decimal.Decimal `json:"total" binding:"required"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	InvoiceDate   time.Time       `json:"invoiceDate" binding:"required"`
	Accounts      InvoiceAccounts `json:"accounts" binding:"required"`
}

// PostPaymentRequest journalizes a confirmed payment document.
type PostPaymentRequest struct {
	PaymentID   string          `json:"paymentID" binding:"required"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Accounts    PaymentAccounts `json:"accounts" binding:"required"`
}
