package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/corebanking/internal/core/domain"
	"github.com/finbase/corebanking/internal/utils"
)

// TransferRequest moves money from one of the user's accounts to a
// destination account identified by number.
type TransferRequest struct {
	FromAccountID       string          `json:"fromAccountId" binding:"required,uuid"`
	ToAccountNumber     string          `json:"toAccountNumber" binding:"required,min=8,max=20"`
	Amount              decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency            string          `json:"currency" binding:"required,iso4217"`
	Description         string          `json:"description,omitempty" binding:"max=255"`
	Reference           *string         `json:"reference,omitempty" binding:"omitempty,min=8,max=35"`
	BeneficiaryName     string          `json:"beneficiaryName,omitempty" binding:"max=100"`
	SaveAsBeneficiary   bool            `json:"saveAsBeneficiary,omitempty"`
	BeneficiaryNickname string          `json:"beneficiaryNickname,omitempty" binding:"max=50"`
}

// WithdrawalRequest debits one of the user's accounts.
type WithdrawalRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency      string          `json:"currency" binding:"required,iso4217"`
	Description   string          `json:"description,omitempty" binding:"max=255"`
	Reference     *string         `json:"reference,omitempty" binding:"omitempty,min=8,max=35"`
}

// DepositRequest credits one of the user's accounts.
type DepositRequest struct {
	ToAccountID string          `json:"toAccountId" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	Source      string          `json:"source,omitempty" binding:"max=100"`
	Description string          `json:"description,omitempty" binding:"max=255"`
	Reference   *string         `json:"reference,omitempty" binding:"omitempty,min=8,max=35"`
}

// BillPaymentRequest pays a biller from one of the user's accounts.
type BillPaymentRequest struct {
	FromAccountID    string          `json:"fromAccountId" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency         string          `json:"currency" binding:"required,iso4217"`
	BillerName       string          `json:"billerName" binding:"required,max=100"`
	BillType         string          `json:"billType" binding:"required,oneof=ELECTRICITY WATER GAS INTERNET PHONE TV INSURANCE OTHER"`
	AccountReference string          `json:"accountReference,omitempty" binding:"max=50"`
	Description      *string         `json:"description,omitempty" binding:"omitempty,max=255"`
}

// TransactionResult identifies a completed money movement.
type TransactionResult struct {
	TransactionID string `json:"transactionId"`
	Reference     string `json:"reference"`
}

// CategoryResponse is the reporting view of a transaction category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryId"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	IsSystem   bool                `json:"isSystem"`
}

// TransactionResponse is the read view of one ledger entry.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionId"`
	Reference       string                   `json:"reference"`
	Type            domain.TransactionType   `json:"type"`
	Amount          decimal.Decimal          `json:"amount"`
	Currency        string                   `json:"currency"`
	Description     string                   `json:"description,omitempty"`
	Category        *CategoryResponse        `json:"category,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	TransactionDate time.Time                `json:"transactionDate"`
	DateGroup       string                   `json:"dateGroup"`
}

// ToTransactionResponse converts a domain ledger entry to its read view.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   t.TransactionID,
		Reference:       t.Reference,
		Type:            t.Type,
		Amount:          t.Amount,
		Currency:        t.Currency,
		Description:     t.Description,
		Status:          t.Status,
		TransactionDate: t.TransactionDate,
		DateGroup:       utils.DateGroup(t.TransactionDate),
	}
	if t.Category != nil {
		resp.Category = &CategoryResponse{
			CategoryID: t.Category.CategoryID,
			Name:       t.Category.Name,
			Type:       t.Category.Type,
			IsSystem:   t.Category.IsSystem,
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of ledger entries.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
