package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Deposit     TransactionType = "DEPOSIT"
	Withdraw    TransactionType = "WITHDRAW"
	Transfer    TransactionType = "TRANSFER"
	BillPayment TransactionType = "BILL_PAYMENT"
)

// TransactionStatus is the settlement state of a ledger entry.
// Completed entries are immutable.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction is one immutable ledger entry: a single-account balance movement
// identified by a globally unique Reference. Amount is signed; negative means
// debit. A transfer produces two entries, one per side.
type Transaction struct {
	TransactionID   string               `json:"transactionID"` // Primary Key (UUID)
	AccountID       *string              `json:"accountID"`     // Nullable FK -> accounts
	CardID          *string              `json:"cardID"`        // Nullable FK -> cards
	Reference       string               `json:"reference"`     // Unique audit/idempotency key
	Type            TransactionType      `json:"type"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        string               `json:"currency"`
	BalanceBefore   decimal.Decimal      `json:"balanceBefore"` // Owning account balance around this entry
	BalanceAfter    decimal.Decimal      `json:"balanceAfter"`
	Description     string               `json:"description,omitempty"`
	CategoryID      *string              `json:"categoryID,omitempty"` // Nullable FK -> transaction_categories
	Category        *TransactionCategory `json:"category,omitempty"`   // Populated on reads when a category is linked
	Status          TransactionStatus    `json:"status"`
	FromAccount     string               `json:"fromAccount,omitempty"` // Counterparty account numbers
	ToAccount       string               `json:"toAccount,omitempty"`
	BeneficiaryName string               `json:"beneficiaryName,omitempty"`
	MerchantName    string               `json:"merchantName,omitempty"`
	TransactionDate time.Time            `json:"transactionDate"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// CategoryType splits transaction categories into money-in and money-out.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// TransactionCategory tags entries for reporting. System categories are
// created by the engine itself (e.g. bill payment categories).
type TransactionCategory struct {
	CategoryID string       `json:"categoryID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	IsSystem   bool         `json:"isSystem"`
}

// TransactionAuditLog is an append-only audit row written alongside every
// ledger mutation. The core never reads it back.
type TransactionAuditLog struct {
	AuditLogID string    `json:"auditLogID"`
	UserID     string    `json:"userID"`
	Action     string    `json:"action"` // e.g. Transfer-Debit, Withdrawal
	Reference  string    `json:"reference"`
	CreatedAt  time.Time `json:"createdAt"`
}
