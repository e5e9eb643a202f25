package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a ledger entry row.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       *string         `db:"account_id"`
	CardID          *string         `db:"card_id"`
	Reference       string          `db:"reference"`
	Type            string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	BalanceBefore   decimal.Decimal `db:"balance_before"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Description     *string         `db:"description"`
	CategoryID      *string         `db:"category_id"`
	Status          string          `db:"status"`
	FromAccount     *string         `db:"from_account"`
	ToAccount       *string         `db:"to_account"`
	BeneficiaryName *string         `db:"beneficiary_name"`
	MerchantName    *string         `db:"merchant_name"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCategory is the database representation of a category row.
type TransactionCategory struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	Type       string `db:"category_type"`
	IsSystem   bool   `db:"is_system"`
}

// TransactionAuditLog is the database representation of an audit row.
type TransactionAuditLog struct {
	AuditLogID string    `db:"audit_log_id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	Reference  string    `db:"reference"`
	CreatedAt  time.Time `db:"created_at"`
}
