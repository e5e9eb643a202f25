package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is the database representation of a card row.
type Card struct {
	CardID          string           `db:"card_id"`
	UserID          string           `db:"user_id"`
	AccountID       string           `db:"account_id"`
	Last4Digits     string           `db:"last4_digits"`
	CardHolderName  string           `db:"card_holder_name"`
	CardName        string           `db:"card_name"`
	CardType        string           `db:"card_type"`
	CardBrand       string           `db:"card_brand"`
	ValidFrom       string           `db:"valid_from"`
	ExpiryDate      string           `db:"expiry_date"`
	CreditLimit     *decimal.Decimal `db:"credit_limit"`
	AvailableCredit *decimal.Decimal `db:"available_credit"`
	DailyLimit      *decimal.Decimal `db:"daily_limit"`
	MonthlyLimit    *decimal.Decimal `db:"monthly_limit"`
	Status          string           `db:"status"`
	IssuedAt        time.Time        `db:"issued_at"`
}

// CardRequest is the database representation of a card application row.
type CardRequest struct {
	CardRequestID      string           `db:"card_request_id"`
	UserID             string           `db:"user_id"`
	AccountID          string           `db:"account_id"`
	CardType           string           `db:"card_type"`
	CardHolderName     string           `db:"card_holder_name"`
	CardName           string           `db:"card_name"`
	DesiredCreditLimit *decimal.Decimal `db:"desired_credit_limit"`
	Status             string           `db:"status"`
	CreatedAt          time.Time        `db:"created_at"`
}

// CardAuditLog is the database representation of a card audit row.
type CardAuditLog struct {
	AuditLogID     string    `db:"audit_log_id"`
	CardID         string    `db:"card_id"`
	UserID         string    `db:"user_id"`
	PreviousStatus string    `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	Reason         *string   `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
}
