package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of an account row.
type Account struct {
	AccountID        string           `db:"account_id"`
	UserID           string           `db:"user_id"`
	AccountNumber    string           `db:"account_number"`
	AccountType      string           `db:"account_type"`
	Balance          decimal.Decimal  `db:"balance"`
	AvailableBalance decimal.Decimal  `db:"available_balance"`
	Currency         string           `db:"currency"`
	Branch           string           `db:"branch"`
	Status           string           `db:"status"`
	InterestRate     *decimal.Decimal `db:"interest_rate"`
	TermMonths       *int             `db:"term_months"`
	MaturityDate     *time.Time       `db:"maturity_date"`
	OpenedAt         time.Time        `db:"opened_at"`
	ClosedAt         *time.Time       `db:"closed_at"`
}
