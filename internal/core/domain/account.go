package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// AccountType selects the product behaviour of an account.
type AccountType string

const (
	Savings      AccountType = "SAVINGS"
	Checking     AccountType = "CHECKING"
	FixedDeposit AccountType = "FIXED_DEPOSIT"
)

// Account represents a customer account within the core domain.
// This is the primary representation used by services.
//
// Balance only changes inside a ledger-writing transaction; a closed account's
// balance is frozen. AvailableBalance never exceeds Balance.
type Account struct {
	AccountID        string           `json:"accountID"`     // Primary Key (UUID)
	UserID           string           `json:"userID"`        // Owner, FK -> users.user_id (NON-NULL)
	AccountNumber    string           `json:"accountNumber"` // Unique, generated: ACC + 9 digits
	AccountType      AccountType      `json:"accountType"`
	Balance          decimal.Decimal  `json:"balance"`
	AvailableBalance decimal.Decimal  `json:"availableBalance"`
	Currency         string           `json:"currency"` // ISO currency code
	Branch           string           `json:"branch"`
	Status           AccountStatus    `json:"status"`
	InterestRate     *decimal.Decimal `json:"interestRate,omitempty"` // Fixed-deposit products only
	TermMonths       *int             `json:"termMonths,omitempty"`
	MaturityDate     *time.Time       `json:"maturityDate,omitempty"`
	OpenedAt         time.Time        `json:"openedAt"`
	ClosedAt         *time.Time       `json:"closedAt,omitempty"`
}

// IsOwnedBy reports whether the account belongs to userID.
func (a Account) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}
