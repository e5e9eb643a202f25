package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/corebanking/internal/core/domain"
	"github.com/finbase/corebanking/internal/utils"
)

// OpenAccountRequest opens a new account for the authenticated user.
type OpenAccountRequest struct {
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CHECKING FIXED_DEPOSIT"`
	Branch       string             `json:"branch" binding:"required,max=100"`
	Currency     string             `json:"currency" binding:"omitempty,iso4217"`
	InterestRate *decimal.Decimal   `json:"interestRate,omitempty" binding:"omitempty,dgte0"`
	TermMonths   *int               `json:"termMonths,omitempty" binding:"omitempty,gt=0"`
	MaturityDate *time.Time         `json:"maturityDate,omitempty"`
}

// AccountResponse is the list view of an account. Account numbers leave the
// core masked.
type AccountResponse struct {
	AccountID           string               `json:"accountId"`
	MaskedAccountNumber string               `json:"maskedAccountNumber"`
	Balance             decimal.Decimal      `json:"balance"`
	Currency            string               `json:"currency"`
	Branch              string               `json:"branch"`
	Status              domain.AccountStatus `json:"status"`
}

// AccountBalanceResponse is the derived balance view: available = balance
// minus the sum of pending ledger entries.
type AccountBalanceResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	PendingAmount    decimal.Decimal `json:"pendingAmount"`
}

// AccountDetailsResponse is the detail view with ledger-derived aggregates.
type AccountDetailsResponse struct {
	AccountID           string               `json:"accountId"`
	MaskedAccountNumber string               `json:"maskedAccountNumber"`
	Balance             decimal.Decimal      `json:"balance"`
	AvailableBalance    decimal.Decimal      `json:"availableBalance"`
	Currency            string               `json:"currency"`
	Branch              string               `json:"branch"`
	Status              domain.AccountStatus `json:"status"`
	OpenedAt            time.Time            `json:"openedAt"`
	ClosedAt            *time.Time           `json:"closedAt,omitempty"`
	TotalDeposits       decimal.Decimal      `json:"totalDeposits"`
	TotalWithdrawals    decimal.Decimal      `json:"totalWithdrawals"`
	AverageBalance      decimal.Decimal      `json:"averageBalance"`
	Cards               []CardResponse       `json:"cards"`
}

// ToAccountResponse converts a domain account to its masked list view.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           a.AccountID,
		MaskedAccountNumber: utils.MaskAccountNumber(a.AccountNumber),
		Balance:             a.Balance,
		Currency:            a.Currency,
		Branch:              a.Branch,
		Status:              a.Status,
	}
}
