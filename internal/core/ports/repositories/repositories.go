package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/corebanking/internal/core/domain"
)

// PostingBuilder computes one atomic money movement from the freshly locked
// account rows. It re-runs all business preconditions: when the surrounding
// transaction is retried after a transient fault, the builder executes again
// against fresh reads. Returning an error aborts the posting without retry.
type PostingBuilder func(accounts map[string]domain.Account) (*domain.Posting, error)

// AccountRepository owns account rows.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)
	// CloseAccount marks the account Closed iff it is Active, has no pending
	// ledger entries, and no non-cancelled cards. It returns
	// apperrors.ErrHasPendingTransactions, apperrors.ErrHasActiveCards, or
	// apperrors.ErrNotFound when the guard fails.
	CloseAccount(ctx context.Context, accountID string, closedAt time.Time) error
	HasActiveCards(ctx context.Context, accountID string) (bool, error)
}

// LedgerRepository owns the append-only ledger and its audit trail.
type LedgerRepository interface {
	// Post runs one money movement atomically: it locks the given accounts in
	// a fixed order inside a database transaction, hands the fresh rows to
	// build, and persists the returned posting (entries, balance changes,
	// audit rows, optional category/beneficiary). The whole unit is retried
	// on transient storage faults; a unique-reference conflict surfaces as
	// apperrors.ErrDuplicateReference.
	Post(ctx context.Context, accountIDs []string, build PostingBuilder) error

	FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, accountID *string, page, pageSize int) ([]domain.Transaction, int, error)
	FilterTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	Statement(ctx context.Context, accountID string, start, end time.Time, skip, take int) ([]domain.Transaction, int, error)
	PendingAmount(ctx context.Context, accountID string) (decimal.Decimal, error)
	HasPendingTransactions(ctx context.Context, accountID string) (bool, error)
	AccountActivity(ctx context.Context, accountID string) (*AccountActivity, error)
}

// AccountActivity aggregates an account's completed ledger entries.
type AccountActivity struct {
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	AverageBalance   decimal.Decimal
	CompletedCount   int
}

// CardRepository owns card, card request, and card audit rows.
type CardRepository interface {
	FindCardByID(ctx context.Context, cardID, userID string) (*domain.Card, error)
	FindCardsByUserID(ctx context.Context, userID string) ([]domain.Card, error)
	SaveCardRequest(ctx context.Context, request domain.CardRequest) error
	// UpdateCard persists card mutations together with the audit row in one
	// database transaction.
	UpdateCard(ctx context.Context, card domain.Card, audit *domain.CardAuditLog) error
	DailyUsage(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error)
	MonthlyUsage(ctx context.Context, cardID string, monthStart, now time.Time) (decimal.Decimal, error)
}

// BeneficiaryRepository owns saved transfer counterparties.
type BeneficiaryRepository interface {
	BeneficiaryExists(ctx context.Context, userID, accountNumber string) (bool, error)
	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	FindBeneficiariesByUserID(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, beneficiaryID, userID string) error
}

// Container bundles the repositories handed to the service layer.
type Container struct {
	Account     AccountRepository
	Ledger      LedgerRepository
	Card        CardRepository
	Beneficiary BeneficiaryRepository
}
