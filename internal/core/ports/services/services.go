package services

import (
	"context"
	"time"

	"github.com/finbase/corebanking/internal/core/domain"
	"github.com/finbase/corebanking/internal/dto"
)

// Cache is the TTL key/value accelerator used for account lists and balance
// reads. It is never authoritative; every mutation invalidates, never updates.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the key
	// was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Remove(ctx context.Context, keys ...string) error
}

// TransactionSvcFacade is the transfer engine: every money movement and the
// transaction read model.
type TransactionSvcFacade interface {
	Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*dto.TransactionResult, error)
	Withdraw(ctx context.Context, userID string, req dto.WithdrawalRequest) (*dto.TransactionResult, error)
	Deposit(ctx context.Context, userID string, req dto.DepositRequest) (*dto.TransactionResult, error)
	PayBill(ctx context.Context, userID string, req dto.BillPaymentRequest) (*dto.TransactionResult, error)
	GetTransactionByID(ctx context.Context, transactionID, userID string) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, userID string, accountID *string, page, pageSize int) (*dto.PaginatedResponse[dto.TransactionResponse], error)
	GetReport(ctx context.Context, userID string, req dto.ReportRequest) (*dto.TransactionReport, error)
}

// AccountSvcFacade is the account lifecycle manager and account read model.
type AccountSvcFacade interface {
	OpenAccount(ctx context.Context, userID string, req dto.OpenAccountRequest) (*domain.Account, error)
	CloseAccount(ctx context.Context, accountID, userID string) error
	GetBalance(ctx context.Context, accountID, userID string) (*dto.AccountBalanceResponse, error)
	GetUserAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error)
	GetAccountDetails(ctx context.Context, accountID, userID string) (*dto.AccountDetailsResponse, error)
	GetStatement(ctx context.Context, accountID, userID string, start, end time.Time, page, pageSize int) (*dto.PaginatedResponse[dto.TransactionResponse], error)
}

// CardSvcFacade tracks card usage against configured limits. Limits are
// reported, not enforced.
type CardSvcFacade interface {
	GetUserCards(ctx context.Context, userID string) ([]dto.CardResponse, error)
	GetCardDetails(ctx context.Context, cardID, userID string) (*dto.CardDetailsResponse, error)
	RequestCard(ctx context.Context, userID string, req dto.AddCardRequest) (*dto.CardRequestResponse, error)
	UpdateCardStatus(ctx context.Context, cardID, userID string, req dto.CardStatusUpdateRequest) error
	CancelCard(ctx context.Context, cardID, userID string) error
	GetCardLimits(ctx context.Context, cardID, userID string) (*dto.CardLimitsResponse, error)
	UpdateCardLimits(ctx context.Context, cardID, userID string, req dto.UpdateCardLimitsRequest) error
}

// BeneficiarySvcFacade manages saved transfer counterparties.
type BeneficiarySvcFacade interface {
	ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	CreateBeneficiary(ctx context.Context, userID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, beneficiaryID, userID string) error
}

// ServiceContainer bundles the service facades handed to the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Card        CardSvcFacade
	Beneficiary BeneficiarySvcFacade
}
