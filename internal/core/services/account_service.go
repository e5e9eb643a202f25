package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/finbase/corebanking/internal/middleware"
	"github.com/finbase/corebanking/internal/utils"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "USD"

// accountNumberAttempts bounds the regenerate-on-collision loop when opening
// an account. The unique constraint on account_number is the real guard.
const accountNumberAttempts = 5

// accountService is the account lifecycle manager and account read model.
type accountService struct {
	accountRepo     portsrepo.AccountRepository
	ledgerRepo      portsrepo.LedgerRepository
	cardRepo        portsrepo.CardRepository
	cache           portssvc.Cache
	accountCacheTTL time.Duration
	balanceCacheTTL time.Duration
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, cardRepo portsrepo.CardRepository, cache portssvc.Cache, accountCacheTTL, balanceCacheTTL time.Duration) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
		cardRepo:        cardRepo,
		cache:           cache,
		accountCacheTTL: accountCacheTTL,
		balanceCacheTTL: balanceCacheTTL,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a new active account with a zero balance. The account
// number is regenerated on collision with an existing one.
func (s *accountService) OpenAccount(ctx context.Context, userID string, req dto.OpenAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	if req.AccountType == domain.FixedDeposit {
		if req.InterestRate == nil || req.TermMonths == nil {
			return nil, fmt.Errorf("%w: fixed deposit accounts require interestRate and termMonths", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		UserID:           userID,
		AccountType:      req.AccountType,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		Currency:         currency,
		Branch:           req.Branch,
		Status:           domain.AccountActive,
		InterestRate:     req.InterestRate,
		TermMonths:       req.TermMonths,
		MaturityDate:     req.MaturityDate,
		OpenedAt:         now,
	}

	var err error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber, err = utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Warn("account number collision, regenerating", "attempt", attempt+1)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not allocate a unique account number", apperrors.ErrOperationFailed)
	}

	s.invalidateUserAccounts(ctx, userID)
	logger.Info("account opened", "account_id", account.AccountID, "account_type", account.AccountType)

	return &account, nil
}

// CloseAccount closes one of the user's accounts. The store enforces the
// close guards atomically; this layer only establishes ownership.
func (s *accountService) CloseAccount(ctx context.Context, accountID, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsOwnedBy(userID) {
		return fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, accountID)
	}

	if err := s.accountRepo.CloseAccount(ctx, accountID, time.Now().UTC()); err != nil {
		return err
	}

	s.invalidateUserAccounts(ctx, userID)
	if err := s.cache.Remove(ctx, accountBalanceCacheKey(accountID)); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate balance cache", "error", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("account closed", "account_id", accountID)

	return nil
}

// GetBalance returns the account's balance view. Available balance is derived
// as balance minus the sum of pending entries. The result is cached briefly.
func (s *accountService) GetBalance(ctx context.Context, accountID, userID string) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, accountID)
	}

	cacheKey := accountBalanceCacheKey(accountID)
	var cached dto.AccountBalanceResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("balance cache read failed", "error", err)
	} else if hit {
		return &cached, nil
	}

	pending, err := s.ledgerRepo.PendingAmount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := dto.AccountBalanceResponse{
		Balance:          account.Balance,
		AvailableBalance: account.Balance.Sub(pending),
		PendingAmount:    pending,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, s.balanceCacheTTL); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("balance cache write failed", "error", err)
	}

	return &resp, nil
}

// GetUserAccounts returns the user's accounts, masked, newest first. The
// result is cached.
func (s *accountService) GetUserAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	cacheKey := userAccountsCacheKey(userID)
	var cached []dto.AccountResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("accounts cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i, acc := range accounts {
		responses[i] = dto.ToAccountResponse(acc)
	}

	if err := s.cache.Set(ctx, cacheKey, responses, s.accountCacheTTL); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("accounts cache write failed", "error", err)
	}

	return responses, nil
}

// GetAccountDetails returns the account detail view with ledger-derived
// aggregates and the linked cards.
func (s *accountService) GetAccountDetails(ctx context.Context, accountID, userID string) (*dto.AccountDetailsResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, accountID)
	}

	activity, err := s.ledgerRepo.AccountActivity(ctx, accountID)
	if err != nil {
		return nil, err
	}
	averageBalance := activity.AverageBalance
	if activity.CompletedCount == 0 {
		averageBalance = account.Balance
	}

	cards, err := s.cardRepo.FindCardsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cardResponses := []dto.CardResponse{}
	for _, card := range cards {
		if card.AccountID != accountID {
			continue
		}
		cardResponses = append(cardResponses, dto.ToCardResponse(card, &account.Balance))
	}

	return &dto.AccountDetailsResponse{
		AccountID:           account.AccountID,
		MaskedAccountNumber: utils.MaskAccountNumber(account.AccountNumber),
		Balance:             account.Balance,
		AvailableBalance:    account.AvailableBalance,
		Currency:            account.Currency,
		Branch:              account.Branch,
		Status:              account.Status,
		OpenedAt:            account.OpenedAt,
		ClosedAt:            account.ClosedAt,
		TotalDeposits:       activity.TotalDeposits,
		TotalWithdrawals:    activity.TotalWithdrawals,
		AverageBalance:      averageBalance,
		Cards:               cardResponses,
	}, nil
}

// GetStatement returns a page of the account's ledger entries between start
// and end (end exclusive), newest first.
func (s *accountService) GetStatement(ctx context.Context, accountID, userID string, start, end time.Time, page, pageSize int) (*dto.PaginatedResponse[dto.TransactionResponse], error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, accountID)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: statement end must be after start", apperrors.ErrValidation)
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	transactions, total, err := s.ledgerRepo.Statement(ctx, accountID, start, end, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedResponse[dto.TransactionResponse]{
		Items:      dto.ToTransactionResponses(transactions),
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
	}, nil
}

func (s *accountService) invalidateUserAccounts(ctx context.Context, userID string) {
	if err := s.cache.Remove(ctx, userAccountsCacheKey(userID)); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate accounts cache", "error", err)
	}
}
