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

// Reference prefixes per money movement kind.
const (
	transferRefPrefix   = "TRF"
	withdrawalRefPrefix = "WDL"
	depositRefPrefix    = "DEP"
	billRefPrefix       = "BILL"
)

// creditRefSuffix distinguishes the credit leg of a transfer; every ledger
// entry reference is unique, including the two legs of one transfer.
const creditRefSuffix = "-CR"

var billCategoryNames = map[string]string{
	"ELECTRICITY": "Electricity",
	"WATER":       "Water",
	"GAS":         "Gas",
	"INTERNET":    "Internet",
	"PHONE":       "Phone",
	"TV":          "TV",
	"INSURANCE":   "Insurance",
	"OTHER":       "Other Bills",
}

// transactionService is the transfer engine: every money movement runs
// through it, and it owns the transaction read model.
type transactionService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	cache       portssvc.Cache
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, cache portssvc.Cache) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		cache:       cache,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// checkSourceAccount runs the debit-side preconditions in their fixed order:
// ownership, account active, sufficient available funds.
func checkSourceAccount(account domain.Account, userID string, amount decimal.Decimal) error {
	if !account.IsOwnedBy(userID) {
		return fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, account.AccountID)
	}
	if account.Status != domain.AccountActive {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, account.AccountID, account.Status)
	}
	if account.AvailableBalance.LessThan(amount) {
		return fmt.Errorf("%w: available balance %s is below %s", apperrors.ErrInsufficientFunds, account.AvailableBalance, amount)
	}
	return nil
}

func resolveReference(requested *string, prefix string) (string, error) {
	if requested != nil && *requested != "" {
		return *requested, nil
	}
	return utils.GenerateReference(prefix)
}

// Transfer atomically debits one of the user's accounts and credits the
// account identified by number. Both ledger entries, both balance updates and
// the audit rows commit together or not at all.
func (s *transactionService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reference, err := resolveReference(req.Reference, transferRefPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	// Preconditions run in a fixed order and the first failure wins: the
	// source side (ownership, active, funds) is validated before the
	// destination is even resolved. This read is non-locking; everything is
	// re-checked on the locked rows inside the posting.
	source, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	if err := checkSourceAccount(*source, userID, req.Amount); err != nil {
		return nil, err
	}

	// The destination id found here is only used to pick lock targets.
	destination, err := s.accountRepo.FindAccountByNumber(ctx, req.ToAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrDestinationNotFound
		}
		return nil, err
	}
	if destination.AccountID == req.FromAccountID {
		return nil, apperrors.ErrSameAccount
	}

	now := time.Now().UTC()
	debitID := uuid.NewString()

	err = s.ledgerRepo.Post(ctx, []string{req.FromAccountID, destination.AccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		src, ok := accounts[req.FromAccountID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		dest, ok := accounts[destination.AccountID]
		if !ok {
			return nil, apperrors.ErrDestinationNotFound
		}

		if err := checkSourceAccount(src, userID, req.Amount); err != nil {
			return nil, err
		}
		if src.Currency != req.Currency {
			return nil, fmt.Errorf("%w: account currency is %s, got %s", apperrors.ErrValidation, src.Currency, req.Currency)
		}
		if dest.Status == domain.AccountClosed {
			return nil, apperrors.ErrDestinationNotFound
		}

		debit := domain.Transaction{
			TransactionID:   debitID,
			AccountID:       &src.AccountID,
			Reference:       reference,
			Type:            domain.Withdraw,
			Amount:          req.Amount.Neg(),
			Currency:        req.Currency,
			BalanceBefore:   src.Balance,
			BalanceAfter:    src.Balance.Sub(req.Amount),
			Description:     req.Description,
			Status:          domain.TransactionCompleted,
			FromAccount:     src.AccountNumber,
			ToAccount:       dest.AccountNumber,
			BeneficiaryName: req.BeneficiaryName,
			TransactionDate: now,
			CreatedAt:       now,
		}
		credit := domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       &dest.AccountID,
			Reference:       reference + creditRefSuffix,
			Type:            domain.Transfer,
			Amount:          req.Amount,
			Currency:        req.Currency,
			BalanceBefore:   dest.Balance,
			BalanceAfter:    dest.Balance.Add(req.Amount),
			Description:     req.Description,
			Status:          domain.TransactionCompleted,
			FromAccount:     src.AccountNumber,
			ToAccount:       dest.AccountNumber,
			TransactionDate: now,
			CreatedAt:       now,
		}

		posting := &domain.Posting{
			Entries: []domain.Transaction{debit, credit},
			BalanceChanges: map[string]domain.BalanceDelta{
				src.AccountID:  {Balance: req.Amount.Neg(), Available: req.Amount.Neg()},
				dest.AccountID: {Balance: req.Amount, Available: req.Amount},
			},
			AuditLogs: []domain.TransactionAuditLog{
				newAuditLog(userID, "Transfer-Debit", reference, now),
				newAuditLog(userID, "Transfer-Credit", reference+creditRefSuffix, now),
			},
		}

		if req.SaveAsBeneficiary {
			name := req.BeneficiaryName
			if name == "" {
				name = dest.AccountNumber
			}
			posting.Beneficiary = &domain.Beneficiary{
				BeneficiaryID:   uuid.NewString(),
				UserID:          userID,
				BeneficiaryName: name,
				AccountNumber:   dest.AccountNumber,
				Nickname:        req.BeneficiaryNickname,
				CreatedAt:       now,
			}
		}

		return posting, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAccountCaches(ctx, userID, req.FromAccountID, destination.AccountID)
	logger.Info("transfer completed", "reference", reference, "from_account_id", req.FromAccountID)

	return &dto.TransactionResult{TransactionID: debitID, Reference: reference}, nil
}

// Withdraw debits one of the user's accounts.
func (s *transactionService) Withdraw(ctx context.Context, userID string, req dto.WithdrawalRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reference, err := resolveReference(req.Reference, withdrawalRefPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	err = s.ledgerRepo.Post(ctx, []string{req.FromAccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		src, ok := accounts[req.FromAccountID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		if err := checkSourceAccount(src, userID, req.Amount); err != nil {
			return nil, err
		}
		if src.Currency != req.Currency {
			return nil, fmt.Errorf("%w: account currency is %s, got %s", apperrors.ErrValidation, src.Currency, req.Currency)
		}

		entry := domain.Transaction{
			TransactionID:   entryID,
			AccountID:       &src.AccountID,
			Reference:       reference,
			Type:            domain.Withdraw,
			Amount:          req.Amount.Neg(),
			Currency:        req.Currency,
			BalanceBefore:   src.Balance,
			BalanceAfter:    src.Balance.Sub(req.Amount),
			Description:     req.Description,
			Status:          domain.TransactionCompleted,
			FromAccount:     src.AccountNumber,
			TransactionDate: now,
			CreatedAt:       now,
		}

		return &domain.Posting{
			Entries: []domain.Transaction{entry},
			BalanceChanges: map[string]domain.BalanceDelta{
				src.AccountID: {Balance: req.Amount.Neg(), Available: req.Amount.Neg()},
			},
			AuditLogs: []domain.TransactionAuditLog{
				newAuditLog(userID, "Withdrawal", reference, now),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAccountCaches(ctx, userID, req.FromAccountID)
	logger.Info("withdrawal completed", "reference", reference, "from_account_id", req.FromAccountID)

	return &dto.TransactionResult{TransactionID: entryID, Reference: reference}, nil
}

// Deposit credits one of the user's accounts.
func (s *transactionService) Deposit(ctx context.Context, userID string, req dto.DepositRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reference, err := resolveReference(req.Reference, depositRefPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	err = s.ledgerRepo.Post(ctx, []string{req.ToAccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		dest, ok := accounts[req.ToAccountID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		if !dest.IsOwnedBy(userID) {
			return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, dest.AccountID)
		}
		if dest.Status != domain.AccountActive {
			return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, dest.AccountID, dest.Status)
		}
		if dest.Currency != req.Currency {
			return nil, fmt.Errorf("%w: account currency is %s, got %s", apperrors.ErrValidation, dest.Currency, req.Currency)
		}

		entry := domain.Transaction{
			TransactionID:   entryID,
			AccountID:       &dest.AccountID,
			Reference:       reference,
			Type:            domain.Deposit,
			Amount:          req.Amount,
			Currency:        req.Currency,
			BalanceBefore:   dest.Balance,
			BalanceAfter:    dest.Balance.Add(req.Amount),
			Description:     req.Description,
			Status:          domain.TransactionCompleted,
			FromAccount:     req.Source,
			ToAccount:       dest.AccountNumber,
			TransactionDate: now,
			CreatedAt:       now,
		}

		return &domain.Posting{
			Entries: []domain.Transaction{entry},
			BalanceChanges: map[string]domain.BalanceDelta{
				dest.AccountID: {Balance: req.Amount, Available: req.Amount},
			},
			AuditLogs: []domain.TransactionAuditLog{
				newAuditLog(userID, "Deposit", reference, now),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAccountCaches(ctx, userID, req.ToAccountID)
	logger.Info("deposit completed", "reference", reference, "to_account_id", req.ToAccountID)

	return &dto.TransactionResult{TransactionID: entryID, Reference: reference}, nil
}

// PayBill debits one of the user's accounts towards a biller. The entry is
// tagged with a system expense category derived from the bill type.
func (s *transactionService) PayBill(ctx context.Context, userID string, req dto.BillPaymentRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reference, err := utils.GenerateReference(billRefPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	categoryName, ok := billCategoryNames[req.BillType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown bill type %s", apperrors.ErrValidation, req.BillType)
	}
	category := domain.TransactionCategory{
		CategoryID: uuid.NewString(),
		Name:       categoryName,
		Type:       domain.CategoryExpense,
		IsSystem:   true,
	}

	description := fmt.Sprintf("Bill payment to %s", req.BillerName)
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	err = s.ledgerRepo.Post(ctx, []string{req.FromAccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		src, ok := accounts[req.FromAccountID]
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		if err := checkSourceAccount(src, userID, req.Amount); err != nil {
			return nil, err
		}
		if src.Currency != req.Currency {
			return nil, fmt.Errorf("%w: account currency is %s, got %s", apperrors.ErrValidation, src.Currency, req.Currency)
		}

		entry := domain.Transaction{
			TransactionID:   entryID,
			AccountID:       &src.AccountID,
			Reference:       reference,
			Type:            domain.BillPayment,
			Amount:          req.Amount.Neg(),
			Currency:        req.Currency,
			BalanceBefore:   src.Balance,
			BalanceAfter:    src.Balance.Sub(req.Amount),
			Description:     description,
			CategoryID:      &category.CategoryID,
			Status:          domain.TransactionCompleted,
			FromAccount:     src.AccountNumber,
			ToAccount:       req.AccountReference,
			MerchantName:    req.BillerName,
			TransactionDate: now,
			CreatedAt:       now,
		}

		return &domain.Posting{
			Entries: []domain.Transaction{entry},
			BalanceChanges: map[string]domain.BalanceDelta{
				src.AccountID: {Balance: req.Amount.Neg(), Available: req.Amount.Neg()},
			},
			AuditLogs: []domain.TransactionAuditLog{
				newAuditLog(userID, "BillPayment", reference, now),
			},
			Category: &category,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAccountCaches(ctx, userID, req.FromAccountID)
	logger.Info("bill payment completed", "reference", reference, "biller", req.BillerName)

	return &dto.TransactionResult{TransactionID: entryID, Reference: reference}, nil
}

// GetTransactionByID retrieves one of the user's ledger entries.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID, userID string) (*dto.TransactionResponse, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTransactionResponse(*txn)
	return &resp, nil
}

// ListTransactions retrieves a page of the user's ledger entries, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, accountID *string, page, pageSize int) (*dto.PaginatedResponse[dto.TransactionResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	transactions, total, err := s.ledgerRepo.ListTransactions(ctx, userID, accountID, page, pageSize)
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

// GetReport builds the filtered transaction report: entries grouped by day
// bucket, an aggregate summary, and the trailing six-month chart.
func (s *transactionService) GetReport(ctx context.Context, userID string, req dto.ReportRequest) (*dto.TransactionReport, error) {
	transactions, err := s.ledgerRepo.FilterTransactions(ctx, userID, req.Filter())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &dto.TransactionReport{
		GroupOrder:          []string{},
		GroupedTransactions: map[string][]dto.TransactionResponse{},
		Summary:             summarize(transactions),
	}

	// Entries arrive newest first, so groups appear in the same order.
	for _, txn := range transactions {
		resp := dto.ToTransactionResponse(txn)
		if _, seen := report.GroupedTransactions[resp.DateGroup]; !seen {
			report.GroupOrder = append(report.GroupOrder, resp.DateGroup)
		}
		report.GroupedTransactions[resp.DateGroup] = append(report.GroupedTransactions[resp.DateGroup], resp)
	}

	chart, err := s.buildChart(ctx, userID, req, now)
	if err != nil {
		return nil, err
	}
	report.Chart = chart

	return report, nil
}

func summarize(transactions []domain.Transaction) domain.TransactionSummary {
	summary := domain.TransactionSummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetAmount:     decimal.Zero,
		TotalCount:    len(transactions),
	}
	for _, txn := range transactions {
		switch txn.Status {
		case domain.TransactionCompleted:
			summary.SuccessfulCount++
		case domain.TransactionFailed:
			summary.FailedCount++
		}
		if txn.Status != domain.TransactionCompleted {
			continue
		}
		if txn.Amount.IsPositive() {
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(txn.Amount.Abs())
		}
	}
	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// buildChart aggregates completed entries per month over the trailing six
// months, scoped to the same account/card as the report request.
func (s *transactionService) buildChart(ctx context.Context, userID string, req dto.ReportRequest, now time.Time) ([]domain.MonthlyChartPoint, error) {
	chartStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	completed := domain.TransactionCompleted

	chartEntries, err := s.ledgerRepo.FilterTransactions(ctx, userID, domain.TransactionFilter{
		AccountID: req.AccountID,
		CardID:    req.CardID,
		StartDate: &chartStart,
		EndDate:   &now,
		Status:    &completed,
	})
	if err != nil {
		return nil, err
	}

	type monthTotals struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}
	totals := map[string]*monthTotals{}
	for _, txn := range chartEntries {
		key := txn.TransactionDate.UTC().Format("2006-01")
		t, ok := totals[key]
		if !ok {
			t = &monthTotals{income: decimal.Zero, expenses: decimal.Zero}
			totals[key] = t
		}
		if txn.Amount.IsPositive() {
			t.income = t.income.Add(txn.Amount)
		} else {
			t.expenses = t.expenses.Add(txn.Amount.Abs())
		}
	}

	chart := make([]domain.MonthlyChartPoint, 0, 6)
	for i := 0; i < 6; i++ {
		month := chartStart.AddDate(0, i, 0)
		key := month.Format("2006-01")
		income, expenses := decimal.Zero, decimal.Zero
		if t, ok := totals[key]; ok {
			income, expenses = t.income, t.expenses
		}
		net := income.Sub(expenses)
		chart = append(chart, domain.MonthlyChartPoint{
			Month:              month.Format("Jan"),
			Income:             income,
			Expenses:           expenses,
			Net:                net,
			NormalizedIncome:   utils.NormalizeChartValue(income),
			NormalizedExpenses: utils.NormalizeChartValue(expenses),
			NormalizedNet:      utils.NormalizeChartValue(net),
		})
	}
	return chart, nil
}

func newAuditLog(userID, action, reference string, at time.Time) domain.TransactionAuditLog {
	return domain.TransactionAuditLog{
		AuditLogID: uuid.NewString(),
		UserID:     userID,
		Action:     action,
		Reference:  reference,
		CreatedAt:  at,
	}
}

// invalidateAccountCaches drops the cached account list and balances touched
// by a posting. Cache errors are logged and swallowed; the ledger is the
// source of truth.
func (s *transactionService) invalidateAccountCaches(ctx context.Context, userID string, accountIDs ...string) {
	keys := []string{userAccountsCacheKey(userID)}
	for _, id := range accountIDs {
		keys = append(keys, accountBalanceCacheKey(id))
	}
	if err := s.cache.Remove(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate account caches", "error", err)
	}
}

func userAccountsCacheKey(userID string) string {
	return "user_accounts_" + userID
}

func accountBalanceCacheKey(accountID string) string {
	return "account_balance_" + accountID
}
