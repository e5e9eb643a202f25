package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/core/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CloseAccount(ctx context.Context, accountID string, closedAt time.Time) error {
	args := m.Called(ctx, accountID, closedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) HasActiveCards(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock LedgerRepository ---
// Post runs the real builder against the accounts configured on the mock and
// captures the resulting posting, so tests can assert on what would have been
// persisted.
type MockLedgerRepository struct {
	mock.Mock
	accounts    map[string]domain.Account
	lastPosting *domain.Posting
	postCalls   int
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Post(ctx context.Context, accountIDs []string, build portsrepo.PostingBuilder) error {
	m.postCalls++
	args := m.Called(ctx, accountIDs)
	if err := args.Error(0); err != nil {
		return err
	}
	posting, err := build(m.accounts)
	if err != nil {
		return err
	}
	m.lastPosting = posting
	return nil
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, userID string, accountID *string, page, pageSize int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, accountID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockLedgerRepository) FilterTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) Statement(ctx context.Context, accountID string, start, end time.Time, skip, take int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, accountID, start, end, skip, take)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockLedgerRepository) PendingAmount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) HasPendingTransactions(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) AccountActivity(ctx context.Context, accountID string) (*portsrepo.AccountActivity, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.AccountActivity), args.Error(1)
}

// --- Mock Cache ---
type MockCache struct {
	mock.Mock
}

var _ portssvc.Cache = (*MockCache)(nil)

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Remove(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockCache       *MockCache
	service         portssvc.TransactionSvcFacade
	userID          string
	source          domain.Account
	destination     domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCache = new(MockCache)
	suite.service = services.NewTransactionService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockCache)

	suite.userID = uuid.NewString()
	suite.source = domain.Account{
		AccountID:        uuid.NewString(),
		UserID:           suite.userID,
		AccountNumber:    "ACC111111111",
		AccountType:      domain.Checking,
		Balance:          decimal.NewFromInt(100),
		AvailableBalance: decimal.NewFromInt(100),
		Currency:         "USD",
		Status:           domain.AccountActive,
	}
	suite.destination = domain.Account{
		AccountID:        uuid.NewString(),
		UserID:           uuid.NewString(),
		AccountNumber:    "ACC222222222",
		AccountType:      domain.Savings,
		Balance:          decimal.NewFromInt(50),
		AvailableBalance: decimal.NewFromInt(50),
		Currency:         "USD",
		Status:           domain.AccountActive,
	}
	suite.mockLedgerRepo.accounts = map[string]domain.Account{
		suite.source.AccountID:      suite.source,
		suite.destination.AccountID: suite.destination,
	}
	suite.mockCache.On("Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCache.On("Remove", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCache.On("Remove", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *TransactionServiceTestSuite) transferRequest(amount int64) dto.TransferRequest {
	return dto.TransferRequest{
		FromAccountID:   suite.source.AccountID,
		ToAccountNumber: suite.destination.AccountNumber,
		Amount:          decimal.NewFromInt(amount),
		Currency:        "USD",
		Description:     "rent",
	}
}

func (suite *TransactionServiceTestSuite) TestTransferSuccess() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.userID, suite.transferRequest(40))

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(strings.HasPrefix(result.Reference, "TRF"))

	posting := suite.mockLedgerRepo.lastPosting
	suite.Require().NotNil(posting)
	suite.Require().Len(posting.Entries, 2)

	debit := posting.Entries[0]
	suite.Equal(domain.Withdraw, debit.Type)
	suite.True(debit.Amount.Equal(decimal.NewFromInt(-40)))
	suite.True(debit.BalanceBefore.Equal(decimal.NewFromInt(100)))
	suite.True(debit.BalanceAfter.Equal(decimal.NewFromInt(60)))
	suite.Equal(domain.TransactionCompleted, debit.Status)

	credit := posting.Entries[1]
	suite.Equal(domain.Transfer, credit.Type)
	suite.True(credit.Amount.Equal(decimal.NewFromInt(40)))
	suite.True(credit.BalanceBefore.Equal(decimal.NewFromInt(50)))
	suite.True(credit.BalanceAfter.Equal(decimal.NewFromInt(90)))
	suite.NotEqual(debit.Reference, credit.Reference)

	suite.Require().Len(posting.AuditLogs, 2)
	suite.Equal("Transfer-Debit", posting.AuditLogs[0].Action)
	suite.Equal("Transfer-Credit", posting.AuditLogs[1].Action)

	srcDelta := posting.BalanceChanges[suite.source.AccountID]
	suite.True(srcDelta.Balance.Equal(decimal.NewFromInt(-40)))
	destDelta := posting.BalanceChanges[suite.destination.AccountID]
	suite.True(destDelta.Balance.Equal(decimal.NewFromInt(40)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransferExactBalanceSucceeds() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.userID, suite.transferRequest(100))

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(suite.mockLedgerRepo.lastPosting.Entries[0].BalanceAfter.IsZero())
}

func (suite *TransactionServiceTestSuite) TestTransferInsufficientFunds() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()

	result, err := suite.service.Transfer(ctx, suite.userID, suite.transferRequest(101))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

// Funds are re-checked on the rows locked inside the posting, so a balance
// drained between pre-validation and the lock still fails the transfer.
func (suite *TransactionServiceTestSuite) TestTransferRechecksFundsOnLockedRows() {
	ctx := context.Background()
	drained := suite.source
	drained.Balance = decimal.NewFromInt(5)
	drained.AvailableBalance = decimal.NewFromInt(5)
	suite.mockLedgerRepo.accounts[suite.source.AccountID] = drained

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.userID, suite.transferRequest(40))

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)
	suite.Nil(suite.mockLedgerRepo.lastPosting)
}

func (suite *TransactionServiceTestSuite) TestTransferDestinationNotFound() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "ACC999999999").Return(nil, apperrors.ErrNotFound).Once()

	req := suite.transferRequest(10)
	req.ToAccountNumber = "ACC999999999"
	result, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrDestinationNotFound)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
}

func (suite *TransactionServiceTestSuite) TestTransferSameAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.source.AccountNumber).Return(&suite.source, nil).Once()

	req := suite.transferRequest(10)
	req.ToAccountNumber = suite.source.AccountNumber
	result, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrSameAccount)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
}

func (suite *TransactionServiceTestSuite) TestTransferUnauthorized() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()

	result, err := suite.service.Transfer(ctx, uuid.NewString(), suite.transferRequest(10))

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
}

func (suite *TransactionServiceTestSuite) TestTransferInactiveAccount() {
	ctx := context.Background()
	inactive := suite.source
	inactive.Status = domain.AccountSuspended

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&inactive, nil).Once()

	result, err := suite.service.Transfer(ctx, suite.userID, suite.transferRequest(10))

	suite.Require().ErrorIs(err, apperrors.ErrAccountInactive)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
}

// When a transfer trips more than one precondition, the source-side checks
// decide first. Short of funds and aimed at the sender's own account, it
// fails on funds before the destination is ever looked at.
func (suite *TransactionServiceTestSuite) TestTransferInsufficientFundsWinsOverSameAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()

	req := suite.transferRequest(101)
	req.ToAccountNumber = suite.source.AccountNumber
	result, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

// A caller who does not own the source account is rejected before the
// destination lookup, even when that lookup would also fail.
func (suite *TransactionServiceTestSuite) TestTransferUnauthorizedWinsOverMissingDestination() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()

	req := suite.transferRequest(10)
	req.ToAccountNumber = "ACC999999999"
	result, err := suite.service.Transfer(ctx, uuid.NewString(), req)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
	suite.Equal(0, suite.mockLedgerRepo.postCalls)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransferDuplicateReference() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(apperrors.ErrDuplicateReference).Once()

	ref := "CLIENTREF123"
	req := suite.transferRequest(10)
	req.Reference = &ref
	result, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicateReference)
	suite.Nil(result)
}

func (suite *TransactionServiceTestSuite) TestTransferSavesBeneficiary() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(nil).Once()

	req := suite.transferRequest(10)
	req.SaveAsBeneficiary = true
	req.BeneficiaryName = "Alice"
	req.BeneficiaryNickname = "ali"
	_, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().NoError(err)
	beneficiary := suite.mockLedgerRepo.lastPosting.Beneficiary
	suite.Require().NotNil(beneficiary)
	suite.Equal("Alice", beneficiary.BeneficiaryName)
	suite.Equal(suite.destination.AccountNumber, beneficiary.AccountNumber)
	suite.Equal(suite.userID, beneficiary.UserID)
}

func (suite *TransactionServiceTestSuite) TestTransferCurrencyMismatch() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.source.AccountID).Return(&suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.destination.AccountNumber).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("Post", ctx, mock.Anything).Return(nil).Once()

	req := suite.transferRequest(10)
	req.Currency = "EUR"
	_, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestWithdrawSuccess() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("Post", ctx, []string{suite.source.AccountID}).Return(nil).Once()

	result, err := suite.service.Withdraw(ctx, suite.userID, dto.WithdrawalRequest{
		FromAccountID: suite.source.AccountID,
		Amount:        decimal.NewFromInt(25),
		Currency:      "USD",
	})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(result.Reference, "WDL"))

	posting := suite.mockLedgerRepo.lastPosting
	suite.Require().Len(posting.Entries, 1)
	suite.Equal(domain.Withdraw, posting.Entries[0].Type)
	suite.True(posting.Entries[0].Amount.Equal(decimal.NewFromInt(-25)))
	suite.True(posting.Entries[0].BalanceAfter.Equal(decimal.NewFromInt(75)))
	suite.Require().Len(posting.AuditLogs, 1)
	suite.Equal("Withdrawal", posting.AuditLogs[0].Action)
}

func (suite *TransactionServiceTestSuite) TestDepositSuccess() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("Post", ctx, []string{suite.source.AccountID}).Return(nil).Once()

	result, err := suite.service.Deposit(ctx, suite.userID, dto.DepositRequest{
		ToAccountID: suite.source.AccountID,
		Amount:      decimal.NewFromInt(30),
		Currency:    "USD",
		Source:      "Salary",
	})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(result.Reference, "DEP"))

	posting := suite.mockLedgerRepo.lastPosting
	suite.Require().Len(posting.Entries, 1)
	suite.Equal(domain.Deposit, posting.Entries[0].Type)
	suite.True(posting.Entries[0].Amount.Equal(decimal.NewFromInt(30)))
	suite.True(posting.Entries[0].BalanceAfter.Equal(decimal.NewFromInt(130)))
}

func (suite *TransactionServiceTestSuite) TestDepositToClosedAccountRejected() {
	ctx := context.Background()
	closed := suite.source
	closed.Status = domain.AccountClosed
	suite.mockLedgerRepo.accounts[suite.source.AccountID] = closed
	suite.mockLedgerRepo.On("Post", ctx, []string{suite.source.AccountID}).Return(nil).Once()

	_, err := suite.service.Deposit(ctx, suite.userID, dto.DepositRequest{
		ToAccountID: suite.source.AccountID,
		Amount:      decimal.NewFromInt(30),
		Currency:    "USD",
	})

	suite.Require().ErrorIs(err, apperrors.ErrAccountInactive)
}

func (suite *TransactionServiceTestSuite) TestPayBillSuccess() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("Post", ctx, []string{suite.source.AccountID}).Return(nil).Once()

	result, err := suite.service.PayBill(ctx, suite.userID, dto.BillPaymentRequest{
		FromAccountID: suite.source.AccountID,
		Amount:        decimal.NewFromInt(60),
		Currency:      "USD",
		BillerName:    "City Power",
		BillType:      "ELECTRICITY",
	})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(result.Reference, "BILL"))

	posting := suite.mockLedgerRepo.lastPosting
	suite.Require().Len(posting.Entries, 1)
	entry := posting.Entries[0]
	suite.Equal(domain.BillPayment, entry.Type)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(-60)))
	suite.Equal("City Power", entry.MerchantName)

	suite.Require().NotNil(posting.Category)
	suite.Equal("Electricity", posting.Category.Name)
	suite.Equal(domain.CategoryExpense, posting.Category.Type)
	suite.True(posting.Category.IsSystem)
	suite.Require().NotNil(entry.CategoryID)
	suite.Equal(posting.Category.CategoryID, *entry.CategoryID)
}

func (suite *TransactionServiceTestSuite) TestGetReportGroupsAndSummarizes() {
	ctx := context.Background()
	now := time.Now().UTC()

	entries := []domain.Transaction{
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(200), Status: domain.TransactionCompleted, TransactionDate: now},
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(-80), Status: domain.TransactionCompleted, TransactionDate: now},
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(-40), Status: domain.TransactionFailed, TransactionDate: now.AddDate(0, 0, -1)},
	}
	suite.mockLedgerRepo.On("FilterTransactions", ctx, suite.userID, mock.Anything).Return(entries, nil).Twice()

	report, err := suite.service.GetReport(ctx, suite.userID, dto.ReportRequest{})

	suite.Require().NoError(err)
	suite.Require().Len(report.GroupOrder, 2)
	suite.Equal("Today", report.GroupOrder[0])
	suite.Equal("Yesterday", report.GroupOrder[1])
	suite.Len(report.GroupedTransactions["Today"], 2)
	suite.Len(report.GroupedTransactions["Yesterday"], 1)

	suite.True(report.Summary.TotalIncome.Equal(decimal.NewFromInt(200)))
	suite.True(report.Summary.TotalExpenses.Equal(decimal.NewFromInt(80)))
	suite.True(report.Summary.NetAmount.Equal(decimal.NewFromInt(120)))
	suite.Equal(3, report.Summary.TotalCount)
	suite.Equal(2, report.Summary.SuccessfulCount)
	suite.Equal(1, report.Summary.FailedCount)

	suite.Len(report.Chart, 6)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
