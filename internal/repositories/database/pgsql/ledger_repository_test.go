package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	"github.com/finbase/corebanking/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx stands in for a pgx transaction so posting faults can be injected
// at exact points. Locked account rows come from lockedAccounts; the first
// SendBatch (the ledger entry insert) fails with entryBatchErr when set.
type fakeTx struct {
	lockedAccounts []models.Account
	entryBatchErr  error

	batchCalls int
	committed  bool
	rolledBack bool
}

var _ pgx.Tx = (*fakeTx)(nil)

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

func (f *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batchCalls++
	if f.batchCalls == 1 {
		return &fakeBatchResults{err: f.entryBatchErr}
	}
	return &fakeBatchResults{}
}

func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &fakeAccountRows{rows: f.lockedAccounts}, nil
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &fakeRow{}
}

func (f *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}

func (f *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}

func (f *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (f *fakeTx) Conn() *pgx.Conn                { return nil }

type fakeBatchResults struct {
	err error
}

var _ pgx.BatchResults = (*fakeBatchResults)(nil)

func (f *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), f.err
}
func (f *fakeBatchResults) Query() (pgx.Rows, error) { return nil, f.err }
func (f *fakeBatchResults) QueryRow() pgx.Row        { return &fakeRow{} }
func (f *fakeBatchResults) Close() error             { return f.err }

type fakeRow struct{}

func (f *fakeRow) Scan(dest ...any) error { return errors.New("no rows") }

type fakeAccountRows struct {
	rows []models.Account
	idx  int
}

var _ pgx.Rows = (*fakeAccountRows)(nil)

func (f *fakeAccountRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeAccountRows) Scan(dest ...any) error {
	m := f.rows[f.idx-1]
	*dest[0].(*string) = m.AccountID
	*dest[1].(*string) = m.UserID
	*dest[2].(*string) = m.AccountNumber
	*dest[3].(*string) = m.AccountType
	*dest[4].(*decimal.Decimal) = m.Balance
	*dest[5].(*decimal.Decimal) = m.AvailableBalance
	*dest[6].(*string) = m.Currency
	*dest[7].(*string) = m.Branch
	*dest[8].(*string) = m.Status
	*dest[9].(**decimal.Decimal) = m.InterestRate
	*dest[10].(**int) = m.TermMonths
	*dest[11].(**time.Time) = m.MaturityDate
	*dest[12].(*time.Time) = m.OpenedAt
	*dest[13].(**time.Time) = m.ClosedAt
	return nil
}

func (f *fakeAccountRows) Close()                                       {}
func (f *fakeAccountRows) Err() error                                   { return nil }
func (f *fakeAccountRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeAccountRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeAccountRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeAccountRows) RawValues() [][]byte                          { return nil }
func (f *fakeAccountRows) Conn() *pgx.Conn                              { return nil }

type fakeDBConn struct {
	tx *fakeTx
}

var _ DBConn = (*fakeDBConn)(nil)

func (f *fakeDBConn) Begin(ctx context.Context) (pgx.Tx, error) { return f.tx, nil }

func (f *fakeDBConn) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not supported outside a transaction")
}

func (f *fakeDBConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported outside a transaction")
}

func (f *fakeDBConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &fakeRow{}
}

func newLedgerRepoWithTx(tx *fakeTx) *PgxLedgerRepository {
	conn := &fakeDBConn{tx: tx}
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: conn},
		accountRepo:    &PgxAccountRepository{BaseRepository{Pool: conn}},
		maxAttempts:    1,
	}
}

func modelAccount(userID string, balance int64) models.Account {
	now := time.Now().UTC()
	return models.Account{
		AccountID:        uuid.NewString(),
		UserID:           userID,
		AccountNumber:    "ACC" + uuid.NewString()[:9],
		AccountType:      string(domain.Checking),
		Balance:          decimal.NewFromInt(balance),
		AvailableBalance: decimal.NewFromInt(balance),
		Currency:         "USD",
		Branch:           "Main",
		Status:           string(domain.AccountActive),
		OpenedAt:         now,
	}
}

func transferPosting(src, dst models.Account, amount decimal.Decimal) *domain.Posting {
	now := time.Now().UTC()
	ref := "TRF" + now.Format("20060102150405") + "0001"
	return &domain.Posting{
		Entries: []domain.Transaction{
			{
				TransactionID:   uuid.NewString(),
				AccountID:       &src.AccountID,
				Reference:       ref,
				Type:            domain.Withdraw,
				Amount:          amount.Neg(),
				Currency:        "USD",
				BalanceBefore:   src.Balance,
				BalanceAfter:    src.Balance.Sub(amount),
				Status:          domain.TransactionCompleted,
				TransactionDate: now,
				CreatedAt:       now,
			},
			{
				TransactionID:   uuid.NewString(),
				AccountID:       &dst.AccountID,
				Reference:       ref + "-CR",
				Type:            domain.Transfer,
				Amount:          amount,
				Currency:        "USD",
				BalanceBefore:   dst.Balance,
				BalanceAfter:    dst.Balance.Add(amount),
				Status:          domain.TransactionCompleted,
				TransactionDate: now,
				CreatedAt:       now,
			},
		},
		BalanceChanges: map[string]domain.BalanceDelta{
			src.AccountID: {Balance: amount.Neg(), Available: amount.Neg()},
			dst.AccountID: {Balance: amount, Available: amount},
		},
		AuditLogs: []domain.TransactionAuditLog{
			{AuditLogID: uuid.NewString(), UserID: src.UserID, Action: "Transfer-Debit", Reference: ref, CreatedAt: now},
			{AuditLogID: uuid.NewString(), UserID: src.UserID, Action: "Transfer-Credit", Reference: ref + "-CR", CreatedAt: now},
		},
	}
}

// A fault between the ledger entry writes and the balance updates must abort
// the whole posting: the transaction rolls back, no balance update batch is
// ever sent, and nothing commits.
func TestPostRollsBackWhenEntryInsertFails(t *testing.T) {
	src := modelAccount(uuid.NewString(), 100)
	dst := modelAccount(uuid.NewString(), 50)
	tx := &fakeTx{
		lockedAccounts: []models.Account{src, dst},
		entryBatchErr:  errors.New("write failed"),
	}
	repo := newLedgerRepoWithTx(tx)

	builderRan := false
	err := repo.Post(context.Background(), []string{src.AccountID, dst.AccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		builderRan = true
		require.Len(t, accounts, 2)
		return transferPosting(src, dst, decimal.NewFromInt(40)), nil
	})

	require.Error(t, err)
	assert.True(t, builderRan)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Equal(t, 1, tx.batchCalls, "balance update batch must never be sent after the entry insert fails")
}

func TestPostCommitsWholePosting(t *testing.T) {
	src := modelAccount(uuid.NewString(), 100)
	dst := modelAccount(uuid.NewString(), 50)
	tx := &fakeTx{lockedAccounts: []models.Account{src, dst}}
	repo := newLedgerRepoWithTx(tx)

	err := repo.Post(context.Background(), []string{src.AccountID, dst.AccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		return transferPosting(src, dst, decimal.NewFromInt(40)), nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	// entries, balance updates, audit rows
	assert.Equal(t, 3, tx.batchCalls)
}

func TestPostMapsReferenceConflict(t *testing.T) {
	src := modelAccount(uuid.NewString(), 100)
	dst := modelAccount(uuid.NewString(), 50)
	tx := &fakeTx{
		lockedAccounts: []models.Account{src, dst},
		entryBatchErr:  &pgconn.PgError{Code: "23505", ConstraintName: "transactions_reference_key"},
	}
	repo := newLedgerRepoWithTx(tx)

	err := repo.Post(context.Background(), []string{src.AccountID, dst.AccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		return transferPosting(src, dst, decimal.NewFromInt(40)), nil
	})

	require.ErrorIs(t, err, apperrors.ErrDuplicateReference)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestPostBuilderErrorAbortsBeforeAnyWrite(t *testing.T) {
	src := modelAccount(uuid.NewString(), 100)
	dst := modelAccount(uuid.NewString(), 50)
	tx := &fakeTx{lockedAccounts: []models.Account{src, dst}}
	repo := newLedgerRepoWithTx(tx)

	err := repo.Post(context.Background(), []string{src.AccountID, dst.AccountID}, func(accounts map[string]domain.Account) (*domain.Posting, error) {
		return nil, apperrors.ErrInsufficientFunds
	})

	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Equal(t, 0, tx.batchCalls)
}
