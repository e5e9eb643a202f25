package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	"github.com/finbase/corebanking/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
	maxAttempts int
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository, maxAttempts int) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		maxAttempts:    maxAttempts,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// Helper to convert domain.Transaction to models.Transaction for DB storage
func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		CardID:          d.CardID,
		Reference:       d.Reference,
		Type:            string(d.Type),
		Amount:          d.Amount,
		Currency:        d.Currency,
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
		Description:     nullableString(d.Description),
		CategoryID:      d.CategoryID,
		Status:          string(d.Status),
		FromAccount:     nullableString(d.FromAccount),
		ToAccount:       nullableString(d.ToAccount),
		BeneficiaryName: nullableString(d.BeneficiaryName),
		MerchantName:    nullableString(d.MerchantName),
		TransactionDate: d.TransactionDate,
		CreatedAt:       d.CreatedAt,
	}
}

// Helper to convert models.Transaction from DB to domain.Transaction
func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		CardID:          m.CardID,
		Reference:       m.Reference,
		Type:            domain.TransactionType(m.Type),
		Amount:          m.Amount,
		Currency:        m.Currency,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Description:     stringFromPtr(m.Description),
		CategoryID:      m.CategoryID,
		Status:          domain.TransactionStatus(m.Status),
		FromAccount:     stringFromPtr(m.FromAccount),
		ToAccount:       stringFromPtr(m.ToAccount),
		BeneficiaryName: stringFromPtr(m.BeneficiaryName),
		MerchantName:    stringFromPtr(m.MerchantName),
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Post runs one money movement atomically. It opens a database transaction,
// locks the named accounts in account_id order, hands the fresh rows to
// build, and persists everything the returned posting contains. Transient
// storage faults retry the whole unit, so build re-runs its preconditions
// against fresh reads on every attempt.
func (r *PgxLedgerRepository) Post(ctx context.Context, accountIDs []string, build portsrepo.PostingBuilder) error {
	ids := make([]string, len(accountIDs))
	copy(ids, accountIDs)
	sort.Strings(ids)

	return WithRetry(ctx, r.maxAttempts, func(ctx context.Context) error {
		return r.postOnce(ctx, ids, build)
	})
}

func (r *PgxLedgerRepository) postOnce(ctx context.Context, accountIDs []string, build portsrepo.PostingBuilder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	posting, err := build(lockedAccounts)
	if err != nil {
		return err
	}

	if posting.Category != nil {
		resolvedID, err := r.upsertCategoryInTx(ctx, tx, *posting.Category)
		if err != nil {
			return err
		}
		for i := range posting.Entries {
			if posting.Entries[i].CategoryID != nil && *posting.Entries[i].CategoryID == posting.Category.CategoryID {
				posting.Entries[i].CategoryID = &resolvedID
			}
		}
	}

	if err := r.insertEntriesInTx(ctx, tx, posting.Entries); err != nil {
		return err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, posting.BalanceChanges); err != nil {
		return err
	}

	if err := r.insertAuditLogsInTx(ctx, tx, posting.AuditLogs); err != nil {
		return err
	}

	if posting.Beneficiary != nil {
		if err := r.saveBeneficiaryInTx(ctx, tx, *posting.Beneficiary); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) insertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, account_id, card_id, reference, transaction_type, amount, currency, balance_before, balance_after, description, category_id, status, from_account, to_account, beneficiary_name, merchant_name, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := toModelTransaction(entry)
		batch.Queue(query,
			m.TransactionID,
			m.AccountID,
			m.CardID,
			m.Reference,
			m.Type,
			m.Amount,
			m.Currency,
			m.BalanceBefore,
			m.BalanceAfter,
			m.Description,
			m.CategoryID,
			m.Status,
			m.FromAccount,
			m.ToAccount,
			m.BeneficiaryName,
			m.MerchantName,
			m.TransactionDate,
			m.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	err := br.Close()
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "reference") {
			return apperrors.ErrDuplicateReference
		}
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) insertAuditLogsInTx(ctx context.Context, tx pgx.Tx, logs []domain.TransactionAuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	query := `
		INSERT INTO transaction_audit_logs (audit_log_id, user_id, action, reference, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	batch := &pgx.Batch{}
	for _, l := range logs {
		batch.Queue(query, l.AuditLogID, l.UserID, l.Action, l.Reference, l.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert transaction audit logs: %w", err)
	}
	return nil
}

// upsertCategoryInTx finds or creates a category by name and returns the id
// actually stored. A concurrent insert of the same name resolves to one row.
func (r *PgxLedgerRepository) upsertCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.TransactionCategory) (string, error) {
	query := `
		INSERT INTO transaction_categories (category_id, name, category_type, is_system)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING category_id;
	`

	var categoryID string
	err := tx.QueryRow(ctx, query, category.CategoryID, category.Name, category.Type, category.IsSystem).Scan(&categoryID)
	if err != nil {
		return "", fmt.Errorf("failed to upsert category %s: %w", category.Name, err)
	}
	return categoryID, nil
}

func (r *PgxLedgerRepository) saveBeneficiaryInTx(ctx context.Context, tx pgx.Tx, b domain.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (beneficiary_id, user_id, beneficiary_name, account_number, nickname, is_favorite, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, account_number) DO NOTHING;
	`

	_, err := tx.Exec(ctx, query,
		b.BeneficiaryID,
		b.UserID,
		b.BeneficiaryName,
		b.AccountNumber,
		nullableString(b.Nickname),
		b.IsFavorite,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save beneficiary for user %s: %w", b.UserID, err)
	}
	return nil
}

const transactionSelect = `
	SELECT t.transaction_id, t.account_id, t.card_id, t.reference, t.transaction_type, t.amount, t.currency, t.balance_before, t.balance_after, t.description, t.category_id, t.status, t.from_account, t.to_account, t.beneficiary_name, t.merchant_name, t.transaction_date, t.created_at,
	       c.name, c.category_type, c.is_system
	FROM transactions t
	LEFT JOIN transaction_categories c ON t.category_id = c.category_id
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	var catName, catType sql.NullString
	var catIsSystem sql.NullBool

	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.CardID,
		&m.Reference,
		&m.Type,
		&m.Amount,
		&m.Currency,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.CategoryID,
		&m.Status,
		&m.FromAccount,
		&m.ToAccount,
		&m.BeneficiaryName,
		&m.MerchantName,
		&m.TransactionDate,
		&m.CreatedAt,
		&catName,
		&catType,
		&catIsSystem,
	)
	if err != nil {
		return nil, err
	}

	txn := toDomainTransaction(m)
	if m.CategoryID != nil && catName.Valid {
		txn.Category = &domain.TransactionCategory{
			CategoryID: *m.CategoryID,
			Name:       catName.String,
			Type:       domain.CategoryType(catType.String),
			IsSystem:   catIsSystem.Bool,
		}
	}
	return &txn, nil
}

// FindTransactionByID retrieves a ledger entry by ID. Ownership is enforced
// through the joined account row.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	query := transactionSelect + `
		JOIN accounts a ON t.account_id = a.account_id
		WHERE t.transaction_id = $1 AND a.user_id = $2;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a page of the user's ledger entries, newest
// first, optionally narrowed to one account. It also returns the total count
// for the same scope.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, userID string, accountID *string, page, pageSize int) ([]domain.Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	whereClause := ` JOIN accounts a ON t.account_id = a.account_id WHERE a.user_id = $1`
	args := []interface{}{userID}
	if accountID != nil {
		whereClause += ` AND t.account_id = $2`
		args = append(args, *accountID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %s: %w", userID, err)
	}

	orderClause := ` ORDER BY t.transaction_date DESC, t.created_at DESC`
	limitClause := ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.Pool.Query(ctx, transactionSelect+whereClause+orderClause+limitClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// FilterTransactions retrieves the user's ledger entries matching the filter,
// newest first. Nil filter fields are ignored.
func (r *PgxLedgerRepository) FilterTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	whereClause := ` JOIN accounts a ON t.account_id = a.account_id WHERE a.user_id = $1`
	args := []interface{}{userID}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		whereClause += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}

	if filter.AccountID != nil {
		addArg(`t.account_id = `, *filter.AccountID)
	}
	if filter.CardID != nil {
		addArg(`t.card_id = `, *filter.CardID)
	}
	if filter.StartDate != nil {
		addArg(`t.transaction_date >= `, *filter.StartDate)
	}
	if filter.EndDate != nil {
		// EndDate is inclusive of the whole day it names.
		addArg(`t.transaction_date < `, filter.EndDate.Truncate(24*time.Hour).Add(24*time.Hour))
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		addArg(`t.transaction_type = ANY(`, types)
		whereClause += `)`
	}
	if len(filter.CategoryIDs) > 0 {
		addArg(`t.category_id = ANY(`, filter.CategoryIDs)
		whereClause += `)`
	}
	if filter.MinAmount != nil {
		addArg(`ABS(t.amount) >= `, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addArg(`ABS(t.amount) <= `, *filter.MaxAmount)
	}
	if filter.Status != nil {
		addArg(`t.status = `, string(*filter.Status))
	}

	query := transactionSelect + whereClause + ` ORDER BY t.transaction_date DESC, t.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// Statement retrieves a window of an account's ledger entries between start
// and end (end exclusive), newest first, plus the total count in the range.
func (r *PgxLedgerRepository) Statement(ctx context.Context, accountID string, start, end time.Time, skip, take int) ([]domain.Transaction, int, error) {
	if take <= 0 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}

	whereClause := ` WHERE t.account_id = $1 AND t.transaction_date >= $2 AND t.transaction_date < $3`

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, accountID, start, end).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count statement entries for account %s: %w", accountID, err)
	}

	query := transactionSelect + whereClause + ` ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $4 OFFSET $5;`
	rows, err := r.Pool.Query(ctx, query, accountID, start, end, take, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query statement for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// PendingAmount sums the absolute amounts of the account's pending entries.
func (r *PgxLedgerRepository) PendingAmount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE account_id = $1 AND status = $2;
	`

	var pending decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, domain.TransactionPending).Scan(&pending); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending amount for account %s: %w", accountID, err)
	}
	return pending, nil
}

// HasPendingTransactions reports whether the account has any pending entries.
func (r *PgxLedgerRepository) HasPendingTransactions(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1 AND status = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID, domain.TransactionPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending transactions for account %s: %w", accountID, err)
	}
	return exists, nil
}

// AccountActivity aggregates the account's completed ledger entries. The
// average balance is the mean of each entry's before/after midpoint; with no
// completed entries it is zero and callers substitute the current balance.
func (r *PgxLedgerRepository) AccountActivity(ctx context.Context, accountID string) (*portsrepo.AccountActivity, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0),
		       COALESCE(SUM(ABS(amount)) FILTER (WHERE amount < 0), 0),
		       COALESCE(AVG((balance_before + balance_after) / 2), 0),
		       COUNT(*)
		FROM transactions
		WHERE account_id = $1 AND status = $2;
	`

	var activity portsrepo.AccountActivity
	err := r.Pool.QueryRow(ctx, query, accountID, domain.TransactionCompleted).Scan(
		&activity.TotalDeposits,
		&activity.TotalWithdrawals,
		&activity.AverageBalance,
		&activity.CompletedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity for account %s: %w", accountID, err)
	}
	return &activity, nil
}
