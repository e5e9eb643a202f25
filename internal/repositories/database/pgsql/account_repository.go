package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	"github.com/finbase/corebanking/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, user_id, account_number, account_type, balance, available_balance, currency, branch, status, interest_rate, term_months, maturity_date, opened_at, closed_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		UserID:           d.UserID,
		AccountNumber:    d.AccountNumber,
		AccountType:      string(d.AccountType),
		Balance:          d.Balance,
		AvailableBalance: d.AvailableBalance,
		Currency:         d.Currency,
		Branch:           d.Branch,
		Status:           string(d.Status),
		InterestRate:     d.InterestRate,
		TermMonths:       d.TermMonths,
		MaturityDate:     d.MaturityDate,
		OpenedAt:         d.OpenedAt,
		ClosedAt:         d.ClosedAt,
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		UserID:           m.UserID,
		AccountNumber:    m.AccountNumber,
		AccountType:      domain.AccountType(m.AccountType),
		Balance:          m.Balance,
		AvailableBalance: m.AvailableBalance,
		Currency:         m.Currency,
		Branch:           m.Branch,
		Status:           domain.AccountStatus(m.Status),
		InterestRate:     m.InterestRate,
		TermMonths:       m.TermMonths,
		MaturityDate:     m.MaturityDate,
		OpenedAt:         m.OpenedAt,
		ClosedAt:         m.ClosedAt,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountNumber,
		&m.AccountType,
		&m.Balance,
		&m.AvailableBalance,
		&m.Currency,
		&m.Branch,
		&m.Status,
		&m.InterestRate,
		&m.TermMonths,
		&m.MaturityDate,
		&m.OpenedAt,
		&m.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.AccountNumber,
		modelAcc.AccountType,
		modelAcc.Balance,
		modelAcc.AvailableBalance,
		modelAcc.Currency,
		modelAcc.Branch,
		modelAcc.Status,
		modelAcc.InterestRate,
		modelAcc.TermMonths,
		modelAcc.MaturityDate,
		modelAcc.OpenedAt,
		modelAcc.ClosedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByNumber retrieves an account by its customer-visible number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return acc, nil
}

// FindAccountsByUserID retrieves all accounts owned by a user, newest first.
func (r *PgxAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY opened_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, *acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, err)
	}

	return accounts, nil
}

// CloseAccount marks the account closed. The guards (must be active, no
// pending ledger entries, no non-cancelled cards) are part of the UPDATE
// itself so that a concurrent transfer or card issue cannot slip between the
// check and the write.
func (r *PgxAccountRepository) CloseAccount(ctx context.Context, accountID string, closedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, closed_at = $3
		WHERE account_id = $1
		  AND status = $4
		  AND NOT EXISTS (
		      SELECT 1 FROM transactions t
		      WHERE t.account_id = accounts.account_id AND t.status = $5
		  )
		  AND NOT EXISTS (
		      SELECT 1 FROM cards c
		      WHERE c.account_id = accounts.account_id AND c.status != $6
		  );
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		accountID,
		domain.AccountClosed,
		closedAt,
		domain.AccountActive,
		domain.TransactionPending,
		domain.CardCancelled,
	)
	if err != nil {
		return fmt.Errorf("failed to execute close account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// The guarded update did nothing. Re-check each guard to report the
		// precise reason; a small race here only affects the error message,
		// never the account state.
		acc, findErr := r.FindAccountByID(ctx, accountID)
		if findErr != nil {
			return findErr
		}
		if acc.Status != domain.AccountActive {
			return fmt.Errorf("%w: account %s is not active", apperrors.ErrConflict, accountID)
		}

		var hasPending bool
		pendingQuery := `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1 AND status = $2);`
		if err := r.Pool.QueryRow(ctx, pendingQuery, accountID, domain.TransactionPending).Scan(&hasPending); err != nil {
			return fmt.Errorf("failed to check pending transactions for account %s: %w", accountID, err)
		}
		if hasPending {
			return apperrors.ErrHasPendingTransactions
		}

		hasCards, err := r.HasActiveCards(ctx, accountID)
		if err != nil {
			return err
		}
		if hasCards {
			return apperrors.ErrHasActiveCards
		}

		return fmt.Errorf("%w: failed to close account %s", apperrors.ErrConflict, accountID)
	}

	return nil
}

// HasActiveCards reports whether any non-cancelled card is linked to the account.
func (r *PgxAccountRepository) HasActiveCards(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM cards WHERE account_id = $1 AND status != $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID, domain.CardCancelled).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cards for account %s: %w", accountID, err)
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate retrieves the given accounts and locks their rows
// for update. Rows are locked in account_id order so that two concurrent
// postings touching the same pair of accounts cannot deadlock.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within
// a transaction. Callers must have locked the rows first.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]domain.BalanceDelta) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, available_balance = available_balance + $3
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if delta.Balance.IsZero() && delta.Available.IsZero() {
			continue
		}
		batch.Queue(query, accountID, delta.Balance, delta.Available)
		accountIDs = append(accountIDs, accountID)
	}

	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}

	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}
