package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	"github.com/finbase/corebanking/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBeneficiaryRepository struct {
	BaseRepository
}

// newPgxBeneficiaryRepository creates a new repository for beneficiary data.
func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepository {
	return &PgxBeneficiaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBeneficiaryRepository implements portsrepo.BeneficiaryRepository
var _ portsrepo.BeneficiaryRepository = (*PgxBeneficiaryRepository)(nil)

func toDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID:   m.BeneficiaryID,
		UserID:          m.UserID,
		BeneficiaryName: m.BeneficiaryName,
		AccountNumber:   m.AccountNumber,
		Nickname:        stringFromPtr(m.Nickname),
		IsFavorite:      m.IsFavorite,
		CreatedAt:       m.CreatedAt,
	}
}

// BeneficiaryExists reports whether the user already saved this account number.
func (r *PgxBeneficiaryRepository) BeneficiaryExists(ctx context.Context, userID, accountNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM beneficiaries WHERE user_id = $1 AND account_number = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check beneficiary for user %s: %w", userID, err)
	}
	return exists, nil
}

// SaveBeneficiary inserts a new saved counterparty.
func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (beneficiary_id, user_id, beneficiary_name, account_number, nickname, is_favorite, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		beneficiary.BeneficiaryID,
		beneficiary.UserID,
		beneficiary.BeneficiaryName,
		beneficiary.AccountNumber,
		nullableString(beneficiary.Nickname),
		beneficiary.IsFavorite,
		beneficiary.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: beneficiary %s already saved", apperrors.ErrDuplicate, beneficiary.AccountNumber)
		}
		return fmt.Errorf("failed to save beneficiary %s: %w", beneficiary.BeneficiaryID, err)
	}
	return nil
}

// FindBeneficiariesByUserID retrieves the user's saved counterparties,
// favorites first.
func (r *PgxBeneficiaryRepository) FindBeneficiariesByUserID(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	query := `
		SELECT beneficiary_id, user_id, beneficiary_name, account_number, nickname, is_favorite, created_at
		FROM beneficiaries
		WHERE user_id = $1
		ORDER BY is_favorite DESC, beneficiary_name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries for user %s: %w", userID, err)
	}
	defer rows.Close()

	beneficiaries := []domain.Beneficiary{}
	for rows.Next() {
		var m models.Beneficiary
		err := rows.Scan(
			&m.BeneficiaryID,
			&m.UserID,
			&m.BeneficiaryName,
			&m.AccountNumber,
			&m.Nickname,
			&m.IsFavorite,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary row for user %s: %w", userID, err)
		}
		beneficiaries = append(beneficiaries, toDomainBeneficiary(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiary rows for user %s: %w", userID, err)
	}

	return beneficiaries, nil
}

// DeleteBeneficiary removes one of the user's saved counterparties.
func (r *PgxBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, beneficiaryID, userID string) error {
	query := `DELETE FROM beneficiaries WHERE beneficiary_id = $1 AND user_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, beneficiaryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete beneficiary %s: %w", beneficiaryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
