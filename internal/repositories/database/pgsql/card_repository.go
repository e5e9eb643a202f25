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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const cardColumns = `card_id, user_id, account_id, last4_digits, card_holder_name, card_name, card_type, card_brand, valid_from, expiry_date, credit_limit, available_credit, daily_limit, monthly_limit, status, issued_at`

type PgxCardRepository struct {
	BaseRepository
}

// newPgxCardRepository creates a new repository for card data.
func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepository {
	return &PgxCardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCardRepository implements portsrepo.CardRepository
var _ portsrepo.CardRepository = (*PgxCardRepository)(nil)

func toDomainCard(m models.Card) domain.Card {
	return domain.Card{
		CardID:          m.CardID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		Last4Digits:     m.Last4Digits,
		CardHolderName:  m.CardHolderName,
		CardName:        m.CardName,
		CardType:        domain.CardType(m.CardType),
		CardBrand:       domain.CardBrand(m.CardBrand),
		ValidFrom:       m.ValidFrom,
		ExpiryDate:      m.ExpiryDate,
		CreditLimit:     m.CreditLimit,
		AvailableCredit: m.AvailableCredit,
		DailyLimit:      m.DailyLimit,
		MonthlyLimit:    m.MonthlyLimit,
		Status:          domain.CardStatus(m.Status),
		IssuedAt:        m.IssuedAt,
	}
}

func scanCard(row pgx.Row) (*domain.Card, error) {
	var m models.Card
	err := row.Scan(
		&m.CardID,
		&m.UserID,
		&m.AccountID,
		&m.Last4Digits,
		&m.CardHolderName,
		&m.CardName,
		&m.CardType,
		&m.CardBrand,
		&m.ValidFrom,
		&m.ExpiryDate,
		&m.CreditLimit,
		&m.AvailableCredit,
		&m.DailyLimit,
		&m.MonthlyLimit,
		&m.Status,
		&m.IssuedAt,
	)
	if err != nil {
		return nil, err
	}
	card := toDomainCard(m)
	return &card, nil
}

// FindCardByID retrieves a card by ID scoped to its owner.
func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE card_id = $1 AND user_id = $2;
	`
	card, err := scanCard(r.Pool.QueryRow(ctx, query, cardID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card by ID %s: %w", cardID, err)
	}
	return card, nil
}

// FindCardsByUserID retrieves all of a user's cards, newest first.
func (r *PgxCardRepository) FindCardsByUserID(ctx context.Context, userID string) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1
		ORDER BY issued_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards for user %s: %w", userID, err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row for user %s: %w", userID, err)
		}
		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows for user %s: %w", userID, err)
	}

	return cards, nil
}

// SaveCardRequest inserts a new card application.
func (r *PgxCardRepository) SaveCardRequest(ctx context.Context, request domain.CardRequest) error {
	query := `
		INSERT INTO card_requests (card_request_id, user_id, account_id, card_type, card_holder_name, card_name, desired_credit_limit, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		request.CardRequestID,
		request.UserID,
		request.AccountID,
		request.CardType,
		request.CardHolderName,
		request.CardName,
		request.DesiredCreditLimit,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save card request %s: %w", request.CardRequestID, err)
	}
	return nil
}

// UpdateCard persists card mutations together with the audit row in one
// database transaction.
func (r *PgxCardRepository) UpdateCard(ctx context.Context, card domain.Card, audit *domain.CardAuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE cards
		SET status = $2, daily_limit = $3, monthly_limit = $4
		WHERE card_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, card.CardID, card.Status, card.DailyLimit, card.MonthlyLimit)
	if err != nil {
		return fmt.Errorf("failed to execute update card %s: %w", card.CardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if audit != nil {
		auditQuery := `
			INSERT INTO card_audit_logs (audit_log_id, card_id, user_id, previous_status, new_status, reason, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		_, err = tx.Exec(ctx, auditQuery,
			audit.AuditLogID,
			audit.CardID,
			audit.UserID,
			audit.PreviousStatus,
			audit.NewStatus,
			nullableString(audit.Reason),
			audit.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card audit log for card %s: %w", card.CardID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DailyUsage sums the card's completed spend for the 24 hours starting at day.
func (r *PgxCardRepository) DailyUsage(ctx context.Context, cardID string, day time.Time) (decimal.Decimal, error) {
	return r.spendBetween(ctx, cardID, day, day.Add(24*time.Hour))
}

// MonthlyUsage sums the card's completed spend from monthStart up to now.
func (r *PgxCardRepository) MonthlyUsage(ctx context.Context, cardID string, monthStart, now time.Time) (decimal.Decimal, error) {
	return r.spendBetween(ctx, cardID, monthStart, now)
}

func (r *PgxCardRepository) spendBetween(ctx context.Context, cardID string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE card_id = $1 AND status = $2 AND amount < 0
		  AND transaction_date >= $3 AND transaction_date < $4;
	`

	var spend decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, cardID, domain.TransactionCompleted, start, end).Scan(&spend)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum card spend for card %s: %w", cardID, err)
	}
	return spend, nil
}
