package services

import (
	"context"
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
)

// cardService tracks cards and their usage against configured limits. Limits
// are reported, not enforced; the transfer engine never blocks on them.
type cardService struct {
	cardRepo    portsrepo.CardRepository
	accountRepo portsrepo.AccountRepository
}

// NewCardService creates a new card service.
func NewCardService(cardRepo portsrepo.CardRepository, accountRepo portsrepo.AccountRepository) portssvc.CardSvcFacade {
	return &cardService{
		cardRepo:    cardRepo,
		accountRepo: accountRepo,
	}
}

// Ensure cardService implements the portssvc.CardSvcFacade interface
var _ portssvc.CardSvcFacade = (*cardService)(nil)

// GetUserCards returns the user's cards. Debit cards carry the linked
// account's balance.
func (s *cardService) GetUserCards(ctx context.Context, userID string) ([]dto.CardResponse, error) {
	cards, err := s.cardRepo.FindCardsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := map[string]*domain.Account{}
	responses := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		account, ok := balances[card.AccountID]
		if !ok && card.CardType == domain.DebitCard {
			account, err = s.accountRepo.FindAccountByID(ctx, card.AccountID)
			if err != nil {
				return nil, err
			}
			balances[card.AccountID] = account
		}
		if account != nil {
			responses = append(responses, dto.ToCardResponse(card, &account.Balance))
		} else {
			responses = append(responses, dto.ToCardResponse(card, nil))
		}
	}
	return responses, nil
}

// GetCardDetails returns the card detail view with derived usage.
func (s *cardService) GetCardDetails(ctx context.Context, cardID, userID string) (*dto.CardDetailsResponse, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, card.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	usage, err := s.cardUsage(ctx, card, now)
	if err != nil {
		return nil, err
	}

	return &dto.CardDetailsResponse{
		CardID:           card.CardID,
		MaskedCardNumber: utils.MaskCardNumber(card.Last4Digits),
		CardHolderName:   card.CardHolderName,
		CardName:         card.CardName,
		CardType:         card.CardType,
		CardBrand:        card.CardBrand,
		ValidFrom:        card.ValidFrom,
		ExpiryDate:       card.ExpiryDate,
		IsExpired:        cardExpired(card.ExpiryDate, now),
		Status:           card.Status,
		DailyLimit:       card.DailyLimit,
		MonthlyLimit:     card.MonthlyLimit,
		UsedToday:        usage.DailyUsage,
		UsedThisMonth:    usage.MonthlyUsage,
		LinkedAccount:    dto.ToAccountResponse(*account),
	}, nil
}

// RequestCard submits a card application for one of the user's accounts.
func (s *cardService) RequestCard(ctx context.Context, userID string, req dto.AddCardRequest) (*dto.CardRequestResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrUnauthorized, req.AccountID)
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountInactive, account.AccountID, account.Status)
	}
	if req.CardType == domain.CreditCard && req.DesiredCreditLimit == nil {
		return nil, fmt.Errorf("%w: credit card requests require desiredCreditLimit", apperrors.ErrValidation)
	}

	request := domain.CardRequest{
		CardRequestID:      uuid.NewString(),
		UserID:             userID,
		AccountID:          req.AccountID,
		CardType:           req.CardType,
		CardHolderName:     req.CardHolderName,
		CardName:           req.CardName,
		DesiredCreditLimit: req.DesiredCreditLimit,
		Status:             domain.CardPending,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.cardRepo.SaveCardRequest(ctx, request); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("card requested", "card_request_id", request.CardRequestID, "card_type", request.CardType)

	return &dto.CardRequestResponse{
		CardRequestID: request.CardRequestID,
		Status:        request.Status,
	}, nil
}

// UpdateCardStatus blocks or reactivates a card. Only the ACTIVE and BLOCKED
// states participate; cancelled and pending cards cannot transition here.
func (s *cardService) UpdateCardStatus(ctx context.Context, cardID, userID string, req dto.CardStatusUpdateRequest) error {
	card, err := s.cardRepo.FindCardByID(ctx, cardID, userID)
	if err != nil {
		return err
	}
	if card.Status != domain.CardActive && card.Status != domain.CardBlocked {
		return fmt.Errorf("%w: card %s is %s", apperrors.ErrConflict, cardID, card.Status)
	}
	if card.Status == req.Status {
		return nil
	}

	previous := card.Status
	card.Status = req.Status
	audit := newCardAuditLog(*card, userID, previous, req.Reason)
	if err := s.cardRepo.UpdateCard(ctx, *card, &audit); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("card status updated", "card_id", cardID, "status", req.Status)
	return nil
}

// CancelCard permanently cancels a card. Cancellation is terminal.
func (s *cardService) CancelCard(ctx context.Context, cardID, userID string) error {
	card, err := s.cardRepo.FindCardByID(ctx, cardID, userID)
	if err != nil {
		return err
	}
	if card.Status == domain.CardCancelled {
		return fmt.Errorf("%w: card %s is already cancelled", apperrors.ErrConflict, cardID)
	}

	previous := card.Status
	card.Status = domain.CardCancelled
	audit := newCardAuditLog(*card, userID, previous, "")
	if err := s.cardRepo.UpdateCard(ctx, *card, &audit); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("card cancelled", "card_id", cardID)
	return nil
}

// GetCardLimits reports the card's configured limits and derived usage.
func (s *cardService) GetCardLimits(ctx context.Context, cardID, userID string) (*dto.CardLimitsResponse, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	usage, err := s.cardUsage(ctx, card, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &dto.CardLimitsResponse{
		DailyLimit:   card.DailyLimit,
		MonthlyLimit: card.MonthlyLimit,
		DailyUsage:   usage.DailyUsage,
		MonthlyUsage: usage.MonthlyUsage,
	}, nil
}

// UpdateCardLimits sets the card's daily and monthly spend limits.
func (s *cardService) UpdateCardLimits(ctx context.Context, cardID, userID string, req dto.UpdateCardLimitsRequest) error {
	if req.DailyLimit.IsNegative() || req.MonthlyLimit.IsNegative() {
		return apperrors.ErrInvalidLimit
	}

	card, err := s.cardRepo.FindCardByID(ctx, cardID, userID)
	if err != nil {
		return err
	}
	if card.Status == domain.CardCancelled {
		return fmt.Errorf("%w: card %s is cancelled", apperrors.ErrConflict, cardID)
	}

	daily := req.DailyLimit
	monthly := req.MonthlyLimit
	card.DailyLimit = &daily
	card.MonthlyLimit = &monthly

	if err := s.cardRepo.UpdateCard(ctx, *card, nil); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("card limits updated", "card_id", cardID)
	return nil
}

func (s *cardService) cardUsage(ctx context.Context, card *domain.Card, now time.Time) (*domain.CardUsage, error) {
	dayStart := now.Truncate(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	daily, err := s.cardRepo.DailyUsage(ctx, card.CardID, dayStart)
	if err != nil {
		return nil, err
	}
	monthly, err := s.cardRepo.MonthlyUsage(ctx, card.CardID, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &domain.CardUsage{
		DailyLimit:   card.DailyLimit,
		MonthlyLimit: card.MonthlyLimit,
		DailyUsage:   daily,
		MonthlyUsage: monthly,
	}, nil
}

// cardExpired parses the MM/YY expiry and reports whether the card's last
// valid month has passed.
func cardExpired(expiry string, now time.Time) bool {
	t, err := time.Parse("01/06", expiry)
	if err != nil {
		return false
	}
	endOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return !now.Before(endOfMonth)
}

func newCardAuditLog(card domain.Card, userID string, previous domain.CardStatus, reason string) domain.CardAuditLog {
	return domain.CardAuditLog{
		AuditLogID:     uuid.NewString(),
		CardID:         card.CardID,
		UserID:         userID,
		PreviousStatus: previous,
		NewStatus:      card.Status,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
}
