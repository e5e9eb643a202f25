package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finbase/corebanking/internal/core/domain"
	"github.com/finbase/corebanking/internal/utils"
)

// AddCardRequest applies for a new card linked to one of the user's accounts.
type AddCardRequest struct {
	AccountID          string           `json:"accountId" binding:"required,uuid"`
	CardType           domain.CardType  `json:"cardType" binding:"required,oneof=DEBIT CREDIT"`
	CardHolderName     string           `json:"cardHolderName" binding:"required,max=100"`
	CardName           string           `json:"cardName" binding:"required,max=100"`
	DesiredCreditLimit *decimal.Decimal `json:"desiredCreditLimit,omitempty" binding:"omitempty,dgt0"`
}

// CardStatusUpdateRequest blocks or reactivates a card.
type CardStatusUpdateRequest struct {
	Status domain.CardStatus `json:"status" binding:"required,oneof=ACTIVE BLOCKED"`
	Reason string            `json:"reason,omitempty" binding:"max=255"`
}

// UpdateCardLimitsRequest sets the card's daily and monthly spend limits.
// Limits are tracked and reported only; the transfer engine does not block
// charges that exceed them.
type UpdateCardLimitsRequest struct {
	DailyLimit   decimal.Decimal `json:"dailyLimit" binding:"dgte0"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" binding:"dgte0"`
}

// CardResponse is the list view of a card.
type CardResponse struct {
	CardID           string            `json:"cardId"`
	MaskedCardNumber string            `json:"maskedCardNumber"`
	CardName         string            `json:"cardName"`
	CardType         domain.CardType   `json:"cardType"`
	CardBrand        domain.CardBrand  `json:"cardBrand"`
	Status           domain.CardStatus `json:"status"`
	AvailableCredit  *decimal.Decimal  `json:"availableCredit,omitempty"`
	AccountBalance   *decimal.Decimal  `json:"accountBalance,omitempty"`
}

// CardDetailsResponse is the detail view including derived usage.
type CardDetailsResponse struct {
	CardID           string            `json:"cardId"`
	MaskedCardNumber string            `json:"maskedCardNumber"`
	CardHolderName   string            `json:"cardHolderName"`
	CardName         string            `json:"cardName"`
	CardType         domain.CardType   `json:"cardType"`
	CardBrand        domain.CardBrand  `json:"cardBrand"`
	ValidFrom        string            `json:"validFrom"`
	ExpiryDate       string            `json:"expiryDate"`
	IsExpired        bool              `json:"isExpired"`
	Status           domain.CardStatus `json:"status"`
	DailyLimit       *decimal.Decimal  `json:"dailyLimit,omitempty"`
	MonthlyLimit     *decimal.Decimal  `json:"monthlyLimit,omitempty"`
	UsedToday        decimal.Decimal   `json:"usedToday"`
	UsedThisMonth    decimal.Decimal   `json:"usedThisMonth"`
	LinkedAccount    AccountResponse   `json:"linkedAccount"`
}

// CardRequestResponse acknowledges a submitted card application.
type CardRequestResponse struct {
	CardRequestID string            `json:"cardRequestId"`
	Status        domain.CardStatus `json:"status"`
}

// CardLimitsResponse reports configured limits alongside derived usage.
type CardLimitsResponse struct {
	DailyLimit   *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	DailyUsage   decimal.Decimal  `json:"dailyUsage"`
	MonthlyUsage decimal.Decimal  `json:"monthlyUsage"`
}

// ToCardResponse converts a domain card to its masked list view. Debit cards
// surface the linked account balance, credit cards their available credit.
func ToCardResponse(c domain.Card, accountBalance *decimal.Decimal) CardResponse {
	resp := CardResponse{
		CardID:           c.CardID,
		MaskedCardNumber: utils.MaskCardNumber(c.Last4Digits),
		CardName:         c.CardName,
		CardType:         c.CardType,
		CardBrand:        c.CardBrand,
		Status:           c.Status,
	}
	switch c.CardType {
	case domain.CreditCard:
		resp.AvailableCredit = c.AvailableCredit
	case domain.DebitCard:
		resp.AccountBalance = accountBalance
	}
	return resp
}
