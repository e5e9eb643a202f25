package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardPending   CardStatus = "PENDING"
	CardActive    CardStatus = "ACTIVE"
	CardBlocked   CardStatus = "BLOCKED"
	CardCancelled CardStatus = "CANCELLED"
)

// CardType distinguishes debit cards (spend account balance) from credit cards.
type CardType string

const (
	DebitCard  CardType = "DEBIT"
	CreditCard CardType = "CREDIT"
)

// CardBrand is the card network.
type CardBrand string

const (
	Visa       CardBrand = "VISA"
	Mastercard CardBrand = "MASTERCARD"
)

// Card is a payment card linked to an account. Daily/monthly usage is derived
// from completed ledger entries, never stored on the card itself.
type Card struct {
	CardID          string           `json:"cardID"`
	UserID          string           `json:"userID"`
	AccountID       string           `json:"accountID"`
	Last4Digits     string           `json:"last4Digits"`
	CardHolderName  string           `json:"cardHolderName"`
	CardName        string           `json:"cardName"`
	CardType        CardType         `json:"cardType"`
	CardBrand       CardBrand        `json:"cardBrand"`
	ValidFrom       string           `json:"validFrom"`  // MM/YY
	ExpiryDate      string           `json:"expiryDate"` // MM/YY
	CreditLimit     *decimal.Decimal `json:"creditLimit,omitempty"`
	AvailableCredit *decimal.Decimal `json:"availableCredit,omitempty"`
	DailyLimit      *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit    *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Status          CardStatus       `json:"status"`
	IssuedAt        time.Time        `json:"issuedAt"`
}

// CardUsage is the rolling spend computed for a card against its limits.
type CardUsage struct {
	DailyLimit   *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	DailyUsage   decimal.Decimal  `json:"dailyUsage"`
	MonthlyUsage decimal.Decimal  `json:"monthlyUsage"`
}

// CardRequest is a customer's application for a new card. Requests start
// Pending and are fulfilled outside the core.
type CardRequest struct {
	CardRequestID      string           `json:"cardRequestID"`
	UserID             string           `json:"userID"`
	AccountID          string           `json:"accountID"`
	CardType           CardType         `json:"cardType"`
	CardHolderName     string           `json:"cardHolderName"`
	CardName           string           `json:"cardName"`
	DesiredCreditLimit *decimal.Decimal `json:"desiredCreditLimit,omitempty"`
	Status             CardStatus       `json:"status"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// CardAuditLog records a card status transition.
type CardAuditLog struct {
	AuditLogID     string     `json:"auditLogID"`
	CardID         string     `json:"cardID"`
	UserID         string     `json:"userID"`
	PreviousStatus CardStatus `json:"previousStatus"`
	NewStatus      CardStatus `json:"newStatus"`
	Reason         string     `json:"reason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
