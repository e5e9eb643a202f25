package domain

import "time"

// Beneficiary is a saved transfer counterparty for a user. The pair
// (UserID, AccountNumber) is unique.
type Beneficiary struct {
	BeneficiaryID   string    `json:"beneficiaryID"`
	UserID          string    `json:"userID"`
	BeneficiaryName string    `json:"beneficiaryName"`
	AccountNumber   string    `json:"accountNumber"`
	Nickname        string    `json:"nickname,omitempty"`
	IsFavorite      bool      `json:"isFavorite"`
	CreatedAt       time.Time `json:"createdAt"`
}
