package models

import "time"

// Beneficiary is the database representation of a saved counterparty row.
type Beneficiary struct {
	BeneficiaryID   string    `db:"beneficiary_id"`
	UserID          string    `db:"user_id"`
	BeneficiaryName string    `db:"beneficiary_name"`
	AccountNumber   string    `db:"account_number"`
	Nickname        *string   `db:"nickname"`
	IsFavorite      bool      `db:"is_favorite"`
	CreatedAt       time.Time `db:"created_at"`
}
