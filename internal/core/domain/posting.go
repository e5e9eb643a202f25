package domain

import "github.com/shopspring/decimal"

// BalanceDelta is the signed change a posting applies to one account's
// balance columns.
type BalanceDelta struct {
	Balance   decimal.Decimal
	Available decimal.Decimal
}

// Posting is the atomic unit the ledger store persists: one or two ledger
// entries plus the account balance changes and audit rows that belong to the
// same money movement. Either everything in a posting is committed or none
// of it is.
type Posting struct {
	Entries        []Transaction
	BalanceChanges map[string]BalanceDelta // keyed by account id
	AuditLogs      []TransactionAuditLog
	Category       *TransactionCategory // optional, bill payments only
	Beneficiary    *Beneficiary         // optional, transfer save-as-beneficiary
}
