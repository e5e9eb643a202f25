package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a ledger entry query. Nil fields are ignored.
// EndDate is inclusive of the whole day it names.
type TransactionFilter struct {
	AccountID   *string
	CardID      *string
	StartDate   *time.Time
	EndDate     *time.Time
	Types       []TransactionType
	CategoryIDs []string
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Status      *TransactionStatus
}

// TransactionSummary aggregates a filtered set of ledger entries.
type TransactionSummary struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	TotalCount      int             `json:"totalCount"`
	SuccessfulCount int             `json:"successfulCount"`
	FailedCount     int             `json:"failedCount"`
}

// MonthlyChartPoint is one month of the trailing six-month report chart.
// Normalized values are scaled to 0-100 for rendering.
type MonthlyChartPoint struct {
	Month              string          `json:"month"` // e.g. "Jan"
	Income             decimal.Decimal `json:"income"`
	Expenses           decimal.Decimal `json:"expenses"`
	Net                decimal.Decimal `json:"net"`
	NormalizedIncome   int             `json:"normalizedIncome"`
	NormalizedExpenses int             `json:"normalizedExpenses"`
	NormalizedNet      int             `json:"normalizedNet"`
}
