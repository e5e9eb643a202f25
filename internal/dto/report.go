package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/corebanking/internal/core/domain"
)

// ReportRequest filters the transaction report. All fields are optional.
type ReportRequest struct {
	StartDate   *time.Time                `json:"startDate,omitempty" form:"startDate"`
	EndDate     *time.Time                `json:"endDate,omitempty" form:"endDate"`
	AccountID   *string                   `json:"accountId,omitempty" form:"accountId" binding:"omitempty,uuid"`
	CardID      *string                   `json:"cardId,omitempty" form:"cardId" binding:"omitempty,uuid"`
	Types       []domain.TransactionType  `json:"types,omitempty" form:"types"`
	CategoryIDs []string                  `json:"categoryIds,omitempty" form:"categoryIds"`
	MinAmount   *decimal.Decimal          `json:"minAmount,omitempty" form:"minAmount"`
	MaxAmount   *decimal.Decimal          `json:"maxAmount,omitempty" form:"maxAmount"`
	Status      *domain.TransactionStatus `json:"status,omitempty" form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
}

// Filter converts the request to a domain filter.
func (r ReportRequest) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		AccountID:   r.AccountID,
		CardID:      r.CardID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Types:       r.Types,
		CategoryIDs: r.CategoryIDs,
		MinAmount:   r.MinAmount,
		MaxAmount:   r.MaxAmount,
		Status:      r.Status,
	}
}

// TransactionReport is the filtered, grouped, summarized transaction view
// with a trailing six-month chart.
type TransactionReport struct {
	GroupOrder          []string                         `json:"groupOrder"` // newest bucket first
	GroupedTransactions map[string][]TransactionResponse `json:"groupedTransactions"`
	Summary             domain.TransactionSummary        `json:"summary"`
	Chart               []domain.MonthlyChartPoint       `json:"chart"`
}
