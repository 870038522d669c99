package dto

import (
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// DebtResponse is one open or settled debt between two entities.
type DebtResponse struct {
	DebtID           string    `json:"debtID"`
	CreditorEntityID string    `json:"creditorEntityID"`
	DebtorEntityID   string    `json:"debtorEntityID"`
	Amount           int64     `json:"amount"`
	IsPaid           bool      `json:"isPaid"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ListDebtsResponse partitions an entity's active debts by role; when no
// entity filter is given, All carries every open debt instead.
type ListDebtsResponse struct {
	OwedToEntity []DebtResponse `json:"owedToEntity,omitempty"`
	OwedByEntity []DebtResponse `json:"owedByEntity,omitempty"`
	All          []DebtResponse `json:"all,omitempty"`
}

// ToDebtResponse maps a domain debt to its API shape.
func ToDebtResponse(d domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:           d.DebtID,
		CreditorEntityID: d.CreditorEntityID,
		DebtorEntityID:   d.DebtorEntityID,
		Amount:           d.Amount,
		IsPaid:           d.IsPaid,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDebtResponses maps a slice of debts.
func ToDebtResponses(ds []domain.Debt) []DebtResponse {
	out := make([]DebtResponse, len(ds))
	for i, d := range ds {
		out[i] = ToDebtResponse(d)
	}
	return out
}
