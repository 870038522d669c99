package dto

import (
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// CreateEntityRequest creates a new tracked entity with its opening balances.
type CreateEntityRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	BankBalance int64  `json:"bankBalance" binding:"gte=0"`
	CashBalance int64  `json:"cashBalance" binding:"gte=0"`
}

// UpdateEntityBalancesRequest is the admin balance correction.
type UpdateEntityBalancesRequest struct {
	BankBalance int64 `json:"bankBalance" binding:"gte=0"`
	CashBalance int64 `json:"cashBalance" binding:"gte=0"`
}

// EntityResponse is one entity with its three sub-balances.
type EntityResponse struct {
	EntityID       string    `json:"entityID"`
	Name           string    `json:"name"`
	BankBalance    int64     `json:"bankBalance"`
	DebitBalance   int64     `json:"debitBalance"`
	CashBalance    int64     `json:"cashBalance"`
	InitialCapital int64     `json:"initialCapital"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BalanceResponse aggregates all entity balances for the dashboard.
type BalanceResponse struct {
	TotalBank  int64            `json:"totalBank"`
	TotalDebit int64            `json:"totalDebit"`
	TotalCash  int64            `json:"totalCash"`
	Entities   []EntityResponse `json:"entities"`
}

// ToEntityResponse maps a domain entity to its API shape.
func ToEntityResponse(e domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:       e.EntityID,
		Name:           e.Name,
		BankBalance:    e.BankBalance,
		DebitBalance:   e.DebitBalance,
		CashBalance:    e.CashBalance,
		InitialCapital: e.InitialCapital,
		CreatedAt:      e.CreatedAt,
	}
}

// ToBalanceResponse assembles the balance dashboard from the entity list.
func ToBalanceResponse(entities []domain.Entity) BalanceResponse {
	resp := BalanceResponse{Entities: make([]EntityResponse, len(entities))}
	for i, e := range entities {
		resp.Entities[i] = ToEntityResponse(e)
		resp.TotalBank += e.BankBalance
		resp.TotalDebit += e.DebitBalance
		resp.TotalCash += e.CashBalance
	}
	return resp
}
