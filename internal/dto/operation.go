package dto

import (
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// OperationRequest is the input of the operation engine: one money-moving
// operation submitted by the acting user. The "opkind" binding rule is
// registered at startup and accepts only the kinds the engine executes.
type OperationRequest struct {
	Kind           domain.OperationKind `json:"kind" binding:"required,opkind"`
	Amount         int64                `json:"amount" binding:"required,gt=0"`
	EntityID       *string              `json:"entityID,omitempty"`
	TargetEntityID *string              `json:"targetEntityID,omitempty"`
	Comment        string               `json:"comment,omitempty"`
}

// RepayDebtRequest is the body of the dedicated debt repayment operation.
type RepayDebtRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse is one ledger entry as exposed to clients.
type TransactionResponse struct {
	TransactionID  string    `json:"transactionID"`
	UserID         int64     `json:"userID"`
	EntityID       *string   `json:"entityID,omitempty"`
	TargetEntityID *string   `json:"targetEntityID,omitempty"`
	Kind           string    `json:"kind"`
	KindLabel      string    `json:"kindLabel"`
	Amount         int64     `json:"amount"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OperationResponse confirms a successfully executed operation.
type OperationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
}

// ListTransactionsResponse wraps a ledger history query result.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse maps a domain ledger entry to its API shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		UserID:         t.UserID,
		EntityID:       t.EntityID,
		TargetEntityID: t.TargetID,
		Kind:           string(t.Kind),
		KindLabel:      t.Kind.Label(),
		Amount:         t.Amount,
		Comment:        t.Comment,
		CreatedAt:      t.CreatedAt,
	}
}

// ToTransactionResponses maps a slice of ledger entries.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
