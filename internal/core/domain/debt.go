package domain

import "time"

// Debt is an open obligation between two entities created by a loan
// operation. Amount only ever decreases, via repayment; IsPaid is true
// exactly when the amount reaches zero, and a settled debt accepts no
// further repayment. Debts are never deleted.
type Debt struct {
	DebtID           string    `json:"debtID"` // UUID
	CreditorEntityID string    `json:"creditorEntityID"`
	DebtorEntityID   string    `json:"debtorEntityID"`
	Amount           int64     `json:"amount"` // outstanding, minor units
	IsPaid           bool      `json:"isPaid"`
	CreatedAt        time.Time `json:"createdAt"`
}
