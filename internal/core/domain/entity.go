package domain

import "time"

// Entity represents a tracked legal/business unit (an individual
// proprietorship) with three sub-balances:
//
//	bank  — the settlement account at the bank, not directly spendable;
//	debit — an intermediate staging balance between bank and cash,
//	        modelling withdrawal latency;
//	cash  — liquid, immediately spendable funds.
//
// All balances are non-negative integers in minor currency units. Balances
// are mutated only by the operation engine.
type Entity struct {
	EntityID       string    `json:"entityID"` // UUID
	Name           string    `json:"name"`     // unique across all entities
	BankBalance    int64     `json:"bankBalance"`
	DebitBalance   int64     `json:"debitBalance"`
	CashBalance    int64     `json:"cashBalance"`
	InitialCapital int64     `json:"initialCapital"` // informational, set at creation
	CreatedAt      time.Time `json:"createdAt"`
}
