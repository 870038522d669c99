package domain

import "time"

// OperationKind enumerates the supported ledger operations. The wire values
// are kept stable because they are persisted and exposed to clients.
type OperationKind string

const (
	// OpPurchase spends entity cash on stock ("zakup").
	OpPurchase OperationKind = "zakup"
	// OpExternalExpense spends entity cash with no offsetting credit ("storonnie").
	OpExternalExpense OperationKind = "storonnie"
	// OpIncomeMonthly credits entity cash with a recurring income.
	OpIncomeMonthly OperationKind = "prihod_mes"
	// OpIncomeFast credits entity cash with a one-off quick income.
	OpIncomeFast OperationKind = "prihod_fast"
	// OpIncomeExternal credits entity cash with third-party income.
	OpIncomeExternal OperationKind = "prihod_sto"
	// OpWithdrawBank moves funds from the bank balance to the intermediate
	// debit balance ("snyat_rs").
	OpWithdrawBank OperationKind = "snyat_rs"
	// OpWithdrawDebit moves funds from the intermediate debit balance to
	// entity cash ("snyat_debit").
	OpWithdrawDebit OperationKind = "snyat_debit"
	// OpDepositBank moves entity cash back to the bank balance ("vnesti_rs").
	OpDepositBank OperationKind = "vnesti_rs"
	// OpLoan moves cash from one entity to another and opens a debt ("odolzhit").
	OpLoan OperationKind = "odolzhit"
	// OpRepayment settles part or all of an open debt ("pogasit").
	OpRepayment OperationKind = "pogasit"
)

// IncomeKinds and ExpenseKinds group operation kinds for period reporting.
var (
	IncomeKinds  = []OperationKind{OpIncomeMonthly, OpIncomeFast, OpIncomeExternal}
	ExpenseKinds = []OperationKind{OpPurchase, OpExternalExpense}
)

// KnownOperationKinds lists the kinds accepted by the operation engine's
// Execute entry point. OpRepayment is driven by the dedicated repayment
// operation and is deliberately absent.
var KnownOperationKinds = []OperationKind{
	OpPurchase,
	OpExternalExpense,
	OpIncomeMonthly,
	OpIncomeFast,
	OpIncomeExternal,
	OpWithdrawBank,
	OpWithdrawDebit,
	OpDepositBank,
	OpLoan,
}

// Label returns a human readable name for the kind, used by the bot and
// history views.
func (k OperationKind) Label() string {
	switch k {
	case OpPurchase:
		return "Purchase"
	case OpExternalExpense:
		return "External expense"
	case OpIncomeMonthly:
		return "Monthly income"
	case OpIncomeFast:
		return "Quick income"
	case OpIncomeExternal:
		return "External income"
	case OpWithdrawBank:
		return "Withdraw bank → debit"
	case OpWithdrawDebit:
		return "Withdraw debit → cash"
	case OpDepositBank:
		return "Deposit to bank"
	case OpLoan:
		return "Loan"
	case OpRepayment:
		return "Debt repayment"
	}
	return string(k)
}

// Transaction is one immutable ledger entry. Entries are append-only and are
// the sole source of truth for historical reporting; they are never updated
// or deleted.
type Transaction struct {
	TransactionID string        `json:"transactionID"` // UUID
	UserID        int64         `json:"userID"`        // acting user
	EntityID      *string       `json:"entityID,omitempty"`
	TargetID      *string       `json:"targetID,omitempty"` // counterparty entity for loans
	Kind          OperationKind `json:"kind"`
	Amount        int64         `json:"amount"` // always positive
	Comment       string        `json:"comment,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
