package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced user, entity or debt could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (unknown operation kind, non-positive amount, over-repayment and so on).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates an operation against a resource in a state that
// does not permit it, e.g. repaying an already settled debt.
var ErrInvalidState = errors.New("invalid state")

// ErrInsufficientFunds indicates that a balance precondition check failed.
// Prefer matching with errors.Is; use errors.As with *InsufficientFundsError
// when the current balance is needed for display.
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError carries the balance that failed the sufficiency
// check so adapters can show it to the user.
type InsufficientFundsError struct {
	Current int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: current balance %d", e.Current)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// NewInsufficientFunds builds an InsufficientFundsError for the given balance.
func NewInsufficientFunds(current int64) error {
	return &InsufficientFundsError{Current: current}
}
