package ledger

import "errors"

var (
	// ErrInvalidAmount is returned when a mutation carries a non-positive
	// amount. Direction is encoded only by the transaction type.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidType is returned for an unknown transaction or debt type.
	ErrInvalidType = errors.New("invalid type")

	// ErrDebtNotFound is returned when a payment targets a missing debt.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrMissingPerson is returned when a debt is created without a person.
	ErrMissingPerson = errors.New("debt person is required")

	// ErrNotFoundQuickAction is returned when executing a missing template.
	ErrNotFoundQuickAction = errors.New("quick action not found")
)
