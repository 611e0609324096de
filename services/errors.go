package services

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit exceeds the targeted
	// sub-balance. Surfaced to the caller, never retried.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPlanNotFound is returned for an unknown or inactive plan id.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrWalletMissing signals a data-integrity violation: a user row without
	// its 1:1 wallet. The affected operation is aborted, others continue.
	ErrWalletMissing = errors.New("wallet missing")

	// ErrAlreadyProcessed guards idempotent transitions (withdrawal approval,
	// Pix webhook redelivery) against double application.
	ErrAlreadyProcessed = errors.New("already processed")
)
