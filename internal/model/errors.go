package model

import "errors"

var (
	ErrConfigInvalid         = errors.New("invalid case configuration")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidIdempotencyKey = errors.New("invalid idempotency key")
	ErrDuplicateEvent        = errors.New("duplicate credit event")
	ErrEntropyUnavailable    = errors.New("entropy source unavailable")
	ErrSecurityBlock         = errors.New("withdrawal blocked by risk policy")
	ErrLedgerConflict        = errors.New("ledger conflict")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidReason         = errors.New("invalid event reason")
	ErrUserNotFound          = errors.New("user not found")
	ErrCaseNotFound          = errors.New("case not found")
	ErrOpeningNotFound       = errors.New("opening not found")
	ErrEventNotFound         = errors.New("credit event not found")
	ErrWithdrawalNotFound    = errors.New("withdrawal request not found")
)
