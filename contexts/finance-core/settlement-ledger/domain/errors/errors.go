package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("settlement input is invalid")
	ErrInvalidAmount       = errors.New("transfer amount must be positive")
	ErrSameAccount         = errors.New("transfer endpoints must differ")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrIdempotencyConflict = errors.New("idempotency key already used with different payload")
)
