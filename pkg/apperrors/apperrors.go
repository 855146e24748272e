package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors the services branch on.
var (
	ErrNotFound             = errors.New("record not found")
	ErrVersionMismatch      = errors.New("record version mismatch")
	ErrOverpayment          = errors.New("payment exceeds amount due")
	ErrUnsupportedFrequency = errors.New("unsupported payment frequency")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

// Error codes surfaced to API clients.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeOverpayment          = "OVERPAYMENT"
	CodeUnsupportedFrequency = "UNSUPPORTED_FREQUENCY"
	CodeInvalidPayment       = "INVALID_PAYMENT_AMOUNT"
	CodePersistence          = "PERSISTENCE_ERROR"
	CodeCache                = "CACHE_ERROR"
)

// AppError carries a machine-readable code alongside the message shown to
// the user and the underlying cause.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the error code, defaulting to PERSISTENCE_ERROR for
// anything untagged that crossed the store boundary.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodePersistence
}

func WrapValidation(message string, err error) *AppError {
	return New(CodeValidation, message, err)
}

func WrapNotFound(what string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", what), ErrNotFound)
}

// WrapConflict tags a lost optimistic-concurrency race on an installment
// update.
func WrapConflict(what string) *AppError {
	return New(CodeConflict, fmt.Sprintf("%s was modified concurrently, reload and retry", what), ErrVersionMismatch)
}

func WrapOverpayment(due, attempted string) *AppError {
	return New(CodeOverpayment,
		fmt.Sprintf("payment would raise amount paid to %s, above the %s due", attempted, due),
		ErrOverpayment)
}

func WrapUnsupportedFrequency(frequency string) *AppError {
	return New(CodeUnsupportedFrequency,
		fmt.Sprintf("payment frequency %q is not supported", frequency),
		ErrUnsupportedFrequency)
}

func WrapInvalidPaymentAmount(amount string) *AppError {
	return New(CodeInvalidPayment,
		fmt.Sprintf("invalid payment amount %s", amount),
		ErrInvalidPaymentAmount)
}

// WrapPersistence tags any store failure. Store errors are surfaced
// synchronously and never retried.
func WrapPersistence(err error) *AppError {
	return New(CodePersistence, "store operation failed", err)
}

func WrapCache(err error) *AppError {
	return New(CodeCache, "cache operation failed", err)
}
