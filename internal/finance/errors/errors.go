package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}

// ConflictError covers referential protection: deletes and type changes
// rejected because dependent rows still exist.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	ok := errors.As(err, &conflictError)
	return ok
}

var ErrAccountNotFound = NewNotFoundError("Account not found")
var ErrCategoryNotFound = NewNotFoundError("Category not found")
var ErrTransactionNotFound = NewNotFoundError("Transaction not found")

var ErrInsufficientFunds = NewValidationError("Insufficient balance in the selected account")
var ErrCategoryTypeMismatch = NewValidationError("The selected category must match the transaction type")

var ErrAccountHasTransactions = NewConflictError("Cannot delete this account because transactions reference it")
var ErrCategoryHasTransactions = NewConflictError("Cannot delete this category because transactions reference it")
var ErrCategoryTypeLocked = NewConflictError("Cannot change the category type while transactions reference it")
