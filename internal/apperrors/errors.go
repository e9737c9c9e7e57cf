// Package apperrors defines the typed failures the ledger surfaces to its callers.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownType         = errors.New("unknown type")
	ErrPersistence         = errors.New("persistence failure")
	ErrConflict            = errors.New("conflict")
	ErrNotFound            = errors.New("not found")
)

// ValidationError reports a missing or contradictory input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientBalanceError reports that a source account cannot cover a
// request, or that a credit card would go over its limit.
type InsufficientBalanceError struct {
	AccountID int64
	Requested decimal.Decimal
	Available decimal.Decimal
	Currency  string
	Reason    string
}

func (e *InsufficientBalanceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "insufficient balance"
	}
	return fmt.Sprintf("account %d: %s (requested %s %s, available %s %s)",
		e.AccountID, reason,
		e.Requested.StringFixed(2), e.Currency,
		e.Available.StringFixed(2), e.Currency)
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// UnknownTypeError reports a transaction or account type with no matching rule.
type UnknownTypeError struct {
	Kind  string
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Value)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

func UnknownTransactionType(t string) error {
	return &UnknownTypeError{Kind: "transaction", Value: t}
}

func UnknownAccountType(t string) error {
	return &UnknownTypeError{Kind: "account", Value: t}
}

// PersistenceError wraps a storage failure inside an atomic unit.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// ConflictError reports a write refused because of the current state of
// another record, or a write that lost too many concurrent races.
type ConflictError struct {
	Resource string
	ID       int64
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Resource, e.ID, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsTyped reports whether err already belongs to the taxonomy above.
func IsTyped(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrInsufficientBalance,
		ErrUnknownType,
		ErrPersistence,
		ErrConflict,
		ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
