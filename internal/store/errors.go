package store

import (
	"errors"

	sqlite "github.com/mattn/go-sqlite3"
)

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrDuplicateReference  = errors.New("transaction reference already exists")
	ErrVersionConflict     = errors.New("record was modified concurrently")
	ErrNestedTx            = errors.New("store is already in a transaction")
)

// IsRetryable reports whether err came from a lost optimistic-version race
// or from SQLite refusing the write lock.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrVersionConflict) {
		return true
	}
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.Code, sqlite.ErrBusy) || errors.Is(sqliteErr.Code, sqlite.ErrLocked)
	}
	return false
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.ExtendedCode, sqlite.ErrConstraintUnique)
	}
	return false
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.Code, sqlite.ErrConstraint)
	}
	return false
}
