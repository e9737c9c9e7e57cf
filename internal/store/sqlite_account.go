package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

const accountColumns = `id, owner_id, name, type, currency, balance, credit_limit,
	status, version, created_at, updated_at, deleted_at`

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) (int64, error) {
	stmt, err := s.db.PrepareContext(ctx, `
        INSERT INTO accounts (owner_id, name, type, currency, balance, credit_limit, status, version, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	status := acc.Status
	if status == "" {
		status = constants.AccountStatusActive
	}
	now := time.Now().UTC()

	var newID int64
	err = stmt.QueryRowContext(ctx,
		acc.OwnerID, acc.Name, acc.Type, acc.Currency,
		acc.Balance.Round(constants.MoneyScale), acc.CreditLimit,
		status, now, now,
	).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create account '%s': %w", acc.Name, ErrAccountExists)
		}
		return 0, fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return newID, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ? AND deleted_at IS NULL", id)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %d: %w", id, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE name = ? AND deleted_at IS NULL", name)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s' : %w", name, err)
	}
	return acc, nil
}

// GetAccountForUpdate must be called on a repository handed out by ExecTx.
// The unit was opened with BEGIN IMMEDIATE, so no other writer can touch the
// row until the unit ends; the returned Version is what UpdateAccountBalance
// expects.
func (s *Store) GetAccountForUpdate(ctx context.Context, id int64) (*model.Account, error) {
	if !s.inTx() {
		return nil, fmt.Errorf("GetAccountForUpdate called outside of ExecTx")
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) ListAccounts(ctx context.Context, includeInactive bool) ([]*model.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE deleted_at IS NULL"
	args := []any{}
	if !includeInactive {
		query += " AND status = ?"
		args = append(args, constants.AccountStatusActive)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// UpdateAccountBalance writes balance only if the row still carries
// expectedVersion, and bumps the version.
func (s *Store) UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal, expectedVersion int64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET balance = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ? AND deleted_at IS NULL
	`, balance.Round(constants.MoneyScale), time.Now().UTC(), id, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", id, err)
	}
	if err := checkAffected(result, ErrVersionConflict); err != nil {
		return fmt.Errorf("account %d at version %d: %w", id, expectedVersion, err)
	}
	return nil
}

func (s *Store) UpdateAccountStatus(ctx context.Context, id int64, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	if err := checkAffected(result, ErrRecordNotFound); err != nil {
		return fmt.Errorf("account with ID %d: %w", id, err)
	}
	return nil
}

func (s *Store) SoftDeleteAccount(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET deleted_at = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, constants.AccountStatusInactive, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if err := checkAffected(result, ErrRecordNotFound); err != nil {
		return fmt.Errorf("account with ID %d: %w", id, err)
	}
	return nil
}

// CountAccountReferences counts live transactions that touch the account on
// either side.
func (s *Store) CountAccountReferences(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM transactions
		WHERE deleted_at IS NULL
		  AND (source_account_id = ? OR destination_account_id = ?)
	`, id, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count references of account %d: %w", id, err)
	}
	return count, nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var deletedAt sql.NullTime

	err := row.Scan(
		&acc.ID, &acc.OwnerID, &acc.Name, &acc.Type, &acc.Currency,
		&acc.Balance, &acc.CreditLimit,
		&acc.Status, &acc.Version, &acc.CreatedAt, &acc.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.DeletedAt = timePtr(deletedAt)
	return acc, nil
}
