package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

const transactionColumns = `id, reference, owner_id, category_id, type, amount, currency,
	exchange_rate, date, source_account_id, destination_account_id,
	source_amount, destination_amount, description, installments,
	remaining_installments, monthly_amount, is_subscription, subscription_period,
	next_payment_date, parent_transaction_id, status,
	created_at, updated_at, deleted_at`

func (s *Store) CreateTransaction(ctx context.Context, tx *model.Transaction) (int64, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO transactions (
			reference, owner_id, category_id, type, amount, currency, exchange_rate,
			date, source_account_id, destination_account_id, source_amount, destination_amount,
			description, installments, remaining_installments, monthly_amount, is_subscription,
			subscription_period, next_payment_date, parent_transaction_id, status,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare transaction SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	status := tx.Status
	if status == "" {
		status = constants.StatusCompleted
	}
	now := time.Now().UTC()

	var newID int64
	err = stmt.QueryRowContext(ctx,
		tx.Reference, tx.OwnerID, nullInt64(tx.CategoryID), tx.Type, tx.Amount, tx.Currency, tx.ExchangeRate,
		dateOnly(tx.Date), nullInt64(tx.SourceAccountID), nullInt64(tx.DestinationAccountID),
		tx.SourceAmount, tx.DestinationAmount, tx.Description,
		nullCount(tx.Installments), nullCount(tx.RemainingInstallments), tx.MonthlyAmount, tx.IsSubscription,
		nullString(tx.SubscriptionPeriod), nullDate(tx.NextPaymentDate), nullInt64(tx.ParentTransactionID), status,
		now, now,
	).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("reference %q: %w", tx.Reference, ErrDuplicateReference)
		}
		if isConstraintViolation(err) {
			return 0, fmt.Errorf("failed to insert transaction: %w: %v", ErrConstraintViolation, err)
		}
		return 0, fmt.Errorf("failed to insert transaction : %w", err)
	}

	return newID, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND deleted_at IS NULL", id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return tx, nil
}

// ListTransactions returns live transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = constants.DefaultListLimit
	}

	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if filter.AccountID > 0 {
		where = append(where, "(source_account_id = ? OR destination_account_id = ?)")
		args = append(args, filter.AccountID, filter.AccountID)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	args = append(args, limit)

	query := "SELECT " + transactionColumns + " FROM transactions WHERE " +
		strings.Join(where, " AND ") + " ORDER BY date DESC, id DESC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTransactions(rows)
}

// UpdateTransaction rewrites every mutable column of tx.
func (s *Store) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET owner_id = ?, category_id = ?, type = ?, amount = ?, currency = ?, exchange_rate = ?,
		    date = ?, source_account_id = ?, destination_account_id = ?,
		    source_amount = ?, destination_amount = ?, description = ?,
		    installments = ?, remaining_installments = ?, monthly_amount = ?, is_subscription = ?,
		    subscription_period = ?, next_payment_date = ?, parent_transaction_id = ?, status = ?,
		    updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`,
		tx.OwnerID, nullInt64(tx.CategoryID), tx.Type, tx.Amount, tx.Currency, tx.ExchangeRate,
		dateOnly(tx.Date), nullInt64(tx.SourceAccountID), nullInt64(tx.DestinationAccountID),
		tx.SourceAmount, tx.DestinationAmount, tx.Description,
		nullCount(tx.Installments), nullCount(tx.RemainingInstallments), tx.MonthlyAmount, tx.IsSubscription,
		nullString(tx.SubscriptionPeriod), nullDate(tx.NextPaymentDate), nullInt64(tx.ParentTransactionID), tx.Status,
		time.Now().UTC(), tx.ID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("failed to update transaction: %w: %v", ErrConstraintViolation, err)
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if err := checkAffected(result, ErrRecordNotFound); err != nil {
		return fmt.Errorf("transaction with ID %d: %w", tx.ID, err)
	}
	return nil
}

func (s *Store) SoftDeleteTransaction(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := checkAffected(result, ErrRecordNotFound); err != nil {
		return fmt.Errorf("transaction with ID %d: %w", id, err)
	}
	return nil
}

// GetDueSubscriptions returns live subscription templates whose next payment
// falls on or before asOf.
func (s *Store) GetDueSubscriptions(ctx context.Context, asOf time.Time) ([]*model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+transactionColumns+`
		FROM transactions
		WHERE deleted_at IS NULL
		  AND is_subscription = 1
		  AND next_payment_date IS NOT NULL
		  AND next_payment_date <= ?
		ORDER BY next_payment_date, id
	`, dateOnly(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to query due subscriptions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var (
		categoryID, sourceID, destinationID, parentID sql.NullInt64
		installments, remaining                       sql.NullInt64
		period                                        sql.NullString
		nextPayment, deletedAt                        sql.NullTime
	)

	err := row.Scan(
		&tx.ID, &tx.Reference, &tx.OwnerID, &categoryID, &tx.Type, &tx.Amount, &tx.Currency,
		&tx.ExchangeRate, &tx.Date, &sourceID, &destinationID,
		&tx.SourceAmount, &tx.DestinationAmount, &tx.Description, &installments,
		&remaining, &tx.MonthlyAmount, &tx.IsSubscription, &period, &nextPayment, &parentID, &tx.Status,
		&tx.CreatedAt, &tx.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.CategoryID = int64Ptr(categoryID)
	tx.SourceAccountID = int64Ptr(sourceID)
	tx.DestinationAccountID = int64Ptr(destinationID)
	tx.ParentTransactionID = int64Ptr(parentID)
	tx.Installments = int(installments.Int64)
	tx.RemainingInstallments = int(remaining.Int64)
	tx.SubscriptionPeriod = period.String
	tx.NextPaymentDate = timePtr(nextPayment)
	tx.DeletedAt = timePtr(deletedAt)
	return tx, nil
}
