package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// SQLiteRepository implements Repository on the transactions table
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository uses a connection already migrated by db.OpenSQLite
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}

	query := `
		INSERT INTO transactions (
			id, account_id, amount, type, description, timestamp, balance_after
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.AccountID,
		transaction.Amount,
		string(transaction.Type),
		transaction.Description,
		transaction.Timestamp.UTC(),
		transaction.BalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}

	return nil
}

// GetTransactions retrieves recent transactions for an account
func (r *SQLiteRepository) GetTransactions(ctx context.Context, accountID string, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, account_id, amount, type, description, timestamp, balance_after
		FROM transactions
		WHERE account_id = ?
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`
	return r.query(ctx, query, accountID, limit)
}

// GetTransactionsByType retrieves transactions of a specific type
func (r *SQLiteRepository) GetTransactionsByType(ctx context.Context, accountID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, account_id, amount, type, description, timestamp, balance_after
		FROM transactions
		WHERE account_id = ? AND type = ?
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`
	return r.query(ctx, query, accountID, string(transactionType), limit)
}

// Close is a no-op; the connection is owned by the caller
func (r *SQLiteRepository) Close() error {
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entities.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		var tx entities.Transaction
		var txType string
		if err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&tx.Amount,
			&txType,
			&tx.Description,
			&tx.Timestamp,
			&tx.BalanceAfter,
		); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		tx.Type = entities.TransactionType(txType)
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}
