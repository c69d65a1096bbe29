// Package journal records every chip movement on a ledger.
package journal

import (
	"context"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// Repository defines the interface for transaction journal operations
type Repository interface {
	// AddTransaction records a new transaction, assigning ID and Timestamp when empty
	AddTransaction(ctx context.Context, transaction *entities.Transaction) error

	// GetTransactions retrieves recent transactions for an account, newest first
	GetTransactions(ctx context.Context, accountID string, limit int) ([]*entities.Transaction, error)

	// GetTransactionsByType retrieves transactions of a specific type, newest first
	GetTransactionsByType(ctx context.Context, accountID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error)

	// Close releases resources
	Close() error
}
