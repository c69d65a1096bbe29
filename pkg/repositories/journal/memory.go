package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	transactions map[string][]*entities.Transaction
	mu           sync.RWMutex
}

// NewMemoryRepository creates a new in-memory journal
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		transactions: make(map[string][]*entities.Transaction),
	}
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}

	txCopy := *transaction
	r.transactions[transaction.AccountID] = append(r.transactions[transaction.AccountID], &txCopy)

	return nil
}

// GetTransactions retrieves recent transactions for an account
func (r *MemoryRepository) GetTransactions(ctx context.Context, accountID string, limit int) ([]*entities.Transaction, error) {
	return r.filter(accountID, limit, func(*entities.Transaction) bool { return true }), nil
}

// GetTransactionsByType retrieves transactions of a specific type
func (r *MemoryRepository) GetTransactionsByType(ctx context.Context, accountID string, transactionType entities.TransactionType, limit int) ([]*entities.Transaction, error) {
	return r.filter(accountID, limit, func(tx *entities.Transaction) bool {
		return tx.Type == transactionType
	}), nil
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) filter(accountID string, limit int, keep func(*entities.Transaction) bool) []*entities.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := r.transactions[accountID]
	result := make([]*entities.Transaction, 0)
	for i := len(transactions) - 1; i >= 0 && len(result) < limit; i-- {
		if keep(transactions[i]) {
			txCopy := *transactions[i]
			result = append(result, &txCopy)
		}
	}
	return result
}
