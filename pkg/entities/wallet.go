package entities

import (
	"time"
)

// TransactionType represents the type of chip movement
type TransactionType string

const (
	TransactionTypeBet    TransactionType = "BET"
	TransactionTypePayout TransactionType = "PAYOUT"
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeTopUp  TransactionType = "TOPUP"
)

// Transaction represents a single chip movement on a ledger
type Transaction struct {
	ID           string          // Unique identifier
	AccountID    string          // Account whose ledger moved
	Amount       int64           // Positive for credits, negative for debits
	Type         TransactionType // Type of transaction
	Description  string          // Human-readable description
	Timestamp    time.Time       // When the transaction occurred
	BalanceAfter int64           // Balance after this transaction
}
