package wallet

import "context"

// Account is the ledger the store credits. *ledger.Ledger satisfies it.
type Account interface {
	AccountID() string
	Grant(ctx context.Context, amount int64, reason string)
}
