// Package wallet is the chip store: fixed chip packs and a free reward. No
// money changes hands; a purchase simply grants the chips.
package wallet

import (
	"context"
	"fmt"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/repositories/journal"
)

// FreeChips is the reward for the free offer
const FreeChips int64 = 500

// Pack is a chip bundle on sale
type Pack struct {
	ID      string
	Chips   int64
	Price   string // display only
	Popular bool
}

var packs = []Pack{
	{ID: "small", Chips: 1000, Price: "$0.99"},
	{ID: "medium", Chips: 5000, Price: "$4.99", Popular: true},
	{ID: "large", Chips: 10000, Price: "$9.99"},
	{ID: "mega", Chips: 50000, Price: "$49.99"},
}

// Service handles chip store logic
type Service struct {
	journal journal.Repository
	log     *logging.Logger
}

// NewService creates a store. journal may be nil when transactions are not kept.
func NewService(journal journal.Repository, logger *logging.Logger) *Service {
	return &Service{
		journal: journal,
		log:     logger.Or().WithPrefix("store"),
	}
}

// Packs lists the packs on sale
func (s *Service) Packs() []Pack {
	return append([]Pack(nil), packs...)
}

// Pack looks up a pack by id
func (s *Service) Pack(id string) (Pack, error) {
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, types.NewGameError(types.ErrNotFound, fmt.Sprintf("no chip pack named %q", id))
}

// Purchase grants the chips of the pack
func (s *Service) Purchase(ctx context.Context, account Account, packID string) (Pack, error) {
	pack, err := s.Pack(packID)
	if err != nil {
		return Pack{}, err
	}

	account.Grant(ctx, pack.Chips, "pack_"+pack.ID)
	s.log.Info("Granted %d chips from %s pack to %s", pack.Chips, pack.ID, account.AccountID())
	return pack, nil
}

// ClaimFree grants the free reward and returns its size
func (s *Service) ClaimFree(ctx context.Context, account Account) int64 {
	account.Grant(ctx, FreeChips, "free")
	s.log.Info("Granted %d free chips to %s", FreeChips, account.AccountID())
	return FreeChips
}

// Transactions returns the newest chip movements of an account
func (s *Service) Transactions(ctx context.Context, accountID string, limit int) ([]*entities.Transaction, error) {
	if s.journal == nil {
		return []*entities.Transaction{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.journal.GetTransactions(ctx, accountID, limit)
}
