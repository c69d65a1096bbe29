package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/repositories/journal"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

type WalletServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	journal *journal.MemoryRepository
	ledger  *ledger.Ledger
	service *Service
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.journal = journal.NewMemoryRepository()
	s.ledger = ledger.Load(s.ctx, storage.NewMemoryStore(),
		ledger.WithJournal(s.journal),
		ledger.WithLogger(logging.NewDiscard()),
	)
	s.service = NewService(s.journal, logging.NewDiscard())
}

func (s *WalletServiceTestSuite) TestPacks() {
	packs := s.service.Packs()
	s.Require().Len(packs, 4)

	chips := make([]int64, len(packs))
	for i, p := range packs {
		chips[i] = p.Chips
	}
	s.Equal([]int64{1000, 5000, 10000, 50000}, chips)
	s.True(packs[1].Popular)

	// callers get a copy
	packs[0].Chips = 1
	s.Equal(int64(1000), s.service.Packs()[0].Chips)
}

func (s *WalletServiceTestSuite) TestPurchase() {
	pack, err := s.service.Purchase(s.ctx, s.ledger, "mega")
	s.Require().NoError(err)
	s.Equal(int64(50000), pack.Chips)
	s.Equal(int64(60000), s.ledger.Chips())
	s.Equal(int64(60000), s.ledger.User().Stats.HighestBalance)

	txs, err := s.service.Transactions(s.ctx, s.ledger.AccountID(), 10)
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(entities.TransactionTypeTopUp, txs[0].Type)
	s.Equal(int64(50000), txs[0].Amount)
	s.Equal(int64(60000), txs[0].BalanceAfter)
}

func (s *WalletServiceTestSuite) TestPurchaseUnknownPack() {
	_, err := s.service.Purchase(s.ctx, s.ledger, "whale")
	s.True(types.IsGameError(err, types.ErrNotFound))
	s.Equal(ledger.InitialChips, s.ledger.Chips())
}

func (s *WalletServiceTestSuite) TestClaimFree() {
	s.Equal(FreeChips, s.service.ClaimFree(s.ctx, s.ledger))
	s.Equal(int64(10500), s.ledger.Chips())
}

func (s *WalletServiceTestSuite) TestTransactionsWithoutJournal() {
	service := NewService(nil, logging.NewDiscard())
	txs, err := service.Transactions(s.ctx, "acct", 5)
	s.Require().NoError(err)
	s.Empty(txs)
}
