package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/db"
	"github.com/fadedpez/cardroyale/pkg/entities"
)

type JournalTestSuite struct {
	suite.Suite
	newRepo func() (Repository, func())
}

func TestMemoryJournal(t *testing.T) {
	suite.Run(t, &JournalTestSuite{newRepo: func() (Repository, func()) {
		return NewMemoryRepository(), func() {}
	}})
}

func TestSQLiteJournal(t *testing.T) {
	suite.Run(t, &JournalTestSuite{newRepo: func() (Repository, func()) {
		conn, err := db.OpenSQLite(":memory:", logging.NewDiscard())
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		return NewSQLiteRepository(conn), func() { conn.Close() }
	}})
}

func (s *JournalTestSuite) TestAddAndList() {
	repo, cleanup := s.newRepo()
	defer cleanup()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	entries := []*entities.Transaction{
		{AccountID: "acct", Amount: -100, Type: entities.TransactionTypeBet, BalanceAfter: 9900, Timestamp: base},
		{AccountID: "acct", Amount: 200, Type: entities.TransactionTypePayout, BalanceAfter: 10100, Timestamp: base.Add(time.Second)},
		{AccountID: "acct", Amount: 1000, Type: entities.TransactionTypeTopUp, BalanceAfter: 11100, Timestamp: base.Add(2 * time.Second)},
		{AccountID: "other", Amount: -5, Type: entities.TransactionTypeBet, BalanceAfter: 5, Timestamp: base},
	}
	for _, tx := range entries {
		s.Require().NoError(repo.AddTransaction(ctx, tx))
		s.NotEmpty(tx.ID)
	}

	recent, err := repo.GetTransactions(ctx, "acct", 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(entities.TransactionTypeTopUp, recent[0].Type)
	s.Equal(entities.TransactionTypePayout, recent[1].Type)
	s.Equal(int64(11100), recent[0].BalanceAfter)

	bets, err := repo.GetTransactionsByType(ctx, "acct", entities.TransactionTypeBet, 10)
	s.Require().NoError(err)
	s.Require().Len(bets, 1)
	s.Equal(int64(-100), bets[0].Amount)
	s.True(base.Equal(bets[0].Timestamp))

	none, err := repo.GetTransactions(ctx, "nobody", 10)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *JournalTestSuite) TestAssignsIDAndTimestamp() {
	repo, cleanup := s.newRepo()
	defer cleanup()

	tx := &entities.Transaction{AccountID: "acct", Amount: 500, Type: entities.TransactionTypeTopUp, BalanceAfter: 500}
	s.Require().NoError(repo.AddTransaction(context.Background(), tx))

	s.NotEmpty(tx.ID)
	s.False(tx.Timestamp.IsZero())
}
