package roulette

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/rng"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

func TestClassify(t *testing.T) {
	reds := 0
	blacks := 0
	for n := 1; n < Pockets; n++ {
		switch Classify(n).Color {
		case Red:
			reds++
		case Black:
			blacks++
		default:
			t.Errorf("pocket %d is green", n)
		}
	}
	assert.Equal(t, 18, reds)
	assert.Equal(t, 18, blacks)

	assert.Equal(t, Red, Classify(1).Color)
	assert.Equal(t, Black, Classify(2).Color)
	assert.Equal(t, Red, Classify(36).Color)
	assert.Equal(t, Black, Classify(10).Color)
	assert.Equal(t, "0 green", Classify(0).String())
}

func TestZeroLosesEveryBet(t *testing.T) {
	zero := Classify(0)
	assert.False(t, zero.IsEven())
	assert.False(t, zero.IsOdd())
	for _, b := range []BetType{BetRed, BetBlack, BetEven, BetOdd} {
		assert.False(t, b.Wins(zero), b.String())
	}
}

func TestWins(t *testing.T) {
	testCases := []struct {
		number  int
		betType BetType
		wins    bool
	}{
		{number: 1, betType: BetRed, wins: true},
		{number: 1, betType: BetOdd, wins: true},
		{number: 1, betType: BetBlack, wins: false},
		{number: 1, betType: BetEven, wins: false},
		{number: 2, betType: BetBlack, wins: true},
		{number: 2, betType: BetEven, wins: true},
		{number: 19, betType: BetRed, wins: true},
		{number: 20, betType: BetRed, wins: false},
		{number: 36, betType: BetEven, wins: true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.wins, tc.betType.Wins(Classify(tc.number)), "%s on %d", tc.betType, tc.number)
	}
}

func TestParseBetType(t *testing.T) {
	for _, b := range []BetType{BetRed, BetBlack, BetEven, BetOdd} {
		parsed, err := ParseBetType(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}

	parsed, err := ParseBetType("RED")
	require.NoError(t, err)
	assert.Equal(t, BetRed, parsed)

	_, err = ParseBetType("green")
	assert.Error(t, err)
	assert.False(t, BetType(0).Valid())
	assert.Equal(t, "BetType(0)", BetType(0).String())
}

type GameTestSuite struct {
	suite.Suite
	ctx    context.Context
	ledger *ledger.Ledger
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

func (s *GameTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ledger = ledger.Load(s.ctx, storage.NewMemoryStore(), ledger.WithLogger(logging.NewDiscard()))
}

func (s *GameTestSuite) newGame(pockets ...int) *Game {
	table := common.NewTable(entities.GameRoulette, s.ledger, common.WithLogger(logging.NewDiscard()))
	return NewGame(table, rng.NewFixed(pockets...))
}

func (s *GameTestSuite) TestWinPaysEvenMoney() {
	game := s.newGame(7)

	spin, err := game.Spin(s.ctx, 100, BetRed)
	s.Require().NoError(err)
	s.Equal(7, spin.Pocket.Number)
	s.True(spin.Won)
	s.Equal(int64(200), spin.Payout)
	s.Equal(int64(10100), s.ledger.Chips())
	s.Equal(int64(WinXP)+achievementXP(s.ledger), s.ledger.User().XP)
}

func achievementXP(l *ledger.Ledger) int64 {
	var total int64
	for _, id := range l.User().UnlockedAchievements {
		if def, ok := l.Registry().Get(id); ok {
			total += def.XPReward
		}
	}
	return total
}

func (s *GameTestSuite) TestZeroLoses() {
	game := s.newGame(0)

	spin, err := game.Spin(s.ctx, 100, BetEven)
	s.Require().NoError(err)
	s.False(spin.Won)
	s.Equal(Green, spin.Pocket.Color)
	s.Equal(int64(0), spin.Payout)
	s.Equal(int64(9900), s.ledger.Chips())
	s.Equal(int64(LossXP), s.ledger.User().XP)

	last, ok := game.Last()
	s.True(ok)
	s.Equal(spin, last)
}

func (s *GameTestSuite) TestRejectsWithoutDebit() {
	game := s.newGame(1)

	_, err := game.Spin(s.ctx, 100, BetType(0))
	s.ErrorIs(err, ErrInvalidBetType)

	_, err = game.Spin(s.ctx, ledger.InitialChips+1, BetOdd)
	s.ErrorIs(err, common.ErrInsufficientFunds)

	_, err = game.Spin(s.ctx, -1, BetOdd)
	s.ErrorIs(err, common.ErrInvalidBet)

	s.Equal(ledger.InitialChips, s.ledger.Chips())
	_, ok := game.Last()
	s.False(ok)
}

func (s *GameTestSuite) TestSpinIsUniformOverPockets() {
	table := common.NewTable(entities.GameRoulette, s.ledger, common.WithLogger(logging.NewDiscard()))
	game := NewGame(table, rng.NewSeeded(99))

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		spin, err := game.Spin(s.ctx, 1, BetRed)
		s.Require().NoError(err)
		s.GreaterOrEqual(spin.Pocket.Number, 0)
		s.Less(spin.Pocket.Number, Pockets)
		seen[spin.Pocket.Number] = true
	}
	s.Len(seen, Pockets)
}
