package baccarat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/rng"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// Indexes into cards.Standard(): hearts 2..A occupy 0..12.
const (
	heartTwo   = 0
	heartFive  = 3
	heartSeven = 5
	heartEight = 6
	heartNine  = 7
	heartTen   = 8
	heartKing  = 11
	heartAce   = 12
)

func h(ranks ...cards.Rank) []cards.Card {
	hand := make([]cards.Card, len(ranks))
	for i, r := range ranks {
		hand[i] = cards.New(r, cards.Clubs)
	}
	return hand
}

func TestPoint(t *testing.T) {
	testCases := []struct {
		name     string
		hand     []cards.Card
		expected int
	}{
		{name: "faces are zero", hand: h(cards.King, cards.Queen), expected: 0},
		{name: "ace is one", hand: h(cards.Ace, cards.Two), expected: 3},
		{name: "wraps", hand: h(cards.Nine, cards.Eight), expected: 7},
		{name: "ten is zero", hand: h(cards.Ten, cards.Nine), expected: 9},
		{name: "three cards", hand: h(cards.Seven, cards.Seven, cards.Seven), expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Point(tc.hand))
		})
	}
}

func TestShouldDraw(t *testing.T) {
	assert.True(t, ShouldDraw(h(cards.Ace, cards.Two)), "3 draws")
	assert.True(t, ShouldDraw(h(cards.Two, cards.Three)), "5 draws")
	assert.True(t, ShouldDraw(h(cards.King, cards.Ten)), "0 draws")
	assert.False(t, ShouldDraw(h(cards.Four, cards.Two)), "6 stands")
	assert.False(t, ShouldDraw(h(cards.Five, cards.Two)), "7 stands")
	assert.False(t, ShouldDraw(h(cards.Two, cards.Ace, cards.King)), "third card already taken")
}

func TestWinner(t *testing.T) {
	assert.Equal(t, SidePlayer, Winner(h(cards.Nine), h(cards.Eight)))
	assert.Equal(t, SideBanker, Winner(h(cards.Two), h(cards.Eight)))
	assert.Equal(t, SideTie, Winner(h(cards.King, cards.Six), h(cards.Six)))
}

func TestSides(t *testing.T) {
	assert.Equal(t, int64(2), SidePlayer.Multiplier())
	assert.Equal(t, int64(2), SideBanker.Multiplier())
	assert.Equal(t, int64(9), SideTie.Multiplier())
	assert.Equal(t, int64(0), Side(0).Multiplier())

	side, err := ParseSide("Banker")
	require.NoError(t, err)
	assert.Equal(t, SideBanker, side)
	_, err = ParseSide("dragon")
	assert.Error(t, err)
	assert.False(t, Side(0).Valid())
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

func (s *GameTestSuite) newGame(draws ...int) *Game {
	table := common.NewTable(entities.GameBaccarat, s.ledger, common.WithLogger(logging.NewDiscard()))
	return NewGame(table, rng.NewFixed(draws...))
}

func (s *GameTestSuite) TestPlayerThreeDrawsBankerSevenStands() {
	// player 2, banker 7, player A, banker 10, player third 5
	game := s.newGame(heartTwo, heartSeven, heartAce, heartTen, heartFive)

	coup, err := game.Deal(s.ctx, 100, SidePlayer)
	s.Require().NoError(err)

	s.Len(coup.Player, 3)
	s.Len(coup.Banker, 2)
	s.Equal(8, coup.PlayerPoint)
	s.Equal(7, coup.BankerPoint)
	s.Equal(SidePlayer, coup.Winner)
	s.True(coup.Won)
	s.Equal(int64(200), coup.Payout)
	s.Equal(int64(10100), s.ledger.Chips())
}

func (s *GameTestSuite) TestBothSidesDraw() {
	// player 2+2=4, banker 10+K=0, player third 9, banker third 8
	game := s.newGame(heartTwo, heartTen, heartTwo, heartKing, heartNine, heartEight)

	coup, err := game.Deal(s.ctx, 100, SideBanker)
	s.Require().NoError(err)

	s.Len(coup.Player, 3)
	s.Len(coup.Banker, 3)
	s.Equal(3, coup.PlayerPoint)
	s.Equal(8, coup.BankerPoint)
	s.Equal(SideBanker, coup.Winner)
	s.Equal(int64(200), coup.Payout)
}

func (s *GameTestSuite) TestTiePaysNine() {
	// player 9+K=9, banker 10+9=9, nobody draws
	game := s.newGame(heartNine, heartTen, heartKing, heartNine)

	coup, err := game.Deal(s.ctx, 100, SideTie)
	s.Require().NoError(err)

	s.Equal(SideTie, coup.Winner)
	s.Equal(int64(900), coup.Payout)
	s.Equal(int64(10800), s.ledger.Chips())
}

func (s *GameTestSuite) TestTieLosesSideBets() {
	game := s.newGame(heartNine, heartTen, heartKing, heartNine)

	coup, err := game.Deal(s.ctx, 100, SidePlayer)
	s.Require().NoError(err)

	s.False(coup.Won)
	s.Equal(int64(0), coup.Payout)
	s.Equal(int64(9900), s.ledger.Chips())
	s.Equal(int64(LossXP), s.ledger.User().XP)
}

func (s *GameTestSuite) TestRejectsWithoutDebit() {
	game := s.newGame()

	_, err := game.Deal(s.ctx, 100, Side(0))
	s.ErrorIs(err, ErrInvalidBetType)

	_, err = game.Deal(s.ctx, ledger.InitialChips+1, SideTie)
	s.ErrorIs(err, common.ErrInsufficientFunds)

	s.Equal(ledger.InitialChips, s.ledger.Chips())
	_, ok := game.Last()
	s.False(ok)
}
