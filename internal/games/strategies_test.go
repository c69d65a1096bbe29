package games

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/casino"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/blackjack"
	"github.com/fadedpez/cardroyale/pkg/games/poker"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
	"github.com/fadedpez/cardroyale/pkg/rng"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

func hand(ranks ...cards.Rank) []cards.Card {
	suits := []cards.Suit{cards.Hearts, cards.Spades, cards.Clubs, cards.Diamonds, cards.Hearts}
	h := make([]cards.Card, len(ranks))
	for i, r := range ranks {
		h[i] = cards.New(r, suits[i])
	}
	return h
}

func TestHolds(t *testing.T) {
	tests := []struct {
		name string
		hand []cards.Card
		want []int
	}{
		{name: "nothing", hand: hand(cards.Two, cards.Five, cards.Nine, cards.Jack, cards.King), want: nil},
		{name: "pair", hand: hand(cards.Two, cards.Nine, cards.Five, cards.Nine, cards.King), want: []int{1, 3}},
		{name: "two pair", hand: hand(cards.Two, cards.Nine, cards.Two, cards.Nine, cards.King), want: []int{0, 1, 2, 3}},
		{name: "straight", hand: hand(cards.Two, cards.Three, cards.Four, cards.Five, cards.Six), want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Holds(tt.hand))
		})
	}
}

func newSession(t *testing.T, recorder history.Recorder) *casino.Session {
	return casino.NewSession(context.Background(), "local", casino.Deps{
		Store:          storage.NewMemoryStore(),
		History:        recorder,
		Logger:         logging.NewDiscard(),
		PrimaryAccount: "local",
		NewSource:      func() rng.Source { return rng.NewSeeded(7) },
		Clock:          quartz.NewMock(t),
	})
}

func TestDefaultPlaysEveryGame(t *testing.T) {
	ctx := context.Background()
	repo := history.NewMemoryRepository()
	session := newSession(t, repo)
	registry := Default(Options{})

	require.Equal(t, entities.GameTypes, registry.List())
	for _, game := range registry.List() {
		strategy, err := registry.Get(game)
		require.NoError(t, err)

		line, err := strategy.Play(ctx, session, 10)
		require.NoError(t, err, string(game))
		assert.NotEmpty(t, line)
	}

	assert.Equal(t, blackjack.PhaseGameOver, session.Blackjack.Phase())
	assert.Equal(t, poker.PhaseGameOver, session.Poker.Phase())

	summary, err := repo.GetSummary(ctx, "local")
	require.NoError(t, err)
	assert.Len(t, summary, len(entities.GameTypes))
}

func TestStrategyRefusedBet(t *testing.T) {
	session := newSession(t, nil)
	strategy, err := Default(Options{}).Get(entities.GameRoulette)
	require.NoError(t, err)

	_, err = strategy.Play(context.Background(), session, session.Ledger.Chips()+1)
	assert.Error(t, err)
	assert.Equal(t, int64(10000), session.Ledger.Chips())
}
