package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserStatsApply(t *testing.T) {
	stats := UserStats{GamesPlayed: 3, GamesWon: 1, HighestBalance: 12000}

	stats.Apply(StatsDelta{GamesPlayed: 1, GamesWon: 1, Blackjacks: 1, TotalChipsWon: 250})
	stats.Apply(StatsDelta{GamesPlayed: -5, TotalChipsWon: -100})

	assert.Equal(t, UserStats{
		GamesPlayed:    4,
		GamesWon:       2,
		Blackjacks:     1,
		TotalChipsWon:  250,
		HighestBalance: 12000,
	}, stats)
	assert.InDelta(t, 50.0, stats.WinRate(), 0.001)
	assert.Zero(t, UserStats{}.WinRate())
}

func TestGameSummaryAdd(t *testing.T) {
	now := time.Now()
	summary := &GameSummary{AccountID: "acct", Game: GameRoulette}

	rounds := []*Round{
		{Bet: 100, Payout: 200, Outcome: OutcomeWin, CompletedAt: now.Add(-time.Minute)},
		{Bet: 100, Payout: 0, Outcome: OutcomeLose, CompletedAt: now},
		{Bet: 50, Payout: 50, Outcome: OutcomePush, CompletedAt: now.Add(-time.Hour)},
	}
	for _, r := range rounds {
		summary.Add(r)
	}

	assert.Equal(t, 3, summary.RoundsPlayed)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 1, summary.Pushes)
	assert.Equal(t, int64(0), summary.NetProfit())
	assert.Equal(t, now, summary.LastPlayed)
	assert.InDelta(t, 33.33, summary.WinRate(), 0.01)
}

func TestOutcomeAndGameType(t *testing.T) {
	assert.True(t, OutcomeBlackjack.IsWin())
	assert.True(t, OutcomeJackpot.IsWin())
	assert.False(t, OutcomeBust.IsWin())
	assert.False(t, OutcomePush.IsWin())

	assert.True(t, GameSlots.Valid())
	assert.False(t, GameType("craps").Valid())

	r := &Round{Bet: 100, Payout: 250}
	assert.Equal(t, int64(150), r.Net())
}
