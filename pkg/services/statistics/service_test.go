package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// MockRepository is a mock implementation of the history.Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveRound(ctx context.Context, round *entities.Round) error {
	return nil
}

func (m *MockRepository) GetRecentRounds(ctx context.Context, accountID string, limit int) ([]*entities.Round, error) {
	return nil, nil
}

func (m *MockRepository) GetSummary(ctx context.Context, accountID string) (map[entities.GameType]*entities.GameSummary, error) {
	args := m.Called(ctx, accountID)
	summaries, _ := args.Get(0).(map[entities.GameType]*entities.GameSummary)
	return summaries, args.Error(1)
}

func (m *MockRepository) GetAllSummaries(ctx context.Context, game entities.GameType) ([]*entities.GameSummary, error) {
	args := m.Called(ctx, game)
	summaries, _ := args.Get(0).([]*entities.GameSummary)
	return summaries, args.Error(1)
}

func (m *MockRepository) PruneRounds(ctx context.Context, keepPerAccount int) (int64, error) {
	return 0, nil
}

func (m *MockRepository) Close() error {
	return nil
}

func TestLeaderboard(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetAllSummaries", mock.Anything, entities.GameBlackjack).Return([]*entities.GameSummary{
		{AccountID: "player1", Game: entities.GameBlackjack, RoundsPlayed: 10, Wins: 5, Losses: 4, Pushes: 1, TotalBet: 1000, TotalPayout: 1500},
		{AccountID: "player2", Game: entities.GameBlackjack, RoundsPlayed: 15, Wins: 8, Losses: 5, Pushes: 2, TotalBet: 1500, TotalPayout: 1400},
		{AccountID: "player3", Game: entities.GameBlackjack, RoundsPlayed: 5, Wins: 3, Losses: 2, TotalBet: 500, TotalPayout: 1200},
		{AccountID: "idle", Game: entities.GameBlackjack},
	}, nil)

	service := NewService(mockRepo)
	board, err := service.Leaderboard(context.Background(), entities.GameBlackjack, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, board.TotalPlayers)
	assert.Equal(t, 2, board.TotalPages)
	require.Len(t, board.Players, 2)

	// player3 net 700, player1 net 500, player2 net -100
	assert.Equal(t, "player3", board.Players[0].AccountID)
	assert.Equal(t, 1, board.Players[0].Rank)
	assert.True(t, board.Players[0].IsTopWinner)
	assert.InDelta(t, 60.0, board.Players[0].WinRate, 0.001)
	assert.InDelta(t, 2.4, board.Players[0].ProfitRate, 0.001)
	assert.Equal(t, "player1", board.Players[1].AccountID)

	last, err := service.Leaderboard(context.Background(), entities.GameBlackjack, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, last.CurrentPage)
	require.Len(t, last.Players, 1)
	assert.Equal(t, "player2", last.Players[0].AccountID)
	assert.True(t, last.Players[0].IsTopPlayer)
	assert.Equal(t, 3, last.Players[0].Rank)

	mockRepo.AssertExpectations(t)
}

func TestLeaderboardDefaultsAndErrors(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetAllSummaries", mock.Anything, entities.GameSlots).Return(nil, errors.New("boom"))
	mockRepo.On("GetAllSummaries", mock.Anything, entities.GamePoker).Return([]*entities.GameSummary{}, nil)

	service := NewService(mockRepo)
	_, err := service.Leaderboard(context.Background(), entities.GameSlots, 1, 10)
	assert.EqualError(t, err, "boom")

	board, err := service.Leaderboard(context.Background(), entities.GamePoker, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, board.CurrentPage)
	assert.Equal(t, 10, board.PlayersPerPage)
	assert.Empty(t, board.Players)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	l := ledger.Load(ctx, storage.NewMemoryStore(), ledger.WithLogger(logging.NewDiscard()))
	l.Settle(ctx, entities.Settlement{
		Payout: 200,
		Stats:  entities.StatsDelta{GamesPlayed: 1, GamesWon: 1, TotalChipsWon: 200},
		XP:     50,
	})

	repo := history.NewMemoryRepository()
	require.NoError(t, repo.SaveRound(ctx, &entities.Round{
		AccountID:   l.AccountID(),
		Game:        entities.GameRoulette,
		Bet:         100,
		Payout:      200,
		Outcome:     entities.OutcomeWin,
		CompletedAt: time.Now(),
	}))

	profile, err := NewService(repo).Profile(ctx, l)
	require.NoError(t, err)

	assert.Equal(t, ledger.DefaultUsername, profile.Username)
	assert.Equal(t, int64(10200), profile.Chips)
	assert.Equal(t, 1, profile.Level)
	// 50 from the round and 100 from the first win
	assert.Equal(t, int64(150), profile.XP)
	assert.Equal(t, int64(850), profile.XPToNext)
	assert.InDelta(t, 100.0, profile.WinRate, 0.001)
	assert.Equal(t, 1, profile.Unlocked)
	assert.Len(t, profile.Achievements, achievements.Default().Len())
	assert.True(t, profile.Achievements[0].Unlocked)
	assert.Equal(t, achievements.FirstWin, profile.Achievements[0].ID)
	assert.False(t, profile.Achievements[1].Unlocked)

	require.Contains(t, profile.Games, entities.GameRoulette)
	assert.Equal(t, 1, profile.Games[entities.GameRoulette].Wins)
}

func TestProfileWithoutHistory(t *testing.T) {
	ctx := context.Background()
	l := ledger.Load(ctx, storage.NewMemoryStore(), ledger.WithLogger(logging.NewDiscard()))

	profile, err := NewService(nil).Profile(ctx, l)
	require.NoError(t, err)
	assert.Empty(t, profile.Games)
	assert.Equal(t, int64(1000), profile.XPToNext)
	assert.Equal(t, 0.0, profile.WinRate)
}
