// Package statistics builds the profile screen and per-game leaderboards.
package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
)

// Player is the source of a profile. *ledger.Ledger satisfies it.
type Player interface {
	AccountID() string
	User() ledger.Snapshot
	Registry() *achievements.Registry
}

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository history.Repository
	now        func() time.Time
}

// NewService creates a new statistics service. repository may be nil, in
// which case profiles carry no per-game summaries and leaderboards are empty.
func NewService(repository history.Repository) *Service {
	return &Service{
		repository: repository,
		now:        time.Now,
	}
}

// AchievementProgress pairs a definition with whether it is unlocked
type AchievementProgress struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int64  `json:"xp_reward"`
	Unlocked    bool   `json:"unlocked"`
}

// Profile is everything the profile screen shows
type Profile struct {
	AccountID    string                                       `json:"account_id"`
	Username     string                                       `json:"username"`
	Chips        int64                                        `json:"chips"`
	Level        int                                          `json:"level"`
	XP           int64                                        `json:"xp"`
	XPToNext     int64                                        `json:"xp_to_next"`
	Stats        entities.UserStats                           `json:"stats"`
	WinRate      float64                                      `json:"win_rate"`
	Unlocked     int                                          `json:"unlocked"`
	Achievements []AchievementProgress                        `json:"achievements"`
	Games        map[entities.GameType]*entities.GameSummary `json:"games"`
}

// Profile assembles a player's profile
func (s *Service) Profile(ctx context.Context, player Player) (*Profile, error) {
	user := player.User()

	unlocked := make(map[string]bool, len(user.UnlockedAchievements))
	for _, id := range user.UnlockedAchievements {
		unlocked[id] = true
	}

	defs := player.Registry().All()
	progress := make([]AchievementProgress, 0, len(defs))
	for _, def := range defs {
		progress = append(progress, AchievementProgress{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			XPReward:    def.XPReward,
			Unlocked:    unlocked[def.ID],
		})
	}

	profile := &Profile{
		AccountID:    player.AccountID(),
		Username:     user.Username,
		Chips:        user.Chips,
		Level:        user.Level,
		XP:           user.XP,
		XPToNext:     ledger.Threshold(user.Level) - user.XP,
		Stats:        user.Stats,
		WinRate:      user.Stats.WinRate(),
		Unlocked:     len(user.UnlockedAchievements),
		Achievements: progress,
		Games:        map[entities.GameType]*entities.GameSummary{},
	}

	if s.repository != nil {
		games, err := s.repository.GetSummary(ctx, player.AccountID())
		if err != nil {
			return nil, err
		}
		profile.Games = games
	}
	return profile, nil
}

// PlayerRank represents a player's summary with ranking information
type PlayerRank struct {
	*entities.GameSummary
	Rank        int     `json:"rank"`
	WinRate     float64 `json:"win_rate"`
	ProfitRate  float64 `json:"profit_rate"`
	IsTopWinner bool    `json:"is_top_winner"`
	IsTopPlayer bool    `json:"is_top_player"`
}

// Leaderboard represents a paginated leaderboard for one game
type Leaderboard struct {
	Game           entities.GameType `json:"game"`
	Players        []*PlayerRank     `json:"players"`
	TotalPlayers   int               `json:"total_players"`
	CurrentPage    int               `json:"current_page"`
	TotalPages     int               `json:"total_pages"`
	PlayersPerPage int               `json:"players_per_page"`
	LastUpdated    time.Time         `json:"last_updated"`
}

// Leaderboard ranks every account that played game by net chips won
func (s *Service) Leaderboard(ctx context.Context, game entities.GameType, page, playersPerPage int) (*Leaderboard, error) {
	// Default values
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = 10
	}

	var summaries []*entities.GameSummary
	if s.repository != nil {
		var err error
		summaries, err = s.repository.GetAllSummaries(ctx, game)
		if err != nil {
			return nil, err
		}
	}

	playerRanks := make([]*PlayerRank, 0, len(summaries))
	for _, summary := range summaries {
		// Skip accounts with no rounds
		if summary.RoundsPlayed == 0 {
			continue
		}

		var profitRate float64
		if summary.TotalBet > 0 {
			profitRate = float64(summary.TotalPayout) / float64(summary.TotalBet)
		}

		playerRanks = append(playerRanks, &PlayerRank{
			GameSummary: summary,
			WinRate:     summary.WinRate(),
			ProfitRate:  profitRate,
		})
	}

	// Sort by net profit (descending)
	sort.SliceStable(playerRanks, func(i, j int) bool {
		if playerRanks[i].NetProfit() != playerRanks[j].NetProfit() {
			return playerRanks[i].NetProfit() > playerRanks[j].NetProfit()
		}
		return playerRanks[i].AccountID < playerRanks[j].AccountID
	})

	// Mark top winner and most active player
	if len(playerRanks) > 0 {
		playerRanks[0].IsTopWinner = true

		mostRoundsIdx := 0
		for i := 1; i < len(playerRanks); i++ {
			if playerRanks[i].RoundsPlayed > playerRanks[mostRoundsIdx].RoundsPlayed {
				mostRoundsIdx = i
			}
		}
		playerRanks[mostRoundsIdx].IsTopPlayer = true
	}

	for i := range playerRanks {
		playerRanks[i].Rank = i + 1
	}

	// Calculate pagination
	totalPlayers := len(playerRanks)
	totalPages := (totalPlayers + playersPerPage - 1) / playersPerPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * playersPerPage
	end := min(start+playersPerPage, totalPlayers)

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = playerRanks[start:end]
	}

	return &Leaderboard{
		Game:           game,
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    s.now(),
	}, nil
}
