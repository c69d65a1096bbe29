package entities

import "time"

// UserStats are the cumulative counters behind achievements.
type UserStats struct {
	GamesPlayed    int64 `json:"gamesPlayed"`
	GamesWon       int64 `json:"gamesWon"`
	Blackjacks     int64 `json:"blackjacks"`
	TotalChipsWon  int64 `json:"totalChipsWon"`
	HighestBalance int64 `json:"highestBalance"`
}

// StatsDelta is a partial update to UserStats. Every field is additive;
// negative values are ignored. HighestBalance is never part of a delta: the
// ledger recomputes it against the current balance.
type StatsDelta struct {
	GamesPlayed   int64
	GamesWon      int64
	Blackjacks    int64
	TotalChipsWon int64
}

// Apply adds d to s.
func (s *UserStats) Apply(d StatsDelta) {
	s.GamesPlayed += nonNegative(d.GamesPlayed)
	s.GamesWon += nonNegative(d.GamesWon)
	s.Blackjacks += nonNegative(d.Blackjacks)
	s.TotalChipsWon += nonNegative(d.TotalChipsWon)
}

// WinRate calculates the win rate as a percentage
func (s UserStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0.0
	}
	return float64(s.GamesWon) / float64(s.GamesPlayed) * 100.0
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// GameSummary aggregates recorded rounds of one game for one account
type GameSummary struct {
	AccountID    string
	Game         GameType
	RoundsPlayed int
	Wins         int
	Losses       int
	Pushes       int
	TotalBet     int64
	TotalPayout  int64
	LastPlayed   time.Time
}

// NetProfit calculates the account's net result at this game
func (s *GameSummary) NetProfit() int64 {
	return s.TotalPayout - s.TotalBet
}

// WinRate calculates the win rate as a percentage
func (s *GameSummary) WinRate() float64 {
	if s.RoundsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.RoundsPlayed) * 100.0
}

// Add folds one round into the summary.
func (s *GameSummary) Add(r *Round) {
	s.RoundsPlayed++
	s.TotalBet += r.Bet
	s.TotalPayout += r.Payout
	switch {
	case r.Outcome.IsWin():
		s.Wins++
	case r.Outcome == OutcomePush:
		s.Pushes++
	default:
		s.Losses++
	}
	if r.CompletedAt.After(s.LastPlayed) {
		s.LastPlayed = r.CompletedAt
	}
}
