package entities

import "time"

// GameType identifies a table
type GameType string

const (
	GameBlackjack GameType = "blackjack"
	GamePoker     GameType = "poker"
	GameRoulette  GameType = "roulette"
	GameBaccarat  GameType = "baccarat"
	GameSlots     GameType = "slots"
)

// GameTypes lists every table in display order.
var GameTypes = []GameType{GameBlackjack, GamePoker, GameRoulette, GameBaccarat, GameSlots}

// Valid reports whether g names a known table.
func (g GameType) Valid() bool {
	for _, t := range GameTypes {
		if t == g {
			return true
		}
	}
	return false
}

// Outcome is the settled result of a round
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLose      Outcome = "LOSE"
	OutcomePush      Outcome = "PUSH"
	OutcomeBlackjack Outcome = "BLACKJACK"
	OutcomeBust      Outcome = "BUST"
	OutcomeJackpot   Outcome = "JACKPOT"
)

// IsWin returns true if this outcome pays more than the stake back
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack || o == OutcomeJackpot
}

// Settlement is everything a finished round applies to a ledger in one step.
type Settlement struct {
	Payout int64
	Stats  StatsDelta
	XP     int64
}

// Round is the history record of one settled round
type Round struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Game        GameType  `json:"game"`
	Bet         int64     `json:"bet"`
	Payout      int64     `json:"payout"`
	Outcome     Outcome   `json:"outcome"`
	Detail      string    `json:"detail"`
	CompletedAt time.Time `json:"completed_at"`
}

// Net is payout minus stake
func (r *Round) Net() int64 {
	return r.Payout - r.Bet
}
