// Package roulette spins a European wheel for even-money outside bets.
package roulette

import (
	"context"
	"fmt"
	"sync"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/rng"
)

// Experience per spin
const (
	WinXP  = 50
	LossXP = 5
)

var ErrInvalidBetType = types.NewGameError(types.ErrInvalidBetType, "choose red, black, even or odd")

// Spin is the result of one spin
type Spin struct {
	Pocket   Pocket
	BetType  BetType
	Bet      int64
	Won      bool
	Payout   int64
	Unlocked []achievements.Definition
}

// Game spins the wheel for one account
type Game struct {
	mu    sync.Mutex
	table *common.Table
	src   rng.Source
	last  *Spin
}

// NewGame creates a roulette table
func NewGame(table *common.Table, src rng.Source) *Game {
	return &Game{table: table, src: src}
}

// Spin takes the bet, draws one of the 37 pockets uniformly and settles. Win
// pays 2x; zero loses every bet.
func (g *Game) Spin(ctx context.Context, bet int64, betType BetType) (Spin, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !betType.Valid() {
		return Spin{}, ErrInvalidBetType
	}
	if err := g.table.Wager(ctx, bet); err != nil {
		return Spin{}, err
	}

	pocket := Classify(g.src.Intn(Pockets))
	won := betType.Wins(pocket)

	res := common.Result{
		Bet:        bet,
		Outcome:    entities.OutcomeLose,
		Multiplier: common.Lose,
		XP:         LossXP,
		Detail:     fmt.Sprintf("%s on %s", betType, pocket),
	}
	if won {
		res.Outcome, res.Multiplier, res.XP = entities.OutcomeWin, common.EvenMoney, WinXP
	}
	settled := g.table.Settle(ctx, res)

	spin := Spin{
		Pocket:   pocket,
		BetType:  betType,
		Bet:      bet,
		Won:      won,
		Payout:   settled.Round.Payout,
		Unlocked: settled.Unlocked,
	}
	g.last = &spin
	return spin, nil
}

// Last returns the most recent spin, if any
func (g *Game) Last() (Spin, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.last == nil {
		return Spin{}, false
	}
	return *g.last, true
}
