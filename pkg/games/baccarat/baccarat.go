// Package baccarat deals simplified punto banco: each side draws one extra
// card on five or less, and cards come from an infinite 52-card pool.
package baccarat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/rng"
)

// Side is both a bet and a coup winner
type Side int

const (
	SidePlayer Side = iota + 1
	SideBanker
	SideTie
)

var sideNames = map[Side]string{
	SidePlayer: "player",
	SideBanker: "banker",
	SideTie:    "tie",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Valid reports whether s is a known side. The zero value is not.
func (s Side) Valid() bool {
	_, ok := sideNames[s]
	return ok
}

// ParseSide reads a side name, case insensitive
func ParseSide(name string) (Side, error) {
	for s, n := range sideNames {
		if strings.EqualFold(name, n) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown baccarat bet %q", name)
}

// Multiplier is what a winning bet on s returns per chip
func (s Side) Multiplier() int64 {
	switch s {
	case SideTie:
		return 9
	case SidePlayer, SideBanker:
		return 2
	}
	return 0
}

// DrawLimit is the highest two-card point that takes a third card
const DrawLimit = 5

// Experience per coup
const (
	WinXP  = 100
	LossXP = 10
)

var ErrInvalidBetType = types.NewGameError(types.ErrInvalidBetType, "choose player, banker or tie")

// Point is the hand total modulo 10; tens and faces count 0, aces 1
func Point(hand []cards.Card) int {
	total := 0
	for _, card := range hand {
		total += card.Rank.BaccaratValue()
	}
	return total % 10
}

// ShouldDraw reports whether a two-card hand takes a third card
func ShouldDraw(hand []cards.Card) bool {
	return len(hand) == 2 && Point(hand) <= DrawLimit
}

// Winner compares final points
func Winner(player, banker []cards.Card) Side {
	p, b := Point(player), Point(banker)
	switch {
	case p > b:
		return SidePlayer
	case b > p:
		return SideBanker
	default:
		return SideTie
	}
}

// Coup is the result of one deal
type Coup struct {
	Player      []cards.Card
	Banker      []cards.Card
	PlayerPoint int
	BankerPoint int
	Winner      Side
	BetOn       Side
	Bet         int64
	Won         bool
	Payout      int64
	Unlocked    []achievements.Definition
}

// Game deals coups for one account
type Game struct {
	mu    sync.Mutex
	table *common.Table
	src   rng.Source
	pool  []cards.Card
	last  *Coup
}

// NewGame creates a baccarat table
func NewGame(table *common.Table, src rng.Source) *Game {
	return &Game{table: table, src: src, pool: cards.Standard()}
}

// Deal takes the bet, deals two cards to each side, gives each side a third
// card on five or less and settles.
func (g *Game) Deal(ctx context.Context, bet int64, on Side) (Coup, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !on.Valid() {
		return Coup{}, ErrInvalidBetType
	}
	if err := g.table.Wager(ctx, bet); err != nil {
		return Coup{}, err
	}

	var player, banker []cards.Card
	for i := 0; i < 2; i++ {
		player = append(player, g.draw())
		banker = append(banker, g.draw())
	}
	if ShouldDraw(player) {
		player = append(player, g.draw())
	}
	if ShouldDraw(banker) {
		banker = append(banker, g.draw())
	}

	winner := Winner(player, banker)
	won := winner == on

	res := common.Result{
		Bet:        bet,
		Outcome:    entities.OutcomeLose,
		Multiplier: common.Lose,
		XP:         LossXP,
		Detail: fmt.Sprintf("%s on %s: player %d banker %d",
			on, winner, Point(player), Point(banker)),
	}
	if won {
		res.Outcome, res.Multiplier, res.XP = entities.OutcomeWin, common.Multiplier(on.Multiplier()), WinXP
	}
	settled := g.table.Settle(ctx, res)

	coup := Coup{
		Player:      player,
		Banker:      banker,
		PlayerPoint: Point(player),
		BankerPoint: Point(banker),
		Winner:      winner,
		BetOn:       on,
		Bet:         bet,
		Won:         won,
		Payout:      settled.Round.Payout,
		Unlocked:    settled.Unlocked,
	}
	g.last = &coup
	return coup, nil
}

// draw picks uniformly over all 52 cards; nothing is removed
func (g *Game) draw() cards.Card {
	return rng.Pick(g.src, g.pool)
}

// Last returns the most recent coup, if any
func (g *Game) Last() (Coup, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.last == nil {
		return Coup{}, false
	}
	return *g.last, true
}
