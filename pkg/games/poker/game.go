// Package poker is five-card draw video poker paying on a jacks-or-better
// table.
package poker

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/rng"
)

// Phase is where a hand currently is
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDrawing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDrawing:
		return "drawing"
	case PhaseGameOver:
		return "gameOver"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Experience per hand
const (
	WinXP  = 50
	LossXP = 5
)

var (
	ErrInvalidAction = types.NewGameError(types.ErrInvalidAction, "action not allowed in the current phase")
	ErrInvalidIndex  = types.NewGameError(types.ErrInvalidIndex, "card index must be between 0 and 4")
)

// DeckFunc supplies the deck for each new hand
type DeckFunc func() *cards.Deck

// FreshDeck shuffles a single 52-card deck for every hand. The threshold is
// zero since a hand never uses more than ten cards.
func FreshDeck(src rng.Source) DeckFunc {
	return func() *cards.Deck {
		return cards.NewDeck(src, 1, cards.WithThreshold(0))
	}
}

// State is a read-only projection of the table
type State struct {
	Phase    Phase
	Bet      int64
	Hand     []cards.Card
	Held     [HandSize]bool
	Rank     HandRank
	Payout   int64
	Unlocked []achievements.Definition
}

// Game runs draw poker hands for one account
type Game struct {
	mu      sync.RWMutex
	table   *common.Table
	newDeck DeckFunc

	phase    Phase
	deck     *cards.Deck
	bet      int64
	hand     []cards.Card
	held     [HandSize]bool
	rank     HandRank
	payout   int64
	unlocked []achievements.Definition
}

// NewGame creates a table in the betting phase
func NewGame(table *common.Table, newDeck DeckFunc) *Game {
	return &Game{
		table:   table,
		newDeck: newDeck,
		phase:   PhaseBetting,
	}
}

// Deal takes the bet and deals five cards from a freshly shuffled deck with
// every hold cleared.
func (g *Game) Deal(ctx context.Context, bet int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseBetting && g.phase != PhaseGameOver {
		return ErrInvalidAction
	}
	if err := g.table.Wager(ctx, bet); err != nil {
		return err
	}

	g.clear()
	g.bet = bet
	g.deck = g.newDeck()
	g.hand = make([]cards.Card, HandSize)
	for i := range g.hand {
		g.hand[i] = g.deck.Draw()
	}
	g.phase = PhaseDrawing
	return nil
}

// ToggleHold flips the hold flag of the card at index
func (g *Game) ToggleHold(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDrawing {
		return ErrInvalidAction
	}
	if index < 0 || index >= HandSize {
		return ErrInvalidIndex
	}
	g.held[index] = !g.held[index]
	return nil
}

// Draw replaces every card not held, evaluates the final hand and settles
func (g *Game) Draw(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseDrawing {
		return ErrInvalidAction
	}

	for i := range g.hand {
		if !g.held[i] {
			g.hand[i] = g.deck.Draw()
		}
	}

	g.rank = Evaluate(g.hand)
	outcome, xp := entities.OutcomeLose, int64(LossXP)
	if g.rank.IsWin() {
		outcome, xp = entities.OutcomeWin, WinXP
	}

	settled := g.table.Settle(ctx, common.Result{
		Bet:        g.bet,
		Outcome:    outcome,
		Multiplier: common.Multiplier(g.rank.Multiplier()),
		XP:         xp,
		Detail:     fmt.Sprintf("%s: %s", g.rank, handString(g.hand)),
	})
	g.payout = settled.Round.Payout
	g.unlocked = settled.Unlocked
	g.phase = PhaseGameOver
	return nil
}

// Reset returns the table to betting. A hand waiting for its draw is
// abandoned and the bet forfeited.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseDrawing {
		g.table.Forfeit(g.bet)
	}
	g.clear()
	g.phase = PhaseBetting
}

func (g *Game) clear() {
	g.deck = nil
	g.bet = 0
	g.hand = nil
	g.held = [HandSize]bool{}
	g.rank = NoWin
	g.payout = 0
	g.unlocked = nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase
}

// View returns a copy of the table state
func (g *Game) View() State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return State{
		Phase:    g.phase,
		Bet:      g.bet,
		Hand:     slices.Clone(g.hand),
		Held:     g.held,
		Rank:     g.rank,
		Payout:   g.payout,
		Unlocked: slices.Clone(g.unlocked),
	}
}

func handString(hand []cards.Card) string {
	parts := make([]string, len(hand))
	for i, card := range hand {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
