// Package blackjack is a single-player blackjack table: one player hand
// against a dealer who draws to 17, dealt from a multi-deck shoe.
package blackjack

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
)

// Phase is where a round currently is
type Phase int

const (
	PhaseBetting Phase = iota
	PhasePlaying
	PhaseDealerTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseDealerTurn:
		return "dealerTurn"
	case PhaseGameOver:
		return "gameOver"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var ErrInvalidAction = types.NewGameError(types.ErrInvalidAction, "action not allowed in the current phase")

// State is a read-only projection of the table
type State struct {
	Phase       Phase
	Bet         int64
	Player      Hand
	PlayerScore int
	// Dealer omits the hole card while it is face down
	Dealer      Hand
	DealerScore int
	HoleHidden  bool
	Outcome     entities.Outcome
	Payout      int64
	Unlocked    []achievements.Definition
}

// Game runs blackjack rounds for one account
type Game struct {
	mu    sync.RWMutex
	table *common.Table
	deck  *cards.Deck

	phase    Phase
	bet      int64
	player   Hand
	dealer   Hand
	outcome  entities.Outcome
	payout   int64
	unlocked []achievements.Definition
}

// NewGame creates a table in the betting phase drawing from deck
func NewGame(table *common.Table, deck *cards.Deck) *Game {
	return &Game{
		table: table,
		deck:  deck,
		phase: PhaseBetting,
	}
}

// StartRound takes the bet and deals player, dealer, player, dealer. A
// natural 21 ends the round at once: blackjack, or push against a dealer 21.
func (g *Game) StartRound(ctx context.Context, bet int64) error {
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
	for i := 0; i < 2; i++ {
		g.player = append(g.player, g.deck.Draw())
		g.dealer = append(g.dealer, g.deck.Draw())
	}

	if g.player.Score() == Blackjack {
		outcome := entities.OutcomeBlackjack
		if g.dealer.Score() == Blackjack {
			outcome = entities.OutcomePush
		}
		g.settle(ctx, outcome)
		return nil
	}

	g.phase = PhasePlaying
	return nil
}

// Hit draws one card for the player; going over 21 busts and ends the round
func (g *Game) Hit(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return ErrInvalidAction
	}

	g.player = append(g.player, g.deck.Draw())
	if g.player.IsBust() {
		g.settle(ctx, entities.OutcomeBust)
	}
	return nil
}

// Stand hands over to the dealer, who reveals and draws while under 17,
// then resolves and settles the round.
func (g *Game) Stand(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return ErrInvalidAction
	}

	g.phase = PhaseDealerTurn
	for DealerShouldDraw(g.dealer) {
		g.dealer = append(g.dealer, g.deck.Draw())
	}

	g.settle(ctx, Resolve(g.player, g.dealer))
	return nil
}

// Reset returns the table to betting. A round in progress is abandoned and
// its bet forfeited.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhasePlaying || g.phase == PhaseDealerTurn {
		g.table.Forfeit(g.bet)
	}
	g.clear()
	g.phase = PhaseBetting
}

func (g *Game) clear() {
	g.bet = 0
	g.player = nil
	g.dealer = nil
	g.outcome = ""
	g.payout = 0
	g.unlocked = nil
}

func (g *Game) settle(ctx context.Context, outcome entities.Outcome) {
	settled := g.table.Settle(ctx, common.Result{
		Bet:        g.bet,
		Outcome:    outcome,
		Multiplier: PayoutMultiplier(outcome),
		XP:         XPFor(outcome),
		Detail: fmt.Sprintf("player %s (%d) vs dealer %s (%d)",
			g.player, g.player.Score(), g.dealer, g.dealer.Score()),
	})

	g.outcome = outcome
	g.payout = settled.Round.Payout
	g.unlocked = settled.Unlocked
	g.phase = PhaseGameOver
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

	state := State{
		Phase:       g.phase,
		Bet:         g.bet,
		Player:      slices.Clone(g.player),
		PlayerScore: g.player.Score(),
		Dealer:      slices.Clone(g.dealer),
		Outcome:     g.outcome,
		Payout:      g.payout,
		Unlocked:    slices.Clone(g.unlocked),
	}
	if g.phase == PhasePlaying && len(g.dealer) > 0 {
		state.HoleHidden = true
		state.Dealer = slices.Clone(g.dealer[1:])
	}
	state.DealerScore = state.Dealer.Score()
	return state
}

// DealerSteps replays the dealer's play of the last finished round: the
// revealed two-card hand first, then the hand after each draw. The sequence
// is finite and can be ranged over any number of times. It is empty until the
// hole card has been revealed.
func (g *Game) DealerSteps() iter.Seq[Hand] {
	g.mu.RLock()
	final := slices.Clone(g.dealer)
	revealed := g.phase == PhaseDealerTurn || g.phase == PhaseGameOver
	g.mu.RUnlock()

	return func(yield func(Hand) bool) {
		if !revealed {
			return
		}
		for n := min(2, len(final)); n <= len(final) && n > 0; n++ {
			if !yield(slices.Clone(final[:n])) {
				return
			}
		}
	}
}

// Deck exposes the shoe, mainly for reshuffle counts
func (g *Game) Deck() *cards.Deck {
	return g.deck
}
