package games

import (
	"context"
	"fmt"
	"io"

	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/casino"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/baccarat"
	"github.com/fadedpez/cardroyale/pkg/games/blackjack"
	"github.com/fadedpez/cardroyale/pkg/games/poker"
	"github.com/fadedpez/cardroyale/pkg/games/roulette"
)

// Options tune the default strategies
type Options struct {
	BetType roulette.BetType
	Side    baccarat.Side

	// Pace, when set, receives the blackjack dealer's draws at table speed
	Pace io.Writer
}

// Default registers a strategy for every game
func Default(opts Options) *Registry {
	if !opts.BetType.Valid() {
		opts.BetType = roulette.BetRed
	}
	if !opts.Side.Valid() {
		opts.Side = baccarat.SideBanker
	}

	r := NewRegistry()
	r.Register(entities.GameBlackjack, Blackjack{Pace: opts.Pace})
	r.Register(entities.GamePoker, StrategyFunc(playPoker))
	r.Register(entities.GameRoulette, StrategyFunc(func(ctx context.Context, s *casino.Session, bet int64) (string, error) {
		spin, err := s.Roulette.Spin(ctx, bet, opts.BetType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s on %s: payout %d", spin.Pocket, spin.BetType, spin.Payout), nil
	}))
	r.Register(entities.GameBaccarat, StrategyFunc(func(ctx context.Context, s *casino.Session, bet int64) (string, error) {
		coup, err := s.Baccarat.Deal(ctx, bet, opts.Side)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("player %d banker %d, %s wins: payout %d",
			coup.PlayerPoint, coup.BankerPoint, coup.Winner, coup.Payout), nil
	}))
	r.Register(entities.GameSlots, StrategyFunc(func(ctx context.Context, s *casino.Session, bet int64) (string, error) {
		res, err := s.Slots.Spin(ctx, bet)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s: payout %d", res.Line, res.Win, res.Payout), nil
	}))
	return r
}

// Blackjack hits below seventeen and stands otherwise
type Blackjack struct {
	Pace io.Writer
}

// Play runs one blackjack round
func (b Blackjack) Play(ctx context.Context, s *casino.Session, bet int64) (string, error) {
	game := s.Blackjack
	if err := game.StartRound(ctx, bet); err != nil {
		return "", err
	}

	for game.Phase() == blackjack.PhasePlaying {
		var err error
		if game.View().PlayerScore < blackjack.DealerStandOn {
			err = game.Hit(ctx)
		} else {
			err = game.Stand(ctx)
		}
		if err != nil {
			return "", err
		}
	}

	if b.Pace != nil {
		replay := s.Pacer.Replay(game.DealerSteps(), func(h blackjack.Hand) {
			fmt.Fprintf(b.Pace, "  dealer: %s (%d)\n", h, h.Score())
		})
		select {
		case <-replay.Done():
		case <-ctx.Done():
			replay.Stop()
			return "", ctx.Err()
		}
	}

	state := game.View()
	return fmt.Sprintf("%s (%d) vs %s (%d): %s, payout %d",
		state.Player, state.PlayerScore, state.Dealer, state.DealerScore, state.Outcome, state.Payout), nil
}

// playPoker holds every card that pairs, or the whole hand when it is
// already a straight or better
func playPoker(ctx context.Context, s *casino.Session, bet int64) (string, error) {
	game := s.Poker
	if err := game.Deal(ctx, bet); err != nil {
		return "", err
	}

	hand := game.View().Hand
	for _, i := range Holds(hand) {
		if err := game.ToggleHold(i); err != nil {
			return "", err
		}
	}

	if err := game.Draw(ctx); err != nil {
		return "", err
	}

	state := game.View()
	return fmt.Sprintf("%v: %s, payout %d", state.Hand, state.Rank, state.Payout), nil
}

// Holds returns the indexes of hand worth keeping
func Holds(hand []cards.Card) []int {
	var keep []int
	if poker.Evaluate(hand) >= poker.Straight {
		for i := range hand {
			keep = append(keep, i)
		}
		return keep
	}

	counts := map[cards.Rank]int{}
	for _, c := range hand {
		counts[c.Rank]++
	}
	for i, c := range hand {
		if counts[c.Rank] >= 2 {
			keep = append(keep, i)
		}
	}
	return keep
}
