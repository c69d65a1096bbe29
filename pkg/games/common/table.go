// Package common holds what every table shares: wagering against a bank,
// payout math and settlement of a finished round.
package common

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/metrics"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
)

var (
	ErrInvalidBet        = types.NewGameError(types.ErrInvalidBet, "bet must be greater than zero")
	ErrInsufficientFunds = types.NewGameError(types.ErrInsufficientFunds, "not enough chips for this bet")
)

// Bank is the chip account a table plays against. *ledger.Ledger satisfies it.
type Bank interface {
	AccountID() string
	Debit(ctx context.Context, amount int64) bool
	Settle(ctx context.Context, s entities.Settlement) []achievements.Definition
}

// Result is a resolved round waiting to be paid
type Result struct {
	Bet        int64
	Outcome    entities.Outcome
	Multiplier decimal.Decimal
	XP         int64
	Detail     string
}

// Settled is what a table reports back after paying a round
type Settled struct {
	Round    entities.Round
	Unlocked []achievements.Definition
}

// Table wagers and settles rounds of one game against a Bank
type Table struct {
	game     entities.GameType
	bank     Bank
	recorder history.Recorder
	log      *logging.Logger
	now      func() time.Time
}

// TableOption configures a Table
type TableOption func(*Table)

// WithRecorder stores every settled round
func WithRecorder(r history.Recorder) TableOption {
	return func(t *Table) { t.recorder = r }
}

// WithLogger sets the table logger
func WithLogger(logger *logging.Logger) TableOption {
	return func(t *Table) { t.log = logger }
}

// WithNow overrides the round timestamp source
func WithNow(now func() time.Time) TableOption {
	return func(t *Table) { t.now = now }
}

// NewTable creates a table for game backed by bank
func NewTable(game entities.GameType, bank Bank, opts ...TableOption) *Table {
	t := &Table{
		game: game,
		bank: bank,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.Or().WithPrefix(string(game))
	return t
}

// Game returns the table's game type
func (t *Table) Game() entities.GameType {
	return t.game
}

// Bank returns the account the table plays against
func (t *Table) Bank() Bank {
	return t.bank
}

// Wager validates and debits a bet. Nothing changes when it fails.
func (t *Table) Wager(ctx context.Context, bet int64) error {
	if bet <= 0 {
		metrics.BetsRejected.WithLabelValues(string(t.game), string(types.ErrInvalidBet)).Inc()
		return ErrInvalidBet
	}
	if !t.bank.Debit(ctx, bet) {
		metrics.BetsRejected.WithLabelValues(string(t.game), string(types.ErrInsufficientFunds)).Inc()
		t.log.Debug("Bet of %d refused for %s", bet, t.bank.AccountID())
		return ErrInsufficientFunds
	}

	metrics.ChipsWagered.WithLabelValues(string(t.game)).Add(float64(bet))
	return nil
}

// Settle pays a resolved round in a single ledger mutation and records it.
// History failures are logged; the ledger remains authoritative.
func (t *Table) Settle(ctx context.Context, res Result) Settled {
	payout := Payout(res.Bet, res.Multiplier)

	delta := entities.StatsDelta{GamesPlayed: 1}
	if res.Outcome.IsWin() && payout > 0 {
		delta.GamesWon = 1
		delta.TotalChipsWon = payout
	}
	if res.Outcome == entities.OutcomeBlackjack {
		delta.Blackjacks = 1
	}

	unlocked := t.bank.Settle(ctx, entities.Settlement{
		Payout: payout,
		Stats:  delta,
		XP:     res.XP,
	})

	metrics.RoundsTotal.WithLabelValues(string(t.game), string(res.Outcome)).Inc()
	if payout > 0 {
		metrics.ChipsPaid.WithLabelValues(string(t.game)).Add(float64(payout))
	}

	round := entities.Round{
		AccountID:   t.bank.AccountID(),
		Game:        t.game,
		Bet:         res.Bet,
		Payout:      payout,
		Outcome:     res.Outcome,
		Detail:      res.Detail,
		CompletedAt: t.now(),
	}
	if t.recorder != nil {
		if err := t.recorder.SaveRound(ctx, &round); err != nil {
			t.log.Error("Failed to record %s round: %v", t.game, err)
		}
	}

	t.log.Debug("Settled %s: bet=%d payout=%d outcome=%s", round.AccountID, res.Bet, payout, res.Outcome)
	return Settled{Round: round, Unlocked: unlocked}
}

// Forfeit logs a round abandoned after its bet was taken. The bet is not
// returned and no stats are recorded.
func (t *Table) Forfeit(bet int64) {
	if bet > 0 {
		t.log.Info("Round abandoned by %s, bet of %d forfeited", t.bank.AccountID(), bet)
	}
}
