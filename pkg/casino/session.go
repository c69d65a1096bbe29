// Package casino wires one account's ledger to the five tables and keeps
// recently used accounts in memory.
package casino

import (
	"context"
	"time"

	"github.com/coder/quartz"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/baccarat"
	"github.com/fadedpez/cardroyale/pkg/games/blackjack"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/games/poker"
	"github.com/fadedpez/cardroyale/pkg/games/roulette"
	"github.com/fadedpez/cardroyale/pkg/games/slots"
	"github.com/fadedpez/cardroyale/pkg/ledger"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
	"github.com/fadedpez/cardroyale/pkg/repositories/journal"
	"github.com/fadedpez/cardroyale/pkg/rng"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// Deps is everything a session is built from. Store is required.
type Deps struct {
	Store    storage.Store
	History  history.Recorder
	Journal  journal.Repository
	Registry *achievements.Registry
	Logger   *logging.Logger

	// Key is the storage key for the account the casino was configured
	// with; other accounts are stored under Key + ":" + accountID.
	Key            string
	PrimaryAccount string

	// NewSource returns the random source for a new session
	NewSource func() rng.Source

	Decks     int
	Threshold int

	Clock       quartz.Clock
	RevealDelay time.Duration
	StepDelay   time.Duration
	ResultDelay time.Duration
}

func (d Deps) keyFor(accountID string) string {
	key := d.Key
	if key == "" {
		key = ledger.StorageKey
	}
	if accountID == d.PrimaryAccount {
		return key
	}
	return key + ":" + accountID
}

// Session is one account at the casino
type Session struct {
	AccountID string
	Ledger    *ledger.Ledger
	Blackjack *blackjack.Game
	Poker     *poker.Game
	Roulette  *roulette.Game
	Baccarat  *baccarat.Game
	Slots     *slots.Machine
	Pacer     *blackjack.Pacer
}

// NewSession loads the account's ledger and opens a table of every game
// against it.
func NewSession(ctx context.Context, accountID string, deps Deps) *Session {
	opts := []ledger.Option{
		ledger.WithKey(deps.keyFor(accountID)),
		ledger.WithAccount(accountID),
		ledger.WithLogger(deps.Logger),
	}
	if deps.Registry != nil {
		opts = append(opts, ledger.WithRegistry(deps.Registry))
	}
	if deps.Journal != nil {
		opts = append(opts, ledger.WithJournal(deps.Journal))
	}
	l := ledger.Load(ctx, deps.Store, opts...)
	logger := deps.Logger.Or().With("account", accountID)

	table := func(game entities.GameType) *common.Table {
		tableOpts := []common.TableOption{common.WithLogger(logger)}
		if deps.History != nil {
			tableOpts = append(tableOpts, common.WithRecorder(deps.History))
		}
		return common.NewTable(game, l, tableOpts...)
	}

	src := rng.New()
	if deps.NewSource != nil {
		src = deps.NewSource()
	}
	decks := deps.Decks
	if decks <= 0 {
		decks = blackjack.StandardDecks
	}
	shoeOpts := []cards.Option{}
	if deps.Threshold > 0 {
		shoeOpts = append(shoeOpts, cards.WithThreshold(deps.Threshold))
	}

	clock := deps.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	pacer := blackjack.NewPacer(clock)
	if deps.RevealDelay > 0 {
		pacer.Reveal = deps.RevealDelay
	}
	if deps.StepDelay > 0 {
		pacer.Step = deps.StepDelay
	}
	if deps.ResultDelay > 0 {
		pacer.Result = deps.ResultDelay
	}

	return &Session{
		AccountID: accountID,
		Ledger:    l,
		Blackjack: blackjack.NewGame(table(entities.GameBlackjack), cards.NewDeck(src, decks, shoeOpts...)),
		Poker:     poker.NewGame(table(entities.GamePoker), poker.FreshDeck(src)),
		Roulette:  roulette.NewGame(table(entities.GameRoulette), src),
		Baccarat:  baccarat.NewGame(table(entities.GameBaccarat), src),
		Slots:     slots.NewMachine(table(entities.GameSlots), src),
		Pacer:     pacer,
	}
}

// Close abandons any round still in progress. The ledger has already been
// written through and needs no flush.
func (s *Session) Close() {
	s.Blackjack.Reset()
	s.Poker.Reset()
}
