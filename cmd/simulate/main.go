package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/fadedpez/cardroyale/internal/config"
	"github.com/fadedpez/cardroyale/internal/games"
	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/casino"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/baccarat"
	"github.com/fadedpez/cardroyale/pkg/games/roulette"
	"github.com/fadedpez/cardroyale/pkg/rng"
	"github.com/fadedpez/cardroyale/pkg/scheduler"
	"github.com/fadedpez/cardroyale/pkg/services/statistics"
	"github.com/fadedpez/cardroyale/pkg/services/wallet"
)

// CLI plays rounds against the configured store
type CLI struct {
	Game     string `default:"blackjack" enum:"blackjack,poker,roulette,baccarat,slots" help:"Game to play (${enum})"`
	Rounds   int    `default:"20" help:"Number of rounds to play"`
	Bet      int64  `default:"100" help:"Chips wagered per round"`
	BetType  string `default:"red" help:"Roulette bet (red, black, even, odd)"`
	Side     string `default:"banker" help:"Baccarat side (player, banker, tie)"`
	Account  string `help:"Account to play as; defaults to ACCOUNT_ID"`
	Seed     int64  `help:"RNG seed overriding RNG_SEED (0 keeps the configured seed)"`
	Pace     bool   `help:"Replay the blackjack dealer with real delays"`
	Buy      string `help:"Buy a chip pack before playing (small, medium, large, mega)"`
	Free     bool   `help:"Claim the free chips before playing"`
	Board    bool   `help:"Print the leaderboard for the game afterwards"`
	Metrics  bool   `help:"Print collected metrics afterwards"`
	Verbose  bool   `short:"v" help:"Verbose logging"`
	Maintain bool   `help:"Run history maintenance once before playing"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play Card Royale rounds with a simple strategy"),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.FatalIfErrorf(cli.Run(ctx))
}

// Run wires the application from the environment and plays
func (c *CLI) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if c.Verbose {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(level)

	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	if c.Maintain {
		m := scheduler.NewMaintenance(quartz.NewReal(), scheduler.MaintenanceConfig{
			History:         backend.history,
			KeepPerAccount:  cfg.HistoryKeepPerAccount,
			HistoryInterval: cfg.HistoryPruneInterval,
			Indices:         backend.indices(),
		}, logger)
		m.Start(ctx)
		defer m.Stop()
	}

	manager, err := casino.NewManagerFromDeps(cfg.SessionCacheSize, casino.Deps{
		Store:          backend.store,
		History:        backend.history,
		Journal:        backend.journal,
		Logger:         logger,
		Key:            cfg.StorageKey,
		PrimaryAccount: cfg.AccountID,
		NewSource:      rng.Sequence(cfg.Seed),
		Decks:          cfg.BlackjackDecks,
		Threshold:      cfg.ReshuffleThreshold,
		RevealDelay:    cfg.RevealDelay,
		StepDelay:      cfg.StepDelay,
		ResultDelay:    cfg.ResultDelay,
	})
	if err != nil {
		return err
	}
	defer manager.Close()

	accountID := c.Account
	if accountID == "" {
		accountID = cfg.AccountID
	}

	strategy, err := c.strategy()
	if err != nil {
		return err
	}

	store := wallet.NewService(backend.journal, logger)
	stats := statistics.NewService(backend.history)

	err = manager.Do(ctx, accountID, func(s *casino.Session) error {
		if c.Free {
			fmt.Printf("Claimed %d free chips\n", store.ClaimFree(ctx, s.Ledger))
		}
		if c.Buy != "" {
			pack, err := store.Purchase(ctx, s.Ledger, c.Buy)
			if err != nil {
				return err
			}
			fmt.Printf("Bought the %s pack: +%d chips\n", pack.ID, pack.Chips)
		}

		played, err := play(ctx, strategy, s, c.Bet, c.Rounds)
		fmt.Printf("\nPlayed %d %s rounds\n", played, c.Game)
		if err != nil {
			fmt.Printf("Stopped early: %v\n", err)
		}

		for {
			def, ok := s.Ledger.Dismiss()
			if !ok {
				break
			}
			fmt.Printf("%s Achievement unlocked: %s (+%d XP)\n", def.Icon, def.Title, def.XPReward)
		}

		profile, err := stats.Profile(ctx, s.Ledger)
		if err != nil {
			return err
		}
		printProfile(profile)

		txs, err := store.Transactions(ctx, accountID, 5)
		if err != nil {
			return err
		}
		printTransactions(txs)
		return nil
	})
	if err != nil {
		return err
	}

	if c.Board {
		board, err := stats.Leaderboard(ctx, entities.GameType(c.Game), 1, 10)
		if err != nil {
			return err
		}
		printLeaderboard(board)
	}
	if c.Metrics {
		return printMetrics()
	}
	return nil
}

func (c *CLI) strategy() (games.Strategy, error) {
	opts := games.Options{}
	if c.Pace {
		opts.Pace = os.Stdout
	}

	var err error
	if opts.BetType, err = roulette.ParseBetType(c.BetType); err != nil {
		return nil, err
	}
	if opts.Side, err = baccarat.ParseSide(c.Side); err != nil {
		return nil, err
	}
	return games.Default(opts).Get(entities.GameType(c.Game))
}

// play runs up to n rounds and stops at the first refused bet
func play(ctx context.Context, strategy games.Strategy, s *casino.Session, bet int64, n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		line, err := strategy.Play(ctx, s, bet)
		if err != nil {
			return i, err
		}
		fmt.Printf("%s, chips %d\n", line, s.Ledger.Chips())
	}
	return n, nil
}
