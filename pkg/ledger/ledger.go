// Package ledger owns a player's chips, XP, level, stats and achievements.
// Every mutation is applied in memory first and then written through to a
// storage.Store; a failed write is logged and never rolls the mutation back.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/metrics"
	"github.com/fadedpez/cardroyale/pkg/repositories/journal"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// MaxUsernameLength bounds Rename.
const MaxUsernameLength = 32

// ErrInvalidUsername is returned by Rename for blank or overlong names.
var ErrInvalidUsername = types.NewGameError(types.ErrInvalidInput, "username must be 1-32 characters")

// Ledger is one player's economy. It is safe for concurrent use, though a
// session is expected to drive it from one goroutine at a time.
type Ledger struct {
	mu        sync.Mutex
	store     storage.Store
	key       string
	accountID string
	registry  *achievements.Registry
	journal   journal.Repository
	log       *logging.Logger

	state    Snapshot
	unlocked map[string]struct{}
	pending  []achievements.Definition
}

// Option configures a Ledger
type Option func(*Ledger)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// WithAccount names the account in journal entries and logs.
func WithAccount(accountID string) Option {
	return func(l *Ledger) { l.accountID = accountID }
}

// WithRegistry replaces the built-in achievement table.
func WithRegistry(r *achievements.Registry) Option {
	return func(l *Ledger) { l.registry = r }
}

// WithJournal records every chip movement to repo.
func WithJournal(repo journal.Repository) Option {
	return func(l *Ledger) { l.journal = repo }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(l *Ledger) { l.log = logger }
}

// Load reads the snapshot stored under the ledger key and returns a ledger
// built from it. A missing or unreadable snapshot yields the default state;
// Load never fails.
func Load(ctx context.Context, store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		key:       StorageKey,
		accountID: "local",
		registry:  achievements.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Or().With("account", l.accountID)

	l.state = l.read(ctx)
	l.unlocked = make(map[string]struct{}, len(l.state.UnlockedAchievements))
	for _, id := range l.state.UnlockedAchievements {
		l.unlocked[id] = struct{}{}
	}
	return l
}

func (l *Ledger) read(ctx context.Context) Snapshot {
	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, storage.ErrNotFound) {
		l.log.Info("No saved ledger under %s, starting fresh", l.key)
		return DefaultSnapshot()
	}
	if err != nil {
		l.log.LogError(types.WrapError(types.ErrStorage, "read snapshot", err))
		return DefaultSnapshot()
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		l.log.LogError(types.WrapError(types.ErrCorruptSnapshot, "decode snapshot", err))
		return DefaultSnapshot()
	}
	return snap
}

// persist writes the current state. Callers hold l.mu.
func (l *Ledger) persist(ctx context.Context) {
	data, err := json.Marshal(l.state)
	if err != nil {
		l.log.LogError(types.WrapError(types.ErrInternalError, "encode snapshot", err))
		return
	}
	if err := l.store.Set(ctx, l.key, data); err != nil {
		metrics.PersistFailures.Inc()
		l.log.LogError(types.WrapError(types.ErrStorage, "write snapshot", err))
	}
}

func (l *Ledger) record(ctx context.Context, txType entities.TransactionType, amount int64, description string) {
	if l.journal == nil {
		return
	}
	err := l.journal.AddTransaction(ctx, &entities.Transaction{
		AccountID:    l.accountID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		BalanceAfter: l.state.Chips,
	})
	if err != nil {
		l.log.Warn("Failed to journal %s of %d: %v", txType, amount, err)
	}
}

// User returns a copy of the current state
func (l *Ledger) User() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// AccountID returns the account this ledger belongs to
func (l *Ledger) AccountID() string {
	return l.accountID
}

// Chips returns the current balance
func (l *Ledger) Chips() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Chips
}

// Debit removes amount from the balance if it is covered. It returns false,
// changing nothing, when amount is not positive or exceeds the balance.
func (l *Ledger) Debit(ctx context.Context, amount int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 || l.state.Chips < amount {
		return false
	}
	l.state.Chips -= amount
	l.record(ctx, entities.TransactionTypeBet, -amount, "bet")
	l.persist(ctx)
	return true
}

// Credit adds amount to the balance. Non-positive amounts are ignored.
func (l *Ledger) Credit(ctx context.Context, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return
	}
	l.credit(ctx, amount, entities.TransactionTypeCredit, "credit")
	l.persist(ctx)
}

// Grant credits chips from outside the tables, such as the chip store.
func (l *Ledger) Grant(ctx context.Context, amount int64, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return
	}
	l.credit(ctx, amount, entities.TransactionTypeTopUp, reason)
	metrics.ChipsGranted.WithLabelValues(reason).Add(float64(amount))
	l.persist(ctx)
}

func (l *Ledger) credit(ctx context.Context, amount int64, txType entities.TransactionType, description string) {
	l.state.Chips += amount
	l.trackHighest()
	l.record(ctx, txType, amount, description)
}

func (l *Ledger) trackHighest() {
	if l.state.Chips > l.state.Stats.HighestBalance {
		l.state.Stats.HighestBalance = l.state.Chips
	}
}

// AwardXP adds XP, rolling over as many levels as it covers. It returns the
// number of levels gained.
func (l *Ledger) AwardXP(ctx context.Context, amount int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return 0
	}
	gained := l.addXP(amount)
	l.persist(ctx)
	return gained
}

func (l *Ledger) addXP(amount int64) int {
	l.state.XP += amount
	gained := 0
	for l.state.XP >= Threshold(l.state.Level) {
		l.state.XP -= Threshold(l.state.Level)
		l.state.Level++
		gained++
	}
	if gained > 0 {
		metrics.LevelUps.Add(float64(gained))
		l.log.Info("Reached level %d", l.state.Level)
	}
	return gained
}

// RecordStats folds delta into the cumulative stats, then unlocks every
// achievement that newly holds. It returns the newly unlocked definitions in
// registry order; their XP rewards have already been awarded.
func (l *Ledger) RecordStats(ctx context.Context, delta entities.StatsDelta) []achievements.Definition {
	l.mu.Lock()
	defer l.mu.Unlock()

	unlocked := l.recordStats(delta)
	l.persist(ctx)
	return unlocked
}

func (l *Ledger) recordStats(delta entities.StatsDelta) []achievements.Definition {
	l.state.Stats.Apply(delta)
	l.trackHighest()

	newly := l.registry.Evaluate(l.state.Stats, l.isUnlocked)
	var reward int64
	for _, def := range newly {
		l.unlocked[def.ID] = struct{}{}
		l.state.UnlockedAchievements = append(l.state.UnlockedAchievements, def.ID)
		l.pending = append(l.pending, def)
		reward += def.XPReward
		metrics.AchievementsUnlocked.WithLabelValues(def.ID).Inc()
		l.log.Info("Achievement unlocked: %s (+%d XP)", def.Title, def.XPReward)
	}
	if reward > 0 {
		l.addXP(reward)
	}
	return newly
}

func (l *Ledger) isUnlocked(id string) bool {
	_, ok := l.unlocked[id]
	return ok
}

// Settle applies a finished round as one mutation: payout credit, stats,
// round XP, achievements. It returns the newly unlocked achievements.
func (l *Ledger) Settle(ctx context.Context, s entities.Settlement) []achievements.Definition {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.Payout > 0 {
		l.credit(ctx, s.Payout, entities.TransactionTypePayout, "payout")
	}
	unlocked := l.recordStats(s.Stats)
	if s.XP > 0 {
		l.addXP(s.XP)
	}
	l.persist(ctx)
	return unlocked
}

// IsUnlocked reports whether an achievement has been earned
func (l *Ledger) IsUnlocked(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isUnlocked(id)
}

// Registry returns the achievement table this ledger evaluates
func (l *Ledger) Registry() *achievements.Registry {
	return l.registry
}

// Peek returns the oldest pending achievement notification
func (l *Ledger) Peek() (achievements.Definition, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pending) == 0 {
		return achievements.Definition{}, false
	}
	return l.pending[0], true
}

// Dismiss pops the oldest pending notification
func (l *Ledger) Dismiss() (achievements.Definition, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pending) == 0 {
		return achievements.Definition{}, false
	}
	def := l.pending[0]
	l.pending = l.pending[1:]
	return def, true
}

// Pending is the number of undismissed notifications
func (l *Ledger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Rename changes the display name
func (l *Ledger) Rename(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLength {
		return ErrInvalidUsername
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Username = username
	l.persist(ctx)
	return nil
}
