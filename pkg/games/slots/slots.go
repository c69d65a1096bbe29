// Package slots is a three-reel machine over six symbols.
package slots

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/cardroyale/pkg/achievements"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
	"github.com/fadedpez/cardroyale/pkg/rng"
)

// Reels on the machine
const Reels = 3

// Symbol on a reel
type Symbol int

const (
	Cherries Symbol = iota
	Lemon
	Grapes
	Diamond
	Seven
	Bell
)

// Symbols is the reel alphabet; every stop is equally likely
var Symbols = []Symbol{Cherries, Lemon, Grapes, Diamond, Seven, Bell}

var symbolInfo = map[Symbol]struct{ name, emoji string }{
	Cherries: {"cherries", "🍒"},
	Lemon:    {"lemon", "🍋"},
	Grapes:   {"grapes", "🍇"},
	Diamond:  {"diamond", "💎"},
	Seven:    {"seven", "7️⃣"},
	Bell:     {"bell", "🔔"},
}

func (s Symbol) String() string {
	if info, ok := symbolInfo[s]; ok {
		return info.name
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// Emoji is the reel face
func (s Symbol) Emoji() string {
	if info, ok := symbolInfo[s]; ok {
		return info.emoji
	}
	return "?"
}

// Line is one spin's three symbols
type Line [Reels]Symbol

func (l Line) String() string {
	return l[0].Emoji() + l[1].Emoji() + l[2].Emoji()
}

// Win classifies a line
type Win int

const (
	NoMatch Win = iota
	Pair
	Jackpot
)

func (w Win) String() string {
	switch w {
	case Pair:
		return "pair"
	case Jackpot:
		return "jackpot"
	}
	return "no match"
}

var (
	jackpotMultiplier = decimal.NewFromInt(10)
	pairMultiplier    = decimal.RequireFromString("1.5")
)

// Multiplier is what the win returns per chip, before flooring
func (w Win) Multiplier() decimal.Decimal {
	switch w {
	case Jackpot:
		return jackpotMultiplier
	case Pair:
		return pairMultiplier
	}
	return common.Lose
}

// XP awarded for the win
func (w Win) XP() int64 {
	switch w {
	case Jackpot:
		return 100
	case Pair:
		return 20
	}
	return 5
}

func (w Win) outcome() entities.Outcome {
	switch w {
	case Jackpot:
		return entities.OutcomeJackpot
	case Pair:
		return entities.OutcomeWin
	}
	return entities.OutcomeLose
}

// Classify: three alike is a jackpot, exactly two alike in any position a pair
func Classify(line Line) Win {
	switch {
	case line[0] == line[1] && line[1] == line[2]:
		return Jackpot
	case line[0] == line[1] || line[1] == line[2] || line[0] == line[2]:
		return Pair
	}
	return NoMatch
}

// Result of one spin
type Result struct {
	Line     Line
	Win      Win
	Bet      int64
	Payout   int64
	Unlocked []achievements.Definition
}

// Machine spins for one account
type Machine struct {
	mu    sync.Mutex
	table *common.Table
	src   rng.Source
	last  *Result
}

// NewMachine creates a slot machine
func NewMachine(table *common.Table, src rng.Source) *Machine {
	return &Machine{table: table, src: src}
}

// Spin takes the bet, stops each reel independently and settles
func (m *Machine) Spin(ctx context.Context, bet int64) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.table.Wager(ctx, bet); err != nil {
		return Result{}, err
	}

	var line Line
	for i := range line {
		line[i] = rng.Pick(m.src, Symbols)
	}
	win := Classify(line)

	settled := m.table.Settle(ctx, common.Result{
		Bet:        bet,
		Outcome:    win.outcome(),
		Multiplier: win.Multiplier(),
		XP:         win.XP(),
		Detail:     fmt.Sprintf("%s %s", line, win),
	})

	res := Result{
		Line:     line,
		Win:      win,
		Bet:      bet,
		Payout:   settled.Round.Payout,
		Unlocked: settled.Unlocked,
	}
	m.last = &res
	return res, nil
}

// Last returns the most recent spin, if any
func (m *Machine) Last() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last == nil {
		return Result{}, false
	}
	return *m.last, true
}
