package achievements

import "github.com/fadedpez/cardroyale/pkg/entities"

// Built-in achievement ids.
const (
	FirstWin        = "first-win"
	BlackjackNovice = "blackjack-novice"
	Veteran         = "veteran"
	HighRoller      = "high-roller"
	BlackjackMaster = "blackjack-master"
	Millionaire     = "millionaire"
)

var builtin = []Definition{
	{
		ID:          FirstWin,
		Title:       "First Blood",
		Description: "Win your first game.",
		Icon:        "⚔️",
		XPReward:    100,
		Condition:   func(s entities.UserStats) bool { return s.GamesWon >= 1 },
	},
	{
		ID:          BlackjackNovice,
		Title:       "Natural",
		Description: "Get your first Blackjack.",
		Icon:        "🃏",
		XPReward:    150,
		Condition:   func(s entities.UserStats) bool { return s.Blackjacks >= 1 },
	},
	{
		ID:          Veteran,
		Title:       "Card Shark",
		Description: "Play 50 hands.",
		Icon:        "🦈",
		XPReward:    500,
		Condition:   func(s entities.UserStats) bool { return s.GamesPlayed >= 50 },
	},
	{
		ID:          HighRoller,
		Title:       "High Roller",
		Description: "Win 100,000 chips total.",
		Icon:        "💰",
		XPReward:    1000,
		Condition:   func(s entities.UserStats) bool { return s.TotalChipsWon >= 100000 },
	},
	{
		ID:          BlackjackMaster,
		Title:       "Blackjack Master",
		Description: "Get 10 Blackjacks.",
		Icon:        "👑",
		XPReward:    2000,
		Condition:   func(s entities.UserStats) bool { return s.Blackjacks >= 10 },
	},
	{
		ID:          Millionaire,
		Title:       "Millionaire",
		Description: "Hold 1,000,000 chips at once.",
		Icon:        "💎",
		XPReward:    5000,
		Condition:   func(s entities.UserStats) bool { return s.HighestBalance >= 1000000 },
	},
}
