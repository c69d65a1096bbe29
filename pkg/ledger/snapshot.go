package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// Defaults for a brand new player.
const (
	StorageKey      = "card-royale-user"
	InitialChips    = int64(10000)
	DefaultUsername = "Guest Player"
	XPPerLevel      = int64(1000)
)

// Snapshot is the persisted form of a ledger. Pending notifications are
// session state and are not persisted.
type Snapshot struct {
	Chips                int64              `json:"chips"`
	XP                   int64              `json:"xp"`
	Level                int                `json:"level"`
	Username             string             `json:"username"`
	Stats                entities.UserStats `json:"stats"`
	UnlockedAchievements []string           `json:"unlockedAchievements"`
}

// DefaultSnapshot is the state of a player with no saved data.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Chips:                InitialChips,
		XP:                   0,
		Level:                1,
		Username:             DefaultUsername,
		Stats:                entities.UserStats{HighestBalance: InitialChips},
		UnlockedAchievements: []string{},
	}
}

// Threshold is the XP needed to leave level.
func Threshold(level int) int64 {
	return int64(level) * XPPerLevel
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.UnlockedAchievements = append([]string{}, s.UnlockedAchievements...)
	return out
}

// decodeSnapshot merges data over the defaults, so fields missing from an
// older snapshot keep their default values.
func decodeSnapshot(data []byte) (Snapshot, error) {
	snap := DefaultSnapshot()
	// stats are merged field by field; start them from zero so an old
	// snapshot without highestBalance is rebuilt from chips below
	snap.Stats.HighestBalance = 0
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}

	if snap.Chips < 0 || snap.XP < 0 || snap.Level < 1 {
		return Snapshot{}, fmt.Errorf("out of range: chips=%d xp=%d level=%d", snap.Chips, snap.XP, snap.Level)
	}
	// older saves could hold a full level of xp without having levelled
	for snap.XP >= Threshold(snap.Level) {
		snap.XP -= Threshold(snap.Level)
		snap.Level++
	}
	if snap.Username == "" {
		snap.Username = DefaultUsername
	}
	if snap.UnlockedAchievements == nil {
		snap.UnlockedAchievements = []string{}
	}
	snap.UnlockedAchievements = dedupe(snap.UnlockedAchievements)
	snap.Stats = clampStats(snap.Stats)
	if snap.Chips > snap.Stats.HighestBalance {
		snap.Stats.HighestBalance = snap.Chips
	}

	return snap, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func clampStats(st entities.UserStats) entities.UserStats {
	for _, v := range []*int64{&st.GamesPlayed, &st.GamesWon, &st.Blackjacks, &st.TotalChipsWon, &st.HighestBalance} {
		if *v < 0 {
			*v = 0
		}
	}
	return st
}
