package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

func ids(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := Default()

	assert.Equal(t, 6, r.Len())
	assert.Equal(t,
		[]string{FirstWin, BlackjackNovice, Veteran, HighRoller, BlackjackMaster, Millionaire},
		ids(r.All()))

	d, ok := r.Get(Millionaire)
	require.True(t, ok)
	assert.Equal(t, int64(5000), d.XPReward)

	_, ok = r.Get("nope")
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	r := Default()
	none := func(string) bool { return false }

	tests := []struct {
		name     string
		stats    entities.UserStats
		unlocked func(string) bool
		want     []string
	}{
		{
			name:     "fresh player",
			stats:    entities.UserStats{HighestBalance: 10000},
			unlocked: none,
			want:     []string{},
		},
		{
			name:     "first blackjack win",
			stats:    entities.UserStats{GamesPlayed: 1, GamesWon: 1, Blackjacks: 1},
			unlocked: none,
			want:     []string{FirstWin, BlackjackNovice},
		},
		{
			name:     "already unlocked are skipped",
			stats:    entities.UserStats{GamesPlayed: 60, GamesWon: 30, Blackjacks: 1},
			unlocked: func(id string) bool { return id == FirstWin || id == BlackjackNovice },
			want:     []string{Veteran},
		},
		{
			name: "thresholds are inclusive",
			stats: entities.UserStats{
				GamesPlayed: 50, GamesWon: 1, Blackjacks: 10,
				TotalChipsWon: 100000, HighestBalance: 1000000,
			},
			unlocked: none,
			want:     []string{FirstWin, BlackjackNovice, Veteran, HighRoller, BlackjackMaster, Millionaire},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(r.Evaluate(tt.stats, tt.unlocked)))
		})
	}
}

func TestNewRegistryRejectsBadDefinitions(t *testing.T) {
	always := func(entities.UserStats) bool { return true }

	_, err := NewRegistry(Definition{ID: "a", Condition: always}, Definition{ID: "a", Condition: always})
	assert.Error(t, err)

	_, err = NewRegistry(Definition{ID: "", Condition: always})
	assert.Error(t, err)

	_, err = NewRegistry(Definition{ID: "b"})
	assert.Error(t, err)

	_, err = NewRegistry(Definition{ID: "c", XPReward: -1, Condition: always})
	assert.Error(t, err)
}
