package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// MemoryRepository implements Repository with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of accountID to rounds, oldest first
	rounds map[string][]*entities.Round
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds: make(map[string][]*entities.Round),
	}
}

// SaveRound stores a copy of round, assigning ID and CompletedAt when empty
func (r *MemoryRepository) SaveRound(ctx context.Context, round *entities.Round) error {
	fillRound(round)

	r.mu.Lock()
	defer r.mu.Unlock()

	roundCopy := *round
	r.rounds[round.AccountID] = append(r.rounds[round.AccountID], &roundCopy)
	return nil
}

// GetRecentRounds returns an account's rounds, newest first
func (r *MemoryRepository) GetRecentRounds(ctx context.Context, accountID string, limit int) ([]*entities.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.rounds[accountID]
	result := make([]*entities.Round, 0)
	for i := len(rounds) - 1; i >= 0 && len(result) < limit; i-- {
		roundCopy := *rounds[i]
		result = append(result, &roundCopy)
	}
	return result, nil
}

// GetSummary aggregates an account's rounds per game
func (r *MemoryRepository) GetSummary(ctx context.Context, accountID string) (map[entities.GameType]*entities.GameSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make(map[entities.GameType]*entities.GameSummary)
	for _, round := range r.rounds[accountID] {
		summary, ok := summaries[round.Game]
		if !ok {
			summary = &entities.GameSummary{AccountID: accountID, Game: round.Game}
			summaries[round.Game] = summary
		}
		summary.Add(round)
	}
	return summaries, nil
}

// GetAllSummaries aggregates one game's rounds per account
func (r *MemoryRepository) GetAllSummaries(ctx context.Context, game entities.GameType) ([]*entities.GameSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.GameSummary, 0)
	for accountID, rounds := range r.rounds {
		summary := &entities.GameSummary{AccountID: accountID, Game: game}
		for _, round := range rounds {
			if round.Game == game {
				summary.Add(round)
			}
		}
		if summary.RoundsPlayed > 0 {
			result = append(result, summary)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AccountID < result[j].AccountID })
	return result, nil
}

// PruneRounds keeps only the newest keepPerAccount rounds of every account
func (r *MemoryRepository) PruneRounds(ctx context.Context, keepPerAccount int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for accountID, rounds := range r.rounds {
		if len(rounds) <= keepPerAccount {
			continue
		}
		drop := len(rounds) - keepPerAccount
		r.rounds[accountID] = append([]*entities.Round(nil), rounds[drop:]...)
		removed += int64(drop)
	}
	return removed, nil
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

func fillRound(round *entities.Round) {
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	if round.CompletedAt.IsZero() {
		round.CompletedAt = time.Now()
	}
}
