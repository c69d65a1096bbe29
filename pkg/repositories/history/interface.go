// Package history stores settled rounds for profiles, leaderboards and search.
package history

import (
	"context"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// Recorder is the write side used by the tables
type Recorder interface {
	SaveRound(ctx context.Context, round *entities.Round) error
}

// Repository defines storage operations for round history
type Repository interface {
	Recorder

	// GetRecentRounds returns an account's rounds, newest first
	GetRecentRounds(ctx context.Context, accountID string, limit int) ([]*entities.Round, error)

	// GetSummary aggregates an account's rounds per game
	GetSummary(ctx context.Context, accountID string) (map[entities.GameType]*entities.GameSummary, error)

	// GetAllSummaries aggregates one game's rounds per account
	GetAllSummaries(ctx context.Context, game entities.GameType) ([]*entities.GameSummary, error)

	// PruneRounds keeps only the newest keepPerAccount rounds of every
	// account and returns how many were removed
	PruneRounds(ctx context.Context, keepPerAccount int) (int64, error)

	// Close closes any resources used by the repository
	Close() error
}
