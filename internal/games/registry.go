// Package games holds the automatic strategies the simulator plays with,
// one per game type.
package games

import (
	"context"
	"fmt"
	"sync"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/casino"
	"github.com/fadedpez/cardroyale/pkg/entities"
)

// Strategy plays one full round of its game and describes it
type Strategy interface {
	Play(ctx context.Context, s *casino.Session, bet int64) (string, error)
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(ctx context.Context, s *casino.Session, bet int64) (string, error)

// Play calls f
func (f StrategyFunc) Play(ctx context.Context, s *casino.Session, bet int64) (string, error) {
	return f(ctx, s, bet)
}

// Registry maps game types to strategies
type Registry struct {
	strategies map[entities.GameType]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates a new, empty registry
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[entities.GameType]Strategy),
	}
}

// Register adds the strategy for game
func (r *Registry) Register(game entities.GameType, strategy Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[game]; exists {
		return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("Game %s is already registered", game))
	}

	r.strategies[game] = strategy
	return nil
}

// Get returns the strategy for game
func (r *Registry) Get(game entities.GameType) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[game]
	if !exists {
		return nil, types.NewGameError(types.ErrNotFound, fmt.Sprintf("Game %s not found", game))
	}

	return strategy, nil
}

// List returns the registered games in the canonical game order
func (r *Registry) List() []entities.GameType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]entities.GameType, 0, len(r.strategies))
	for _, game := range entities.GameTypes {
		if _, ok := r.strategies[game]; ok {
			games = append(games, game)
		}
	}
	return games
}
