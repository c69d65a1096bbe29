package games

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/types"
	"github.com/fadedpez/cardroyale/pkg/casino"
	"github.com/fadedpez/cardroyale/pkg/entities"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
	strategy Strategy
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = NewRegistry()
	s.strategy = StrategyFunc(func(context.Context, *casino.Session, int64) (string, error) {
		return "played", nil
	})
}

func (s *RegistryTestSuite) TestNewRegistry() {
	registry := NewRegistry()

	s.NotNil(registry, "Registry should not be nil")
	s.Empty(registry.List(), "Registry should start empty")
}

func (s *RegistryTestSuite) TestRegister() {
	err := s.registry.Register(entities.GameSlots, s.strategy)
	s.NoError(err, "Should register game without error")

	strategy, err := s.registry.Get(entities.GameSlots)
	s.NoError(err, "Should get strategy without error")

	line, err := strategy.Play(context.Background(), nil, 10)
	s.NoError(err)
	s.Equal("played", line)
}

func (s *RegistryTestSuite) TestRegisterDuplicate() {
	s.Require().NoError(s.registry.Register(entities.GameSlots, s.strategy))

	err := s.registry.Register(entities.GameSlots, s.strategy)

	s.Error(err, "Should return error when registering duplicate game")
	s.True(types.IsGameError(err, types.ErrInvalidAction), "Should return InvalidAction error")
}

func (s *RegistryTestSuite) TestGetMissing() {
	strategy, err := s.registry.Get(entities.GamePoker)

	s.Nil(strategy)
	s.True(types.IsGameError(err, types.ErrNotFound), "Should return NotFound error")
}

func (s *RegistryTestSuite) TestListFollowsGameOrder() {
	s.Require().NoError(s.registry.Register(entities.GameSlots, s.strategy))
	s.Require().NoError(s.registry.Register(entities.GameBlackjack, s.strategy))
	s.Require().NoError(s.registry.Register(entities.GameRoulette, s.strategy))

	s.Equal([]entities.GameType{entities.GameBlackjack, entities.GameRoulette, entities.GameSlots}, s.registry.List())
}
