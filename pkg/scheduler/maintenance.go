package scheduler

import (
	"context"
	"time"

	"github.com/coder/quartz"

	"github.com/fadedpez/cardroyale/internal/logging"
)

// Default maintenance intervals.
const (
	DefaultHistoryInterval = time.Hour
	DefaultIndexInterval   = 7 * 24 * time.Hour
)

// RoundPruner trims stored round history. history.Repository satisfies it.
type RoundPruner interface {
	PruneRounds(ctx context.Context, keepPerAccount int) (int64, error)
}

// IndexPruner drops expired search indices. *history.ElasticsearchRepository
// satisfies it.
type IndexPruner interface {
	PruneOldIndices(ctx context.Context, now time.Time) ([]string, error)
}

// MaintenanceConfig selects which maintenance tasks run
type MaintenanceConfig struct {
	History         RoundPruner
	KeepPerAccount  int
	HistoryInterval time.Duration

	// Indices is optional
	Indices       IndexPruner
	IndexInterval time.Duration
}

// Maintenance keeps round history and search indices bounded
type Maintenance struct {
	scheduler *Scheduler
	clock     quartz.Clock
	config    MaintenanceConfig
	log       *logging.Logger
}

// NewMaintenance creates a maintenance scheduler for config
func NewMaintenance(clock quartz.Clock, config MaintenanceConfig, logger *logging.Logger) *Maintenance {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if config.HistoryInterval <= 0 {
		config.HistoryInterval = DefaultHistoryInterval
	}
	if config.IndexInterval <= 0 {
		config.IndexInterval = DefaultIndexInterval
	}

	m := &Maintenance{
		scheduler: NewScheduler(clock, logger),
		clock:     clock,
		config:    config,
		log:       logger.Or().WithPrefix("maintenance"),
	}

	if config.History != nil && config.KeepPerAccount > 0 {
		m.scheduler.AddTask("history_pruning", config.HistoryInterval, m.pruneHistory)
	}
	if config.Indices != nil {
		m.scheduler.AddTask("index_pruning", config.IndexInterval, m.pruneIndices)
	}
	return m
}

// Start starts the maintenance scheduler
func (m *Maintenance) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
}

// Stop stops the maintenance scheduler
func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

// Tasks lists the configured task names
func (m *Maintenance) Tasks() []string {
	return m.scheduler.Tasks()
}

func (m *Maintenance) pruneHistory(ctx context.Context) error {
	removed, err := m.config.History.PruneRounds(ctx, m.config.KeepPerAccount)
	if err != nil {
		return err
	}
	if removed > 0 {
		m.log.Info("Pruned %d rounds", removed)
	}
	return nil
}

func (m *Maintenance) pruneIndices(ctx context.Context) error {
	deleted, err := m.config.Indices.PruneOldIndices(ctx, m.clock.Now())
	if err != nil {
		return err
	}
	if len(deleted) > 0 {
		m.log.Info("Pruned %d indices", len(deleted))
	}
	return nil
}
