package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadedpez/cardroyale/internal/config"
	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/db"
	"github.com/fadedpez/cardroyale/pkg/repositories/history"
	"github.com/fadedpez/cardroyale/pkg/repositories/journal"
	"github.com/fadedpez/cardroyale/pkg/scheduler"
	"github.com/fadedpez/cardroyale/pkg/storage"
	"github.com/fadedpez/cardroyale/pkg/storage/file"
	"github.com/fadedpez/cardroyale/pkg/storage/sqlite"
)

type backend struct {
	conn    *sql.DB
	store   storage.Store
	history history.Repository
	search  *history.ElasticsearchRepository
	journal journal.Repository
	log     *logging.Logger
}

// openBackend picks storage, history and journal for cfg.StorageType. The
// sqlite backend keeps all three in one database; the others keep history
// and journal in memory.
func openBackend(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*backend, error) {
	b := &backend{log: logger}

	switch cfg.StorageType {
	case config.StorageSQLite:
		conn, err := db.OpenSQLite(cfg.DatabasePath(), logger)
		if err != nil {
			return nil, err
		}
		b.conn = conn
		b.store = sqlite.NewWithDB(conn)
		b.history = history.NewSQLiteRepository(conn)
		b.journal = journal.NewSQLiteRepository(conn)
	case config.StorageFile:
		store, err := file.New(cfg.SnapshotPath(), logger)
		if err != nil {
			return nil, err
		}
		b.store = store
		b.history = history.NewMemoryRepository()
		b.journal = journal.NewMemoryRepository()
	default:
		b.store = storage.NewMemoryStore()
		b.history = history.NewMemoryRepository()
		b.journal = journal.NewMemoryRepository()
	}

	if cfg.Elasticsearch.Enabled {
		search, err := history.NewElasticsearchRepository(b.history, history.ElasticsearchConfig{
			URL:             cfg.Elasticsearch.URL,
			Username:        cfg.Elasticsearch.Username,
			Password:        cfg.Elasticsearch.Password,
			IndexPrefix:     cfg.Elasticsearch.IndexPrefix,
			RetentionMonths: cfg.Elasticsearch.RetentionMonths,
		}, logger)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to initialize Elasticsearch: %w", err)
		}
		b.search = search
		b.history = search
		logger.Info("Indexing rounds into Elasticsearch at %s", cfg.Elasticsearch.URL)
	}

	return b, nil
}

// indices returns the index pruner, or nil when search is off
func (b *backend) indices() scheduler.IndexPruner {
	if b.search == nil {
		return nil
	}
	return b.search
}

func (b *backend) Close() {
	if b.journal != nil {
		b.journal.Close()
	}
	if b.history != nil {
		b.history.Close()
	}
	if b.store != nil {
		if err := b.store.Close(); err != nil {
			b.log.Warn("Error closing store: %v", err)
		}
	}
	if b.conn != nil {
		b.conn.Close()
	}
}
