package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/entities"
)

const indexDateFormat = "2006-01"

const roundMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"account_id": { "type": "keyword" },
			"game": { "type": "keyword" },
			"bet": { "type": "long" },
			"payout": { "type": "long" },
			"net": { "type": "long" },
			"outcome": { "type": "keyword" },
			"detail": { "type": "text" },
			"completed_at": { "type": "date" }
		}
	},
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch decorator
type ElasticsearchConfig struct {
	URL             string
	Username        string
	Password        string
	IndexPrefix     string
	RetentionMonths int // Monthly indices older than this are deleted by PruneOldIndices

	// Transport overrides the HTTP transport, mainly for tests
	Transport http.RoundTripper
}

// ElasticsearchRepository writes rounds to a base repository and mirrors
// them into monthly Elasticsearch indices for search.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	config   ElasticsearchConfig
	logger   *logging.Logger

	mu      sync.Mutex
	created map[string]bool
}

// esRound is the document shape stored in Elasticsearch
type esRound struct {
	RoundID     string    `json:"round_id"`
	AccountID   string    `json:"account_id"`
	Game        string    `json:"game"`
	Bet         int64     `json:"bet"`
	Payout      int64     `json:"payout"`
	Net         int64     `json:"net"`
	Outcome     string    `json:"outcome"`
	Detail      string    `json:"detail"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewElasticsearchRepository creates a decorator around baseRepo
func NewElasticsearchRepository(baseRepo Repository, config ElasticsearchConfig, logger *logging.Logger) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "cardroyale"
	}
	if config.RetentionMonths <= 0 {
		config.RetentionMonths = 3
	}

	return &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		config:   config,
		logger:   logger.Or(),
		created:  make(map[string]bool),
	}, nil
}

// IndexName returns the monthly index a round completed at t belongs to
func (r *ElasticsearchRepository) IndexName(t time.Time) string {
	return r.config.IndexPrefix + "_rounds_" + t.UTC().Format(indexDateFormat)
}

// SaveRound saves to the base repository first; indexing failures are logged
// and do not fail the save.
func (r *ElasticsearchRepository) SaveRound(ctx context.Context, round *entities.Round) error {
	if err := r.baseRepo.SaveRound(ctx, round); err != nil {
		return err
	}

	if err := r.IndexRound(ctx, round); err != nil {
		r.logger.Warn("Error indexing round %s: %v", round.ID, err)
	}
	return nil
}

// IndexRound writes one round document into its monthly index
func (r *ElasticsearchRepository) IndexRound(ctx context.Context, round *entities.Round) error {
	fillRound(round)
	index := r.IndexName(round.CompletedAt)
	if err := r.ensureIndex(ctx, index); err != nil {
		return err
	}

	doc := esRound{
		RoundID:     round.ID,
		AccountID:   round.AccountID,
		Game:        string(round.Game),
		Bet:         round.Bet,
		Payout:      round.Payout,
		Net:         round.Net(),
		Outcome:     string(round.Outcome),
		Detail:      round.Detail,
		CompletedAt: round.CompletedAt.UTC(),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling round: %w", err)
	}

	res, err := r.client.Index(
		index,
		bytes.NewReader(body),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(round.ID),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round: %s", res.String())
	}
	return nil
}

func (r *ElasticsearchRepository) ensureIndex(ctx context.Context, index string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.created[index] {
		return nil
	}

	res, err := r.client.Indices.Exists([]string{index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if index exists: %w", err)
	}
	res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error checking if index exists: %s", res.Status())
	}

	if res.StatusCode == http.StatusNotFound {
		req := esapi.IndicesCreateRequest{
			Index: index,
			Body:  strings.NewReader(roundMapping),
		}

		res, err := req.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", index, err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating index %s: %s", index, res.String())
		}
		r.logger.Info("Created round index: %s", index)
	}

	r.created[index] = true
	return nil
}

// SearchRounds runs a match query over detail text for an account, newest first
func (r *ElasticsearchRepository) SearchRounds(ctx context.Context, accountID, text string, limit int) ([]*entities.Round, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"account_id": accountID}},
				},
				"must": []map[string]interface{}{
					{"match": map[string]interface{}{"detail": text}},
				},
			},
		},
		"sort": []map[string]interface{}{
			{"completed_at": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.config.IndexPrefix+"_rounds_*"),
		r.client.Search.WithBody(&buf),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching rounds: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source esRound `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing search response: %w", err)
	}

	rounds := make([]*entities.Round, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		doc := hit.Source
		rounds = append(rounds, &entities.Round{
			ID:          doc.RoundID,
			AccountID:   doc.AccountID,
			Game:        entities.GameType(doc.Game),
			Bet:         doc.Bet,
			Payout:      doc.Payout,
			Outcome:     entities.Outcome(doc.Outcome),
			Detail:      doc.Detail,
			CompletedAt: doc.CompletedAt,
		})
	}
	return rounds, nil
}

// PruneOldIndices deletes monthly indices older than the retention window
// and returns the deleted index names.
func (r *ElasticsearchRepository) PruneOldIndices(ctx context.Context, now time.Time) ([]string, error) {
	pattern := r.config.IndexPrefix + "_rounds_*"
	res, err := r.client.Indices.Get([]string{pattern}, r.client.Indices.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error getting indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error getting indices: %s", res.String())
	}

	var indicesInfo map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&indicesInfo); err != nil {
		return nil, fmt.Errorf("error parsing indices response: %w", err)
	}

	now = now.UTC()
	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -r.config.RetentionMonths, 0)
	prefix := r.config.IndexPrefix + "_rounds_"

	var expired []string
	for indexName := range indicesInfo {
		suffix, ok := strings.CutPrefix(indexName, prefix)
		if !ok {
			continue
		}
		month, err := time.Parse(indexDateFormat, suffix)
		if err != nil {
			continue
		}
		if month.Before(cutoff) {
			expired = append(expired, indexName)
		}
	}
	sort.Strings(expired)

	deleted := make([]string, 0, len(expired))
	for _, indexName := range expired {
		req := esapi.IndicesDeleteRequest{Index: []string{indexName}}
		res, err := req.Do(ctx, r.client)
		if err != nil {
			r.logger.Error("Error deleting index %s: %v", indexName, err)
			continue
		}
		res.Body.Close()
		if res.IsError() {
			r.logger.Error("Error deleting index %s: %s", indexName, res.String())
			continue
		}

		r.mu.Lock()
		delete(r.created, indexName)
		r.mu.Unlock()

		r.logger.Info("Deleted expired round index: %s", indexName)
		deleted = append(deleted, indexName)
	}
	return deleted, nil
}

// GetRecentRounds delegates to the base repository
func (r *ElasticsearchRepository) GetRecentRounds(ctx context.Context, accountID string, limit int) ([]*entities.Round, error) {
	return r.baseRepo.GetRecentRounds(ctx, accountID, limit)
}

// GetSummary delegates to the base repository
func (r *ElasticsearchRepository) GetSummary(ctx context.Context, accountID string) (map[entities.GameType]*entities.GameSummary, error) {
	return r.baseRepo.GetSummary(ctx, accountID)
}

// GetAllSummaries delegates to the base repository
func (r *ElasticsearchRepository) GetAllSummaries(ctx context.Context, game entities.GameType) ([]*entities.GameSummary, error) {
	return r.baseRepo.GetAllSummaries(ctx, game)
}

// PruneRounds delegates to the base repository
func (r *ElasticsearchRepository) PruneRounds(ctx context.Context, keepPerAccount int) (int64, error) {
	return r.baseRepo.PruneRounds(ctx, keepPerAccount)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
