package resolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

// maxSearchSize caps unlimited searches at the default index.max_result_window
const maxSearchSize = 10000

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string

	// Transport overrides the HTTP transport; nil uses the client default
	Transport http.RoundTripper
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "cardsharp",
	}
}

// ElasticsearchRepository indexes resolutions for search and aggregation.
// Writes go to the base repository first, which stays the system of record.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	index    string
	logger   *logging.Logger
}

// NewElasticsearchRepository creates a new Elasticsearch repository wrapping baseRepo
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig, logger *logging.Logger) (*ElasticsearchRepository, error) {
	if config == nil {
		config = DefaultElasticsearchConfig()
	}

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

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "cardsharp"
	}

	repo := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		index:    prefix + "_resolutions",
		logger:   logging.OrDefault(logger),
	}

	if err := repo.initIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return repo, nil
}

// Index returns the name of the resolutions index
func (r *ElasticsearchRepository) Index() string {
	return r.index
}

// initIndex creates the resolutions index if it doesn't exist
func (r *ElasticsearchRepository) initIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if resolution index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"player_id": { "type": "keyword" },
				"channel_id": { "type": "keyword" },
				"action": { "type": "text" },
				"skill": { "type": "keyword" },
				"difficulty": { "type": "integer" },
				"cards": { "type": "keyword" },
				"hand_rank": { "type": "integer" },
				"hand_rank_name": { "type": "keyword" },
				"score": { "type": "integer" },
				"description": { "type": "text" },
				"skill_bonus": { "type": "integer" },
				"tier": { "type": "integer" },
				"success": { "type": "boolean" },
				"resolved_at": { "type": "date" }
			}
		}
	}`

	req := esapi.IndicesCreateRequest{
		Index: r.index,
		Body:  bytes.NewReader([]byte(mapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating resolution index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating resolution index: %s", res.String())
	}

	r.logger.Info("Created Elasticsearch index %s", r.index)
	return nil
}

// SaveResolution saves to the base repository and then indexes the document
func (r *ElasticsearchRepository) SaveResolution(ctx context.Context, resolution *entities.Resolution) error {
	if err := r.baseRepo.SaveResolution(ctx, resolution); err != nil {
		return fmt.Errorf("error saving resolution to base repository: %w", err)
	}

	return r.IndexResolution(ctx, resolution)
}

// IndexResolution writes one resolution document, keyed by its ID
func (r *ElasticsearchRepository) IndexResolution(ctx context.Context, resolution *entities.Resolution) error {
	jsonData, err := json.Marshal(toESResolution(resolution))
	if err != nil {
		return fmt.Errorf("error marshaling resolution: %w", err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(jsonData),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(resolution.ID),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing resolution: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing resolution: %s", res.String())
	}

	return nil
}

// GetResolution reads from the base repository
func (r *ElasticsearchRepository) GetResolution(ctx context.Context, id string) (*entities.Resolution, error) {
	return r.baseRepo.GetResolution(ctx, id)
}

// GetPlayerResolutions searches the index for a player's resolutions, newest first
func (r *ElasticsearchRepository) GetPlayerResolutions(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error) {
	if limit <= 0 || limit > maxSearchSize {
		limit = maxSearchSize
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"player_id": playerID},
		},
		"sort": []interface{}{
			map[string]interface{}{"resolved_at": map[string]string{"order": "desc"}},
			map[string]interface{}{"id": map[string]string{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error building player query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for player resolutions: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for player resolutions: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source ESResolution `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing player resolutions: %w", err)
	}

	resolutions := make([]*entities.Resolution, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		resolution, err := hit.Source.toEntity()
		if err != nil {
			// Skip the bad document but keep the rest of the history
			r.logger.Warn("Skipping unreadable resolution %s: %v", hit.Source.ID, err)
			continue
		}
		resolutions = append(resolutions, resolution)
	}

	return resolutions, nil
}

// GetChannelResolutions reads from the base repository
func (r *ElasticsearchRepository) GetChannelResolutions(ctx context.Context, channelID string, limit int) ([]*entities.Resolution, error) {
	return r.baseRepo.GetChannelResolutions(ctx, channelID, limit)
}

// CategoryCounts aggregates how often each hand category came up for a player
func (r *ElasticsearchRepository) CategoryCounts(ctx context.Context, playerID string) (map[entities.HandRank]int, error) {
	query := fmt.Sprintf(`{
		"size": 0,
		"query": {
			"term": { "player_id": %q }
		},
		"aggs": {
			"hand_ranks": {
				"terms": { "field": "hand_rank", "size": %d }
			}
		}
	}`, playerID, len(entities.AllHandRanks()))

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader([]byte(query))),
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating hand ranks: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error aggregating hand ranks: %s", res.String())
	}

	var result struct {
		Aggregations struct {
			HandRanks struct {
				Buckets []struct {
					Key      json.Number `json:"key"`
					DocCount int         `json:"doc_count"`
				} `json:"buckets"`
			} `json:"hand_ranks"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing hand rank aggregation: %w", err)
	}

	counts := make(map[entities.HandRank]int, len(result.Aggregations.HandRanks.Buckets))
	for _, bucket := range result.Aggregations.HandRanks.Buckets {
		key, err := strconv.Atoi(bucket.Key.String())
		if err != nil {
			return nil, fmt.Errorf("unexpected hand rank bucket %q: %w", bucket.Key, err)
		}
		counts[entities.HandRank(key)] = bucket.DocCount
	}

	return counts, nil
}

// PruneBefore deletes old documents from the index, then prunes the base repository
func (r *ElasticsearchRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := fmt.Sprintf(`{
		"query": {
			"range": {
				"resolved_at": { "lt": %q }
			}
		}
	}`, cutoff.UTC().Format(time.RFC3339Nano))

	res, err := r.client.DeleteByQuery(
		[]string{r.index},
		bytes.NewReader([]byte(query)),
		r.client.DeleteByQuery.WithContext(ctx),
		r.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return 0, fmt.Errorf("error pruning resolution index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("error pruning resolution index: %s", res.String())
	}

	var result struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		r.logger.Warn("Could not read delete-by-query response: %v", err)
	}
	r.logger.Debug("Deleted %d documents from %s", result.Deleted, r.index)

	return r.baseRepo.PruneBefore(ctx, cutoff)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
