package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/models"
)

// EventIndex keeps browseable events searchable.
type EventIndex interface {
	Index(ctx context.Context, event *models.Event) error
	Search(ctx context.Context, q Query) ([]string, error)
}

type Config struct {
	URL   string
	Index string
}

// ElasticsearchIndex stores EventDocuments and returns matching ids; callers
// hydrate full events from the database.
type ElasticsearchIndex struct {
	client *elasticsearch.Client
	index  string
}

var _ EventIndex = (*ElasticsearchIndex)(nil)

func NewElasticsearchIndex(ctx context.Context, cfg Config) (*ElasticsearchIndex, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	idx := &ElasticsearchIndex{client: es, index: cfg.Index}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return idx, nil
}

func (i *ElasticsearchIndex) ensureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":         map[string]interface{}{"type": "keyword"},
				"client_id":  map[string]interface{}{"type": "keyword"},
				"title":      map[string]interface{}{"type": "text"},
				"city":       map[string]interface{}{"type": "text"},
				"city_lower": map[string]interface{}{"type": "keyword"},
				"area":       map[string]interface{}{"type": "text"},
				"venue":      map[string]interface{}{"type": "text"},
				"shift_date": map[string]interface{}{"type": "date"},
				"status":     map[string]interface{}{"type": "keyword"},
				"is_urgent":  map[string]interface{}{"type": "boolean"},
				"role_names": map[string]interface{}{"type": "keyword"},
				"max_pay":    map[string]interface{}{"type": "double"},
				"created_at": map[string]interface{}{"type": "date"},
			},
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createRes, err := esapi.IndicesCreateRequest{Index: i.index, Body: bytes.NewReader(body)}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	logger.Info("created Elasticsearch index", "index", i.index)
	return nil
}

func (i *ElasticsearchIndex) Index(ctx context.Context, event *models.Event) error {
	body, err := json.Marshal(NewEventDocument(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	res, err := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: event.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("failed to index event: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (i *ElasticsearchIndex) Search(ctx context.Context, q Query) ([]string, error) {
	body, err := json.Marshal(BuildQuery(q))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{i.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID string `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
