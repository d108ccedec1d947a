package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"anubhav/internal/config"
	"anubhav/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchClient indexes the experience catalog for text search
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig
}

// NewElasticsearchClient creates a new Elasticsearch client and ensures the index exists
func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{
		client: es,
		config: cfg,
	}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

// ensureIndex creates the index if it does not exist
func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type": "keyword",
				},
				"title": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{
							"type":         "keyword",
							"ignore_above": 256,
						},
					},
				},
				"description": map[string]interface{}{
					"type": "text",
				},
				"category": map[string]interface{}{
					"type": "keyword",
				},
				"price": map[string]interface{}{
					"type": "long",
				},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// Index writes an experience document keyed by its catalog id
func (c *ElasticsearchClient) Index(ctx context.Context, exp *models.Experience) error {
	doc := map[string]interface{}{
		"id":          exp.ID,
		"title":       exp.Title,
		"description": exp.Description,
		"category":    exp.Category,
		"price":       exp.Price,
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: exp.ID,
		Body:       strings.NewReader(string(docJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

// Delete removes an experience document from the index
func (c *ElasticsearchClient) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

// Search returns experience ids ranked by relevance for a free-text query,
// optionally restricted to a category.
func (c *ElasticsearchClient) Search(ctx context.Context, query, category string) ([]string, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	if category != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	}

	searchRequest := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"size": 50,
	}

	searchJSON, err := json.Marshal(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(searchJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	ids := make([]string, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
