package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

// facetDimensions are the aggregation dimensions requested alongside
// every faceted search.
var facetDimensions = []string{"category", "source", "hash_tags"}

// taskPollInterval paces WaitForTask polling on write operations.
const taskPollInterval = 500 * time.Millisecond

type MeilisearchDriver struct {
	client          meilisearch.ServiceManager
	index           meilisearch.IndexManager
	recommendations meilisearch.IndexManager
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName, recommendationIndexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client:          client,
		index:           client.Index(indexName),
		recommendations: client.Index(recommendationIndexName),
	}
}

func (d *MeilisearchDriver) SearchArticles(ctx context.Context, q SearchQueryDriver) (*SearchResultDriver, error) {
	searchRequest := &meilisearch.SearchRequest{
		Limit:  q.Limit,
		Offset: q.Offset,
		Sort:   sortExpressions(q.Sort),
	}

	if filter := buildSearchFilter(q); filter != "" {
		searchRequest.Filter = filter
	}
	if q.WithFacets {
		searchRequest.Facets = facetDimensions
	}

	result, err := d.index.Search(q.Query, searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	hits, err := decodeHits(result)
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	facets, err := decodeFacetDistribution(result)
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	return &SearchResultDriver{
		Hits:   hits,
		Total:  result.EstimatedTotalHits,
		Facets: facets,
	}, nil
}

func (d *MeilisearchDriver) TopRanked(ctx context.Context, limit int) ([]ArticleDocumentDriver, error) {
	searchRequest := &meilisearch.SearchRequest{
		Limit: int64(limit),
		Sort:  sortExpressions("desc"),
	}

	result, err := d.index.Search("", searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "TopRanked",
			Err: err.Error(),
		}
	}

	hits, err := decodeHits(result)
	if err != nil {
		return nil, &DriverError{
			Op:  "TopRanked",
			Err: err.Error(),
		}
	}
	return hits, nil
}

func (d *MeilisearchDriver) IndexDocuments(ctx context.Context, docs []ArticleDocumentDriver) error {
	if len(docs) == 0 {
		return nil
	}

	task, err := d.index.AddDocuments(docs)
	if err != nil {
		return &DriverError{
			Op:  "IndexDocuments",
			Err: err.Error(),
		}
	}

	// Wait for the indexing task to complete
	_, err = d.index.WaitForTask(task.TaskUID, taskPollInterval)
	if err != nil {
		return &DriverError{
			Op:  "IndexDocuments",
			Err: "failed to wait for indexing task: " + err.Error(),
		}
	}

	return nil
}

func (d *MeilisearchDriver) DeleteDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	task, err := d.index.DeleteDocuments(ids)
	if err != nil {
		return &DriverError{
			Op:  "DeleteDocuments",
			Err: err.Error(),
		}
	}

	_, err = d.index.WaitForTask(task.TaskUID, taskPollInterval)
	if err != nil {
		return &DriverError{
			Op:  "DeleteDocuments",
			Err: "failed to wait for deletion task: " + err.Error(),
		}
	}

	return nil
}

// EnsureIndex creates the article index if needed and applies the
// attribute settings the query composer relies on.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	_, err := d.index.FetchInfo()
	if err != nil {
		// Index might not exist, create it by adding a bootstrap document
		bootstrapDoc := []map[string]interface{}{
			{
				"id":        "init",
				"title":     "Initialization document",
				"blurb":     "This document is used to create the index",
				"hash_tags": []string{},
			},
		}

		task, err := d.index.AddDocuments(bootstrapDoc)
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to create index: " + err.Error(),
			}
		}

		_, err = d.index.WaitForTask(task.TaskUID, taskPollInterval)
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to wait for index creation: " + err.Error(),
			}
		}

		deleteTask, err := d.index.DeleteDocument("init")
		if err == nil {
			d.index.WaitForTask(deleteTask.TaskUID, taskPollInterval)
		}
	}

	_, err = d.index.UpdateSearchableAttributes(&[]string{"title", "blurb"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set searchable attributes: " + err.Error(),
		}
	}

	_, err = d.index.UpdateFilterableAttributes(&[]string{"id", "category", "category_id", "source", "domain_id", "hash_tags"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set filterable attributes: " + err.Error(),
		}
	}

	_, err = d.index.UpdateSortableAttributes(&[]string{"article_score", "published_on"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set sortable attributes: " + err.Error(),
		}
	}

	// Category and source cardinality stays well below this; hash_tags is
	// capped again at the extraction layer.
	_, err = d.index.UpdateFaceting(&meilisearch.Faceting{MaxValuesPerFacet: 100})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set faceting limit: " + err.Error(),
		}
	}

	// The recommendation index is written by the offline similarity
	// pipeline; only the lookup attribute is managed here.
	_, err = d.recommendations.UpdateFilterableAttributes(&[]string{"article_id"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set recommendation filterable attributes: " + err.Error(),
		}
	}

	return nil
}

// RecommendationIDs resolves the precomputed related-article id list for
// an article from the recommendation index. An article without an entry
// yields an empty list.
func (d *MeilisearchDriver) RecommendationIDs(ctx context.Context, articleID string) ([]string, error) {
	searchRequest := &meilisearch.SearchRequest{
		Limit:  1,
		Filter: fmt.Sprintf("article_id = \"%s\"", escapeFilterValue(articleID)),
	}

	result, err := d.recommendations.Search("", searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "RecommendationIDs",
			Err: err.Error(),
		}
	}
	if len(result.Hits) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(result.Hits[0])
	if err != nil {
		return nil, &DriverError{
			Op:  "RecommendationIDs",
			Err: "marshal recommendation hit: " + err.Error(),
		}
	}
	var doc RecommendationDocumentDriver
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DriverError{
			Op:  "RecommendationIDs",
			Err: "decode recommendation hit: " + err.Error(),
		}
	}
	return doc.RecommendedIDs, nil
}

// ArticlesByID fetches up to limit article documents by id, in engine
// relevance order.
func (d *MeilisearchDriver) ArticlesByID(ctx context.Context, ids []string, limit int) ([]ArticleDocumentDriver, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	searchRequest := &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: stringTermGroup("id", ids),
	}

	result, err := d.index.Search("", searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "ArticlesByID",
			Err: err.Error(),
		}
	}

	hits, err := decodeHits(result)
	if err != nil {
		return nil, &DriverError{
			Op:  "ArticlesByID",
			Err: err.Error(),
		}
	}
	return hits, nil
}

// sortExpressions builds the composite sort: relevance score first,
// publication time second, one shared direction.
func sortExpressions(direction string) []string {
	return []string{
		fmt.Sprintf("article_score:%s", direction),
		fmt.Sprintf("published_on:%s", direction),
	}
}

func decodeHits(result *meilisearch.SearchResponse) ([]ArticleDocumentDriver, error) {
	hits := make([]ArticleDocumentDriver, 0, len(result.Hits))
	for _, hit := range result.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			return nil, fmt.Errorf("marshal hit: %w", err)
		}
		var doc ArticleDocumentDriver
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		hits = append(hits, doc)
	}
	return hits, nil
}

func decodeFacetDistribution(result *meilisearch.SearchResponse) (map[string]map[string]int64, error) {
	var boxed interface{} = result.FacetDistribution
	if boxed == nil {
		return nil, nil
	}

	raw, err := json.Marshal(boxed)
	if err != nil {
		return nil, fmt.Errorf("marshal facet distribution: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var facets map[string]map[string]int64
	if err := json.Unmarshal(raw, &facets); err != nil {
		return nil, fmt.Errorf("decode facet distribution: %w", err)
	}
	return facets, nil
}
