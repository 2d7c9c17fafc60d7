package gateway

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"newscout/domain"
	"newscout/driver"
)

// mockSearchDriver implements SearchDriver for testing.
type mockSearchDriver struct {
	lastQuery  *driver.SearchQueryDriver
	result     *driver.SearchResultDriver
	topDocs    []driver.ArticleDocumentDriver
	indexed    []driver.ArticleDocumentDriver
	deletedIDs []string
	err        error
}

func (m *mockSearchDriver) SearchArticles(ctx context.Context, q driver.SearchQueryDriver) (*driver.SearchResultDriver, error) {
	m.lastQuery = &q
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &driver.SearchResultDriver{}, nil
	}
	return m.result, nil
}

func (m *mockSearchDriver) TopRanked(ctx context.Context, limit int) ([]driver.ArticleDocumentDriver, error) {
	return m.topDocs, m.err
}

func (m *mockSearchDriver) IndexDocuments(ctx context.Context, docs []driver.ArticleDocumentDriver) error {
	if m.err != nil {
		return m.err
	}
	m.indexed = append(m.indexed, docs...)
	return nil
}

func (m *mockSearchDriver) DeleteDocuments(ctx context.Context, ids []string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedIDs = append(m.deletedIDs, ids...)
	return nil
}

func (m *mockSearchDriver) EnsureIndex(ctx context.Context) error { return m.err }

func (m *mockSearchDriver) RecommendationIDs(ctx context.Context, articleID string) ([]string, error) {
	return nil, m.err
}

func (m *mockSearchDriver) ArticlesByID(ctx context.Context, ids []string, limit int) ([]driver.ArticleDocumentDriver, error) {
	return nil, m.err
}

func TestSearchArticlesTranslatesSpec(t *testing.T) {
	mock := &mockSearchDriver{}
	gw := NewSearchEngineGateway(mock)

	spec := domain.SearchQuerySpec{
		Query:       "elections",
		Sources:     []string{"pti"},
		CategoryIDs: []int64{3, 31},
		DomainIDs:   []string{"1"},
		Tags:        []string{"lok sabha"},
		Sort:        domain.SortAsc,
		Page:        3,
		Rows:        10,
	}

	_, err := gw.SearchArticles(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := mock.lastQuery
	if q.Query != "elections" || q.Sort != "asc" {
		t.Errorf("query = %+v", q)
	}
	if q.Offset != 20 || q.Limit != 10 {
		t.Errorf("window = offset %d limit %d, want 20/10", q.Offset, q.Limit)
	}
	if !q.WithFacets {
		t.Error("facets must always be requested")
	}
	if !reflect.DeepEqual(q.CategoryIDs, []int64{3, 31}) {
		t.Errorf("categories = %v", q.CategoryIDs)
	}
}

func TestSearchArticlesConvertsHits(t *testing.T) {
	mock := &mockSearchDriver{
		result: &driver.SearchResultDriver{
			Hits: []driver.ArticleDocumentDriver{
				{ID: "a", Title: "T", Category: "sports", HashTags: []string{"cricket"}, ArticleScore: 0.7, PublishedOn: 1700000000},
			},
			Total:  42,
			Facets: map[string]map[string]int64{"source": {"pti": 7}},
		},
	}
	gw := NewSearchEngineGateway(mock)

	raw, err := gw.SearchArticles(context.Background(), domain.SearchQuerySpec{DomainIDs: []string{"1"}, Page: 1, Rows: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw.Total != 42 {
		t.Errorf("Total = %d", raw.Total)
	}
	doc := raw.Documents[0]
	if doc.ID != "a" || doc.Category != "sports" || doc.PublishedOn != 1700000000 {
		t.Errorf("doc = %+v", doc)
	}
	if raw.FacetCounts["source"]["pti"] != 7 {
		t.Errorf("facets = %v", raw.FacetCounts)
	}
}

func TestSearchArticlesWrapsDriverError(t *testing.T) {
	mock := &mockSearchDriver{err: errors.New("engine down")}
	gw := NewSearchEngineGateway(mock)

	_, err := gw.SearchArticles(context.Background(), domain.SearchQuerySpec{DomainIDs: []string{"1"}, Page: 1, Rows: 20})

	var engineErr *domain.SearchEngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected SearchEngineError, got %v", err)
	}
	if engineErr.Op != "SearchArticles" {
		t.Errorf("Op = %q", engineErr.Op)
	}
}

func TestIndexDocumentsRoundTrip(t *testing.T) {
	mock := &mockSearchDriver{}
	gw := NewSearchEngineGateway(mock)

	docs := []domain.SearchDocument{
		{ID: "a", Title: "T", Blurb: "B", CategoryID: 3, HashTags: []string{"x"}, PublishedOn: 123},
	}
	if err := gw.IndexDocuments(context.Background(), docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.indexed) != 1 || mock.indexed[0].ID != "a" || mock.indexed[0].PublishedOn != 123 {
		t.Errorf("indexed = %v", mock.indexed)
	}
}

func TestIndexDocumentsEmptyIsNoop(t *testing.T) {
	mock := &mockSearchDriver{err: errors.New("must not be called")}
	gw := NewSearchEngineGateway(mock)

	if err := gw.IndexDocuments(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteDocumentsEmptyIsNoop(t *testing.T) {
	mock := &mockSearchDriver{err: errors.New("must not be called")}
	gw := NewSearchEngineGateway(mock)

	if err := gw.DeleteDocuments(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
