package gateway

import (
	"context"

	"newscout/domain"
	"newscout/driver"
)

// SearchDriver is the engine-facing driver contract the gateway adapts
// to the domain.
type SearchDriver interface {
	SearchArticles(ctx context.Context, q driver.SearchQueryDriver) (*driver.SearchResultDriver, error)
	TopRanked(ctx context.Context, limit int) ([]driver.ArticleDocumentDriver, error)
	RecommendationIDs(ctx context.Context, articleID string) ([]string, error)
	ArticlesByID(ctx context.Context, ids []string, limit int) ([]driver.ArticleDocumentDriver, error)
	IndexDocuments(ctx context.Context, docs []driver.ArticleDocumentDriver) error
	DeleteDocuments(ctx context.Context, ids []string) error
	EnsureIndex(ctx context.Context) error
}

type SearchEngineGateway struct {
	driver SearchDriver
}

func NewSearchEngineGateway(driver SearchDriver) *SearchEngineGateway {
	return &SearchEngineGateway{
		driver: driver,
	}
}

func (g *SearchEngineGateway) SearchArticles(ctx context.Context, spec domain.SearchQuerySpec) (*domain.RawSearchResult, error) {
	result, err := g.driver.SearchArticles(ctx, driver.SearchQueryDriver{
		Query:       spec.Query,
		Sources:     spec.Sources,
		CategoryIDs: spec.CategoryIDs,
		DomainIDs:   spec.DomainIDs,
		Tags:        spec.Tags,
		Sort:        string(spec.Sort),
		Offset:      int64(spec.Offset()),
		Limit:       int64(spec.Rows),
		WithFacets:  true,
	})
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	return &domain.RawSearchResult{
		Documents:   g.convertDocs(result.Hits),
		Total:       result.Total,
		FacetCounts: result.Facets,
	}, nil
}

func (g *SearchEngineGateway) TopRanked(ctx context.Context, limit int) ([]domain.SearchDocument, error) {
	driverDocs, err := g.driver.TopRanked(ctx, limit)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "TopRanked",
			Err: err.Error(),
		}
	}
	return g.convertDocs(driverDocs), nil
}

func (g *SearchEngineGateway) RecommendationIDs(ctx context.Context, articleID string) ([]string, error) {
	ids, err := g.driver.RecommendationIDs(ctx, articleID)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "RecommendationIDs",
			Err: err.Error(),
		}
	}
	return ids, nil
}

func (g *SearchEngineGateway) ArticlesByID(ctx context.Context, ids []string, limit int) ([]domain.SearchDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	driverDocs, err := g.driver.ArticlesByID(ctx, ids, limit)
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "ArticlesByID",
			Err: err.Error(),
		}
	}
	return g.convertDocs(driverDocs), nil
}

func (g *SearchEngineGateway) IndexDocuments(ctx context.Context, docs []domain.SearchDocument) error {
	if len(docs) == 0 {
		return nil
	}

	driverDocs := make([]driver.ArticleDocumentDriver, len(docs))
	for i, doc := range docs {
		driverDocs[i] = driver.ArticleDocumentDriver{
			ID:           doc.ID,
			Title:        doc.Title,
			Blurb:        doc.Blurb,
			Category:     doc.Category,
			CategoryID:   doc.CategoryID,
			Source:       doc.Source,
			DomainID:     doc.DomainID,
			HashTags:     doc.HashTags,
			ArticleScore: doc.ArticleScore,
			PublishedOn:  doc.PublishedOn,
		}
	}

	if err := g.driver.IndexDocuments(ctx, driverDocs); err != nil {
		return &domain.SearchEngineError{
			Op:  "IndexDocuments",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *SearchEngineGateway) DeleteDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if err := g.driver.DeleteDocuments(ctx, ids); err != nil {
		return &domain.SearchEngineError{
			Op:  "DeleteDocuments",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *SearchEngineGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *SearchEngineGateway) convertDocs(driverDocs []driver.ArticleDocumentDriver) []domain.SearchDocument {
	domainDocs := make([]domain.SearchDocument, len(driverDocs))
	for i, d := range driverDocs {
		domainDocs[i] = domain.SearchDocument{
			ID:           d.ID,
			Title:        d.Title,
			Blurb:        d.Blurb,
			Category:     d.Category,
			CategoryID:   d.CategoryID,
			Source:       d.Source,
			DomainID:     d.DomainID,
			HashTags:     d.HashTags,
			ArticleScore: d.ArticleScore,
			PublishedOn:  d.PublishedOn,
		}
	}
	return domainDocs
}
