package port

import (
	"context"

	"newscout/domain"
)

// SearchEngine is the document index boundary. SearchArticles expects a
// spec that has already been normalized, validated and
// category-expanded.
type SearchEngine interface {
	SearchArticles(ctx context.Context, spec domain.SearchQuerySpec) (*domain.RawSearchResult, error)
	TopRanked(ctx context.Context, limit int) ([]domain.SearchDocument, error)
	// RecommendationIDs resolves the precomputed related-article ids
	// for an article; an article without an entry yields an empty list.
	RecommendationIDs(ctx context.Context, articleID string) ([]string, error)
	ArticlesByID(ctx context.Context, ids []string, limit int) ([]domain.SearchDocument, error)
	IndexDocuments(ctx context.Context, docs []domain.SearchDocument) error
	DeleteDocuments(ctx context.Context, ids []string) error
	EnsureIndex(ctx context.Context) error
}
