package port

import (
	"context"
	"time"

	"newscout/domain"
)

// ArticleRepository feeds the index sync pipeline from the relational
// store using keyset cursors.
type ArticleRepository interface {
	GetArticles(ctx context.Context, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error)
	GetArticlesSince(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error)
	GetDeletedArticles(ctx context.Context, lastDeletedAt *time.Time, limit int) ([]string, *time.Time, error)
	GetLatestCreatedAt(ctx context.Context) (*time.Time, error)
	// GetArticleByID retrieves a single article with tags by its ID.
	GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error)
}

// CategoryRepository resolves the one-hop child expansion for a set of
// parent category ids.
type CategoryRepository interface {
	ChildCategories(ctx context.Context, parentIDs []int64) (map[int64][]int64, error)
}

// DigestRepository resolves a device's curated daily digest, ordered by
// publication time descending. An unknown device or a device without a
// digest yields an empty list, not an error.
type DigestRepository interface {
	DigestArticles(ctx context.Context, deviceID string) ([]domain.SearchDocument, error)
}

// TrendingRepository aggregates hash-tag usage over articles published
// in [start, end).
type TrendingRepository interface {
	TrendingTags(ctx context.Context, start, end time.Time, limit int) ([]domain.TrendingTag, error)
}
