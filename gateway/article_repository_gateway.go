package gateway

import (
	"context"
	"time"

	"newscout/domain"
	"newscout/driver"
)

// ArticleDriver is the relational-store contract for article reads.
type ArticleDriver interface {
	GetArticles(ctx context.Context, lastCreatedAt *time.Time, lastID string, limit int) ([]*driver.ArticleRecord, *time.Time, string, error)
	GetArticlesSince(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, limit int) ([]*driver.ArticleRecord, *time.Time, string, error)
	GetDeletedArticles(ctx context.Context, lastDeletedAt *time.Time, limit int) ([]string, *time.Time, error)
	GetLatestCreatedAt(ctx context.Context) (*time.Time, error)
	GetArticleByID(ctx context.Context, articleID string) (*driver.ArticleRecord, error)
}

type ArticleRepositoryGateway struct {
	driver ArticleDriver
}

func NewArticleRepositoryGateway(driver ArticleDriver) *ArticleRepositoryGateway {
	return &ArticleRepositoryGateway{
		driver: driver,
	}
}

func (g *ArticleRepositoryGateway) GetArticles(ctx context.Context, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error) {
	records, finalCreatedAt, finalID, err := g.driver.GetArticles(ctx, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, nil, "", &domain.RepositoryError{
			Op:  "GetArticles",
			Err: err.Error(),
		}
	}

	articles, err := convertArticleRecords(records)
	if err != nil {
		return nil, nil, "", &domain.RepositoryError{
			Op:  "GetArticles",
			Err: err.Error(),
		}
	}
	return articles, finalCreatedAt, finalID, nil
}

func (g *ArticleRepositoryGateway) GetArticlesSince(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error) {
	records, finalCreatedAt, finalID, err := g.driver.GetArticlesSince(ctx, mark, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, nil, "", &domain.RepositoryError{
			Op:  "GetArticlesSince",
			Err: err.Error(),
		}
	}

	articles, err := convertArticleRecords(records)
	if err != nil {
		return nil, nil, "", &domain.RepositoryError{
			Op:  "GetArticlesSince",
			Err: err.Error(),
		}
	}
	return articles, finalCreatedAt, finalID, nil
}

func (g *ArticleRepositoryGateway) GetDeletedArticles(ctx context.Context, lastDeletedAt *time.Time, limit int) ([]string, *time.Time, error) {
	ids, finalDeletedAt, err := g.driver.GetDeletedArticles(ctx, lastDeletedAt, limit)
	if err != nil {
		return nil, nil, &domain.RepositoryError{
			Op:  "GetDeletedArticles",
			Err: err.Error(),
		}
	}
	return ids, finalDeletedAt, nil
}

func (g *ArticleRepositoryGateway) GetLatestCreatedAt(ctx context.Context) (*time.Time, error) {
	createdAt, err := g.driver.GetLatestCreatedAt(ctx)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetLatestCreatedAt",
			Err: err.Error(),
		}
	}
	return createdAt, nil
}

func (g *ArticleRepositoryGateway) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	record, err := g.driver.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetArticleByID",
			Err: err.Error(),
		}
	}
	if record == nil {
		return nil, nil
	}

	article, err := recordToArticle(record)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "GetArticleByID",
			Err: err.Error(),
		}
	}
	return article, nil
}

func convertArticleRecords(records []*driver.ArticleRecord) ([]*domain.Article, error) {
	articles := make([]*domain.Article, 0, len(records))
	for _, record := range records {
		article, err := recordToArticle(record)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func recordToArticle(record *driver.ArticleRecord) (*domain.Article, error) {
	return domain.NewArticle(
		record.ID,
		record.Title,
		record.Blurb,
		record.CategoryName,
		record.CategoryID,
		record.SourceName,
		record.DomainID,
		record.HashTags,
		record.ArticleScore,
		record.PublishedOn,
		record.CreatedAt,
	)
}
