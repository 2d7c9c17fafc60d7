package usecase

import (
	"context"
	"time"

	"newscout/domain"
	"newscout/port"
)

// IndexArticlesUsecase keeps the document index in sync with the
// relational store. Backfill walks existing articles newest-first with a
// keyset cursor; incremental picks up articles created after the mark
// and mirrors deletions.
type IndexArticlesUsecase struct {
	articleRepo  port.ArticleRepository
	searchEngine port.SearchEngine
}

type IndexResult struct {
	IndexedCount  int
	DeletedCount  int
	LastCreatedAt *time.Time
	LastID        string
	LastDeletedAt *time.Time
}

func NewIndexArticlesUsecase(articleRepo port.ArticleRepository, searchEngine port.SearchEngine) *IndexArticlesUsecase {
	return &IndexArticlesUsecase{
		articleRepo:  articleRepo,
		searchEngine: searchEngine,
	}
}

// GetIncrementalMark returns the creation time of the newest article, or
// nil when the store is empty.
func (u *IndexArticlesUsecase) GetIncrementalMark(ctx context.Context) (*time.Time, error) {
	return u.articleRepo.GetLatestCreatedAt(ctx)
}

// ExecuteBackfill indexes one batch of existing articles and advances
// the cursor. An IndexedCount of zero means the backfill is done.
func (u *IndexArticlesUsecase) ExecuteBackfill(ctx context.Context, lastCreatedAt *time.Time, lastID string, batchSize int) (*IndexResult, error) {
	articles, newLastCreatedAt, newLastID, err := u.articleRepo.GetArticles(ctx, lastCreatedAt, lastID, batchSize)
	if err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		return &IndexResult{
			LastCreatedAt: lastCreatedAt,
			LastID:        lastID,
		}, nil
	}

	if err := u.indexArticles(ctx, articles); err != nil {
		return nil, err
	}

	return &IndexResult{
		IndexedCount:  len(articles),
		LastCreatedAt: newLastCreatedAt,
		LastID:        newLastID,
	}, nil
}

// ExecuteIncremental indexes articles created after mark and removes
// deleted ones from the index.
func (u *IndexArticlesUsecase) ExecuteIncremental(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, lastDeletedAt *time.Time, batchSize int) (*IndexResult, error) {
	result := &IndexResult{
		LastCreatedAt: lastCreatedAt,
		LastID:        lastID,
		LastDeletedAt: lastDeletedAt,
	}

	articles, newLastCreatedAt, newLastID, err := u.articleRepo.GetArticlesSince(ctx, mark, lastCreatedAt, lastID, batchSize)
	if err != nil {
		return nil, err
	}

	if len(articles) > 0 {
		if err := u.indexArticles(ctx, articles); err != nil {
			return nil, err
		}
		result.IndexedCount = len(articles)
		result.LastCreatedAt = newLastCreatedAt
		result.LastID = newLastID
	}

	deletedIDs, newLastDeletedAt, err := u.articleRepo.GetDeletedArticles(ctx, lastDeletedAt, batchSize)
	if err != nil {
		return nil, err
	}

	if len(deletedIDs) > 0 {
		if err := u.searchEngine.DeleteDocuments(ctx, deletedIDs); err != nil {
			return nil, err
		}
		result.DeletedCount = len(deletedIDs)
		result.LastDeletedAt = newLastDeletedAt
	}

	return result, nil
}

// ReindexArticles refreshes the index entries for the given article ids,
// typically in response to update events. Unknown ids are skipped.
func (u *IndexArticlesUsecase) ReindexArticles(ctx context.Context, articleIDs []string) (int, error) {
	articles := make([]*domain.Article, 0, len(articleIDs))
	for _, id := range articleIDs {
		article, err := u.articleRepo.GetArticleByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if article == nil {
			continue
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		return 0, nil
	}

	if err := u.indexArticles(ctx, articles); err != nil {
		return 0, err
	}
	return len(articles), nil
}

func (u *IndexArticlesUsecase) indexArticles(ctx context.Context, articles []*domain.Article) error {
	docs := make([]domain.SearchDocument, 0, len(articles))
	for _, article := range articles {
		docs = append(docs, domain.NewSearchDocument(article))
	}
	return u.searchEngine.IndexDocuments(ctx, docs)
}
