package usecase

import (
	"context"
	"testing"
	"time"

	"newscout/domain"
)

func testArticle(t *testing.T, id string) *domain.Article {
	t.Helper()
	now := time.Now()
	article, err := domain.NewArticle(id, "Title "+id, "blurb", "sports", 3, "reuters", "1", []string{"cricket"}, 0.8, now, now)
	if err != nil {
		t.Fatalf("NewArticle: %v", err)
	}
	return article
}

func TestExecuteBackfillIndexesBatch(t *testing.T) {
	cursorTime := time.Now()
	repo := &mockArticleRepo{
		articles:   []*domain.Article{testArticle(t, "a"), testArticle(t, "b")},
		cursorTime: &cursorTime,
		cursorID:   "b",
	}
	engine := &mockSearchEngine{}
	uc := NewIndexArticlesUsecase(repo, engine)

	result, err := uc.ExecuteBackfill(context.Background(), nil, "", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IndexedCount != 2 {
		t.Errorf("IndexedCount = %d, want 2", result.IndexedCount)
	}
	if result.LastID != "b" {
		t.Errorf("LastID = %q, want b", result.LastID)
	}
	if len(engine.indexedDocs) != 2 {
		t.Errorf("indexed %d docs", len(engine.indexedDocs))
	}
	if engine.indexedDocs[0].ID != "a" || engine.indexedDocs[0].Category != "sports" {
		t.Errorf("doc = %+v", engine.indexedDocs[0])
	}
}

func TestExecuteBackfillEmptyPageKeepsCursor(t *testing.T) {
	lastCreated := time.Now().Add(-time.Hour)
	repo := &mockArticleRepo{}
	uc := NewIndexArticlesUsecase(repo, &mockSearchEngine{})

	result, err := uc.ExecuteBackfill(context.Background(), &lastCreated, "z", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IndexedCount != 0 {
		t.Errorf("IndexedCount = %d, want 0", result.IndexedCount)
	}
	if result.LastCreatedAt == nil || !result.LastCreatedAt.Equal(lastCreated) {
		t.Errorf("LastCreatedAt = %v, want preserved cursor", result.LastCreatedAt)
	}
	if result.LastID != "z" {
		t.Errorf("LastID = %q, want preserved cursor", result.LastID)
	}
}

func TestExecuteIncrementalSyncsDeletions(t *testing.T) {
	deletedCursor := time.Now()
	repo := &mockArticleRepo{
		deletedIDs:    []string{"gone-1", "gone-2"},
		deletedCursor: &deletedCursor,
	}
	engine := &mockSearchEngine{}
	uc := NewIndexArticlesUsecase(repo, engine)

	mark := time.Now().Add(-24 * time.Hour)
	result, err := uc.ExecuteIncremental(context.Background(), &mark, nil, "", nil, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2", result.DeletedCount)
	}
	if len(engine.deletedIDs) != 2 {
		t.Errorf("engine deleted %v", engine.deletedIDs)
	}
	if result.LastDeletedAt == nil || !result.LastDeletedAt.Equal(deletedCursor) {
		t.Errorf("LastDeletedAt = %v", result.LastDeletedAt)
	}
}

func TestReindexArticlesSkipsUnknownIDs(t *testing.T) {
	repo := &mockArticleRepo{
		byID: map[string]*domain.Article{"known": testArticle(t, "known")},
	}
	engine := &mockSearchEngine{}
	uc := NewIndexArticlesUsecase(repo, engine)

	indexed, err := uc.ReindexArticles(context.Background(), []string{"known", "unknown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if indexed != 1 {
		t.Errorf("indexed = %d, want 1", indexed)
	}
	if len(engine.indexedDocs) != 1 || engine.indexedDocs[0].ID != "known" {
		t.Errorf("docs = %v", engine.indexedDocs)
	}
}

func TestReindexArticlesNoKnownIDs(t *testing.T) {
	repo := &mockArticleRepo{byID: map[string]*domain.Article{}}
	engine := &mockSearchEngine{}
	uc := NewIndexArticlesUsecase(repo, engine)

	indexed, err := uc.ReindexArticles(context.Background(), []string{"unknown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if indexed != 0 || len(engine.indexedDocs) != 0 {
		t.Errorf("indexed = %d, docs = %v", indexed, engine.indexedDocs)
	}
}

func TestGetIncrementalMark(t *testing.T) {
	latest := time.Now()
	repo := &mockArticleRepo{latestCreated: &latest}
	uc := NewIndexArticlesUsecase(repo, &mockSearchEngine{})

	mark, err := uc.GetIncrementalMark(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mark == nil || !mark.Equal(latest) {
		t.Errorf("mark = %v, want %v", mark, latest)
	}
}
