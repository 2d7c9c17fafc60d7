package usecase

import (
	"context"
	"time"

	"newscout/domain"
	"newscout/port"
)

// mockSearchEngine implements port.SearchEngine for testing.
type mockSearchEngine struct {
	searchResult     *domain.RawSearchResult
	searchSpec       *domain.SearchQuerySpec
	topRanked        []domain.SearchDocument
	topLimit         int
	recommendedIDs   []string
	recommendedFor   string
	articlesByID     []domain.SearchDocument
	requestedIDs     []string
	requestedLimit   int
	indexedDocs      []domain.SearchDocument
	deletedIDs       []string
	err              error
	recommendedIDErr error
}

func (m *mockSearchEngine) SearchArticles(ctx context.Context, spec domain.SearchQuerySpec) (*domain.RawSearchResult, error) {
	m.searchSpec = &spec
	if m.err != nil {
		return nil, m.err
	}
	if m.searchResult == nil {
		return &domain.RawSearchResult{}, nil
	}
	return m.searchResult, nil
}

func (m *mockSearchEngine) TopRanked(ctx context.Context, limit int) ([]domain.SearchDocument, error) {
	m.topLimit = limit
	return m.topRanked, m.err
}

func (m *mockSearchEngine) RecommendationIDs(ctx context.Context, articleID string) ([]string, error) {
	m.recommendedFor = articleID
	if m.recommendedIDErr != nil {
		return nil, m.recommendedIDErr
	}
	return m.recommendedIDs, m.err
}

func (m *mockSearchEngine) ArticlesByID(ctx context.Context, ids []string, limit int) ([]domain.SearchDocument, error) {
	m.requestedIDs = ids
	m.requestedLimit = limit
	return m.articlesByID, m.err
}

func (m *mockSearchEngine) IndexDocuments(ctx context.Context, docs []domain.SearchDocument) error {
	if m.err != nil {
		return m.err
	}
	m.indexedDocs = append(m.indexedDocs, docs...)
	return nil
}

func (m *mockSearchEngine) DeleteDocuments(ctx context.Context, ids []string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedIDs = append(m.deletedIDs, ids...)
	return nil
}

func (m *mockSearchEngine) EnsureIndex(ctx context.Context) error { return m.err }

// mockCategoryRepo implements port.CategoryRepository.
type mockCategoryRepo struct {
	children  map[int64][]int64
	requested []int64
	err       error
}

func (m *mockCategoryRepo) ChildCategories(ctx context.Context, parentIDs []int64) (map[int64][]int64, error) {
	m.requested = parentIDs
	return m.children, m.err
}

// mockDigestRepo implements port.DigestRepository.
type mockDigestRepo struct {
	docs     []domain.SearchDocument
	deviceID string
	err      error
}

func (m *mockDigestRepo) DigestArticles(ctx context.Context, deviceID string) ([]domain.SearchDocument, error) {
	m.deviceID = deviceID
	return m.docs, m.err
}

// mockTrendingRepo implements port.TrendingRepository.
type mockTrendingRepo struct {
	tags  []domain.TrendingTag
	start time.Time
	end   time.Time
	limit int
	err   error
}

func (m *mockTrendingRepo) TrendingTags(ctx context.Context, start, end time.Time, limit int) ([]domain.TrendingTag, error) {
	m.start, m.end, m.limit = start, end, limit
	return m.tags, m.err
}

// mockArticleRepo implements port.ArticleRepository.
type mockArticleRepo struct {
	articles      []*domain.Article
	byID          map[string]*domain.Article
	deletedIDs    []string
	latestCreated *time.Time
	cursorTime    *time.Time
	cursorID      string
	deletedCursor *time.Time
	err           error
}

func (m *mockArticleRepo) GetArticles(ctx context.Context, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error) {
	return m.articles, m.cursorTime, m.cursorID, m.err
}

func (m *mockArticleRepo) GetArticlesSince(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, limit int) ([]*domain.Article, *time.Time, string, error) {
	return m.articles, m.cursorTime, m.cursorID, m.err
}

func (m *mockArticleRepo) GetDeletedArticles(ctx context.Context, lastDeletedAt *time.Time, limit int) ([]string, *time.Time, error) {
	return m.deletedIDs, m.deletedCursor, m.err
}

func (m *mockArticleRepo) GetLatestCreatedAt(ctx context.Context) (*time.Time, error) {
	return m.latestCreated, m.err
}

func (m *mockArticleRepo) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byID[articleID], nil
}

var (
	_ port.SearchEngine       = (*mockSearchEngine)(nil)
	_ port.CategoryRepository = (*mockCategoryRepo)(nil)
	_ port.DigestRepository   = (*mockDigestRepo)(nil)
	_ port.TrendingRepository = (*mockTrendingRepo)(nil)
	_ port.ArticleRepository  = (*mockArticleRepo)(nil)
)
