package usecase

import (
	"context"

	"newscout/domain"
	"newscout/port"
)

// recommendationLimit caps the related-article list returned per
// request.
const recommendationLimit = 25

// ArticleRecommendationsUsecase resolves the related articles for one
// article by composing two index lookups: the precomputed id list from
// the recommendation index, then the article documents themselves.
type ArticleRecommendationsUsecase struct {
	searchEngine port.SearchEngine
}

func NewArticleRecommendationsUsecase(searchEngine port.SearchEngine) *ArticleRecommendationsUsecase {
	return &ArticleRecommendationsUsecase{
		searchEngine: searchEngine,
	}
}

// Execute returns up to recommendationLimit related articles for
// articleID. An article with no recommendation entry is reported as not
// found.
func (u *ArticleRecommendationsUsecase) Execute(ctx context.Context, articleID string) ([]domain.SearchDocument, error) {
	if articleID == "" {
		return nil, domain.NewValidationError("article_id", "article id is required")
	}

	ids, err := u.searchEngine.RecommendationIDs(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &domain.NotFoundError{Resource: "recommendation"}
	}

	docs, err := u.searchEngine.ArticlesByID(ctx, ids, recommendationLimit)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.SearchDocument{}
	}
	return docs, nil
}
