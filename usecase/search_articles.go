package usecase

import (
	"context"

	"newscout/domain"
	"newscout/port"
)

// SearchArticlesUsecase composes and executes one article search: it
// normalizes and validates the spec, widens the category filter through
// the association hierarchy, runs the engine query, and assembles the
// result page with facets and navigation links.
type SearchArticlesUsecase struct {
	searchEngine port.SearchEngine
	categories   port.CategoryRepository
}

func NewSearchArticlesUsecase(searchEngine port.SearchEngine, categories port.CategoryRepository) *SearchArticlesUsecase {
	return &SearchArticlesUsecase{
		searchEngine: searchEngine,
		categories:   categories,
	}
}

// Execute runs the search described by spec. requestURL is the caller's
// own absolute URL, used to rewrite the page parameter for next/previous
// links.
func (u *SearchArticlesUsecase) Execute(ctx context.Context, spec domain.SearchQuerySpec, requestURL string) (*domain.ResultPage, error) {
	spec = spec.Normalize()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if len(spec.CategoryIDs) > 0 {
		children, err := u.categories.ChildCategories(ctx, spec.CategoryIDs)
		if err != nil {
			return nil, err
		}
		spec.CategoryIDs = domain.ExpandCategories(spec.CategoryIDs, children)
	}

	raw, err := u.searchEngine.SearchArticles(ctx, spec)
	if err != nil {
		return nil, err
	}

	facets := domain.ExtractFacets(raw.FacetCounts)
	page := domain.NewResultPage(raw.Documents, facets, raw.Total, spec.Page, spec.Rows, requestURL)
	return &page, nil
}
