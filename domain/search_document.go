package domain

// SearchDocument is the denormalized article projection stored in the
// document index. PublishedOn is a Unix timestamp so the engine can sort
// on it together with ArticleScore.
type SearchDocument struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Blurb        string   `json:"blurb"`
	Category     string   `json:"category"`
	CategoryID   int64    `json:"category_id"`
	Source       string   `json:"source"`
	DomainID     string   `json:"domain_id"`
	HashTags     []string `json:"hash_tags"`
	ArticleScore float64  `json:"article_score"`
	PublishedOn  int64    `json:"published_on"`
}

func NewSearchDocument(article *Article) SearchDocument {
	return SearchDocument{
		ID:           article.ID(),
		Title:        article.Title(),
		Blurb:        article.Blurb(),
		Category:     article.Category(),
		CategoryID:   article.CategoryID(),
		Source:       article.Source(),
		DomainID:     article.DomainID(),
		HashTags:     article.HashTags(),
		ArticleScore: article.ArticleScore(),
		PublishedOn:  article.PublishedOn().Unix(),
	}
}

// RawSearchResult is the undressed engine response: hits in engine order,
// the total hit count, and facet value counts per dimension.
type RawSearchResult struct {
	Documents   []SearchDocument
	Total       int64
	FacetCounts map[string]map[string]int64
}
