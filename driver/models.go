package driver

import "time"

// ArticleDocumentDriver is an article projection as stored in the search
// engine.
type ArticleDocumentDriver struct {
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

// RecommendationDocumentDriver is one entry of the recommendation
// index: the precomputed related-article ids for a source article.
type RecommendationDocumentDriver struct {
	ArticleID      string   `json:"article_id"`
	RecommendedIDs []string `json:"recommended_ids"`
}

// SearchQueryDriver carries the structured query inputs down to the
// search engine; the engine-specific filter and sort syntax is built
// here in the driver layer.
type SearchQueryDriver struct {
	Query       string
	Sources     []string
	CategoryIDs []int64
	DomainIDs   []string
	Tags        []string
	Sort        string
	Offset      int64
	Limit       int64
	WithFacets  bool
}

// SearchResultDriver is the raw engine response.
type SearchResultDriver struct {
	Hits   []ArticleDocumentDriver
	Total  int64
	Facets map[string]map[string]int64
}

// ArticleRecord is an article row from the relational store, with its
// tag names aggregated.
type ArticleRecord struct {
	ID           string
	Title        string
	Blurb        string
	CategoryName string
	CategoryID   int64
	SourceName   string
	DomainID     string
	ArticleScore float64
	PublishedOn  time.Time
	CreatedAt    time.Time
	HashTags     []string
}

// CategoryEdgeRecord is one parent→child row of the category
// association table.
type CategoryEdgeRecord struct {
	ParentID int64
	ChildID  int64
}

// TrendingTagRecord is one bucket of the trending aggregation query.
type TrendingTagRecord struct {
	ID    int64
	Name  string
	Count int64
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
