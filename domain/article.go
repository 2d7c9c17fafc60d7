package domain

import (
	"errors"
	"time"
)

// Article is the canonical article entity as read from the relational
// store. It is the input side of the index sync pipeline; search reads
// work on SearchDocument projections instead.
type Article struct {
	id           string
	title        string
	blurb        string
	category     string
	categoryID   int64
	source       string
	domainID     string
	hashTags     []string
	articleScore float64
	publishedOn  time.Time
	createdAt    time.Time
}

func NewArticle(id, title, blurb, category string, categoryID int64, source, domainID string, hashTags []string, articleScore float64, publishedOn, createdAt time.Time) (*Article, error) {
	if id == "" {
		return nil, errors.New("article ID cannot be empty")
	}
	if title == "" {
		return nil, errors.New("article title cannot be empty")
	}

	return &Article{
		id:           id,
		title:        title,
		blurb:        blurb,
		category:     category,
		categoryID:   categoryID,
		source:       source,
		domainID:     domainID,
		hashTags:     hashTags,
		articleScore: articleScore,
		publishedOn:  publishedOn,
		createdAt:    createdAt,
	}, nil
}

func (a *Article) ID() string {
	return a.id
}

func (a *Article) Title() string {
	return a.title
}

func (a *Article) Blurb() string {
	return a.blurb
}

func (a *Article) Category() string {
	return a.category
}

func (a *Article) CategoryID() int64 {
	return a.categoryID
}

func (a *Article) Source() string {
	return a.source
}

func (a *Article) DomainID() string {
	return a.domainID
}

func (a *Article) HashTags() []string {
	return a.hashTags
}

func (a *Article) ArticleScore() float64 {
	return a.articleScore
}

func (a *Article) PublishedOn() time.Time {
	return a.publishedOn
}

func (a *Article) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Article) HasTag(tag string) bool {
	if tag == "" {
		return false
	}

	for _, t := range a.hashTags {
		if t == tag {
			return true
		}
	}
	return false
}
