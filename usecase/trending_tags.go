package usecase

import (
	"context"
	"time"

	"newscout/domain"
	"newscout/port"
)

// TrendingTagsUsecase runs the windowed hash-tag aggregation against the
// relational store. The window is anchored in a fixed reference location
// so the "last 24 hours" boundary matches the product's home market.
type TrendingTagsUsecase struct {
	trending port.TrendingRepository
	location *time.Location
	now      func() time.Time
}

func NewTrendingTagsUsecase(trending port.TrendingRepository, location *time.Location) *TrendingTagsUsecase {
	if location == nil {
		location = time.UTC
	}
	return &TrendingTagsUsecase{
		trending: trending,
		location: location,
		now:      time.Now,
	}
}

// Execute returns the top trending tags for the given window, ordered by
// descending count.
func (u *TrendingTagsUsecase) Execute(ctx context.Context, window domain.TrendingWindow) ([]domain.TrendingTag, error) {
	start, end := window.Range(u.now().In(u.location))

	tags, err := u.trending.TrendingTags(ctx, start, end, domain.TrendingLimit)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.TrendingTag{}
	}
	return tags, nil
}
