package gateway

import (
	"context"
	"time"

	"newscout/domain"
	"newscout/driver"
)

// TrendingDriver runs the windowed tag aggregation in the relational
// store.
type TrendingDriver interface {
	TrendingTags(ctx context.Context, start, end time.Time, limit int) ([]driver.TrendingTagRecord, error)
}

type TrendingRepositoryGateway struct {
	driver TrendingDriver
}

func NewTrendingRepositoryGateway(driver TrendingDriver) *TrendingRepositoryGateway {
	return &TrendingRepositoryGateway{
		driver: driver,
	}
}

func (g *TrendingRepositoryGateway) TrendingTags(ctx context.Context, start, end time.Time, limit int) ([]domain.TrendingTag, error) {
	records, err := g.driver.TrendingTags(ctx, start, end, limit)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "TrendingTags",
			Err: err.Error(),
		}
	}

	tags := make([]domain.TrendingTag, len(records))
	for i, r := range records {
		tags[i] = domain.TrendingTag{
			ID:    r.ID,
			Name:  r.Name,
			Count: r.Count,
		}
	}
	return tags, nil
}
