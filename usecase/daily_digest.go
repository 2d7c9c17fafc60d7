package usecase

import (
	"context"

	"newscout/domain"
	"newscout/port"
	appOtel "newscout/utils/otel"
)

// digestFallbackSize is the window of the generic ranked query used when
// a device has no curated digest.
const digestFallbackSize = 20

// DailyDigestUsecase selects between a device's curated digest and the
// generic top-ranked fallback. The choice is strictly either/or and is
// recomputed on every request.
type DailyDigestUsecase struct {
	digests      port.DigestRepository
	searchEngine port.SearchEngine
}

func NewDailyDigestUsecase(digests port.DigestRepository, searchEngine port.SearchEngine) *DailyDigestUsecase {
	return &DailyDigestUsecase{
		digests:      digests,
		searchEngine: searchEngine,
	}
}

// Execute returns the curated digest for deviceID when one exists,
// otherwise the top-ranked articles sorted by (score, published_on)
// descending with no filters applied.
func (u *DailyDigestUsecase) Execute(ctx context.Context, deviceID string) ([]domain.SearchDocument, error) {
	if deviceID != "" {
		docs, err := u.digests.DigestArticles(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			return docs, nil
		}
	}

	appOtel.RecordDigestFallback(ctx)
	return u.searchEngine.TopRanked(ctx, digestFallbackSize)
}
