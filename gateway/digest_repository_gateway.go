package gateway

import (
	"context"

	"newscout/domain"
	"newscout/driver"
)

// DigestDriver reads the curated digest rows for a device.
type DigestDriver interface {
	DigestArticles(ctx context.Context, deviceID string) ([]*driver.ArticleRecord, error)
}

type DigestRepositoryGateway struct {
	driver DigestDriver
}

func NewDigestRepositoryGateway(driver DigestDriver) *DigestRepositoryGateway {
	return &DigestRepositoryGateway{
		driver: driver,
	}
}

// DigestArticles returns the device's curated digest as index-shaped
// documents. A device without a digest yields an empty list.
func (g *DigestRepositoryGateway) DigestArticles(ctx context.Context, deviceID string) ([]domain.SearchDocument, error) {
	records, err := g.driver.DigestArticles(ctx, deviceID)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "DigestArticles",
			Err: err.Error(),
		}
	}

	docs := make([]domain.SearchDocument, 0, len(records))
	for _, record := range records {
		article, err := recordToArticle(record)
		if err != nil {
			return nil, &domain.RepositoryError{
				Op:  "DigestArticles",
				Err: err.Error(),
			}
		}
		docs = append(docs, domain.NewSearchDocument(article))
	}
	return docs, nil
}
