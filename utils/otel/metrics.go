package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for the read API and the
// index sync pipeline.
var Metrics *NewscoutMetrics

// NewscoutMetrics contains all metric instruments.
type NewscoutMetrics struct {
	SearchesTotal       metric.Int64Counter
	SearchDuration      metric.Float64Histogram
	DigestFallbackTotal metric.Int64Counter
	TrendingTotal       metric.Int64Counter
	IndexedTotal        metric.Int64Counter
	DeletedTotal        metric.Int64Counter
	ErrorsTotal         metric.Int64Counter
	BatchDuration       metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("newscout-api")

	searchesTotal, err := meter.Int64Counter("newscout_searches_total",
		metric.WithDescription("Total number of article searches served"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("newscout_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	digestFallbackTotal, err := meter.Int64Counter("newscout_digest_fallback_total",
		metric.WithDescription("Daily digest requests served by the top-ranked fallback"),
	)
	if err != nil {
		return err
	}

	trendingTotal, err := meter.Int64Counter("newscout_trending_total",
		metric.WithDescription("Total number of trending tag requests served"),
	)
	if err != nil {
		return err
	}

	indexedTotal, err := meter.Int64Counter("newscout_indexed_total",
		metric.WithDescription("Total number of articles indexed"),
	)
	if err != nil {
		return err
	}

	deletedTotal, err := meter.Int64Counter("newscout_deleted_total",
		metric.WithDescription("Total number of articles deleted from the index"),
	)
	if err != nil {
		return err
	}

	errorsTotal, err := meter.Int64Counter("newscout_errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return err
	}

	batchDuration, err := meter.Float64Histogram("newscout_batch_duration_seconds",
		metric.WithDescription("Index batch processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &NewscoutMetrics{
		SearchesTotal:       searchesTotal,
		SearchDuration:      searchDuration,
		DigestFallbackTotal: digestFallbackTotal,
		TrendingTotal:       trendingTotal,
		IndexedTotal:        indexedTotal,
		DeletedTotal:        deletedTotal,
		ErrorsTotal:         errorsTotal,
		BatchDuration:       batchDuration,
	}

	return nil
}

// RecordSearch counts one served search and its latency. A nil Metrics
// (OTel disabled) is a no-op.
func RecordSearch(ctx context.Context, duration time.Duration) {
	if Metrics == nil {
		return
	}
	Metrics.SearchesTotal.Add(ctx, 1)
	Metrics.SearchDuration.Record(ctx, duration.Seconds())
}

// RecordTrending counts one served trending request.
func RecordTrending(ctx context.Context) {
	if Metrics == nil {
		return
	}
	Metrics.TrendingTotal.Add(ctx, 1)
}

// RecordDigestFallback counts a digest request served by the top-ranked
// fallback instead of a curated list.
func RecordDigestFallback(ctx context.Context) {
	if Metrics == nil {
		return
	}
	Metrics.DigestFallbackTotal.Add(ctx, 1)
}
