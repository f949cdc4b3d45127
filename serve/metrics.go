package serve

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// serverMetrics holds the OTel counters of the HTTP host.
type serverMetrics struct {
	redirects   metric.Int64Counter
	conversions metric.Int64Counter
	errors      metric.Int64Counter
	cacheHits   metric.Int64Counter
}

func newServerMetrics() (*serverMetrics, error) {
	meter := otel.Meter("github.com/dasch-swiss/ark-resolver/serve")

	redirects, err := meter.Int64Counter("ark_redirects_total",
		metric.WithDescription("Resolved redirect requests"))
	if err != nil {
		return nil, fmt.Errorf("create redirect counter: %w", err)
	}

	conversions, err := meter.Int64Counter("ark_conversions_total",
		metric.WithDescription("Identifier conversion requests"))
	if err != nil {
		return nil, fmt.Errorf("create conversion counter: %w", err)
	}

	errorsCounter, err := meter.Int64Counter("ark_request_errors_total",
		metric.WithDescription("Requests rejected or failed, by kind"))
	if err != nil {
		return nil, fmt.Errorf("create error counter: %w", err)
	}

	cacheHits, err := meter.Int64Counter("ark_cache_hits_total",
		metric.WithDescription("Redirects served from the cache"))
	if err != nil {
		return nil, fmt.Errorf("create cache hit counter: %w", err)
	}

	return &serverMetrics{
		redirects:   redirects,
		conversions: conversions,
		errors:      errorsCounter,
		cacheHits:   cacheHits,
	}, nil
}

func (m *serverMetrics) countError(ctx context.Context, kind string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
