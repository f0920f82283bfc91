package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// dbMetrics carries the query instruments every repository in this package
// reports into. All repositories share the same instrument names so dashboards
// can slice by the operation/table attributes.
type dbMetrics struct {
	queryDuration metric.Float64Histogram
	queryCount    metric.Int64Counter
	errorCount    metric.Int64Counter
}

func newDBMetrics(meter metric.Meter) dbMetrics {
	queryDuration, _ := meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Duration of database queries"),
		metric.WithUnit("ms"),
	)

	queryCount, _ := meter.Int64Counter(
		"db.query.count",
		metric.WithDescription("Number of database queries"),
		metric.WithUnit("{query}"),
	)

	errorCount, _ := meter.Int64Counter(
		"db.error.count",
		metric.WithDescription("Number of database errors"),
		metric.WithUnit("{error}"),
	)

	return dbMetrics{
		queryDuration: queryDuration,
		queryCount:    queryCount,
		errorCount:    errorCount,
	}
}

func (m dbMetrics) begin(ctx context.Context, operation, table string) func(status string) {
	start := time.Now()
	m.queryCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("table", table),
		),
	)

	return func(status string) {
		if status == "error" {
			m.errorCount.Add(ctx, 1,
				metric.WithAttributes(
					attribute.String("operation", operation),
					attribute.String("table", table),
				),
			)
		}
		m.queryDuration.Record(ctx, float64(time.Since(start).Milliseconds()),
			metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("table", table),
				attribute.String("status", status),
			),
		)
	}
}
