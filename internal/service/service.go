package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

// svcMetrics carries the operation instruments shared by every service in
// this package.
type svcMetrics struct {
	operationDuration metric.Float64Histogram
	operationCount    metric.Int64Counter
	errorCount        metric.Int64Counter
}

func newSvcMetrics(meter metric.Meter) svcMetrics {
	operationDuration, _ := meter.Float64Histogram(
		"service.operation.duration",
		metric.WithDescription("Duration of service operations"),
		metric.WithUnit("ms"),
	)

	operationCount, _ := meter.Int64Counter(
		"service.operation.count",
		metric.WithDescription("Number of service operations"),
		metric.WithUnit("{operation}"),
	)

	errorCount, _ := meter.Int64Counter(
		"service.error.count",
		metric.WithDescription("Number of service operation errors"),
		metric.WithUnit("{error}"),
	)

	return svcMetrics{
		operationDuration: operationDuration,
		operationCount:    operationCount,
		errorCount:        errorCount,
	}
}

func (m svcMetrics) begin(ctx context.Context, operation string) func(err error) {
	start := time.Now()
	m.operationCount.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))

	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			m.errorCount.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
		}
		m.operationDuration.Record(ctx, float64(time.Since(start).Milliseconds()),
			metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("status", status),
			),
		)
	}
}

// requireEditable loads the customer and enforces the status gate every
// profile mutation shares: only the pre-verification editable status permits
// writes.
func requireEditable(ctx context.Context, customers repository.CustomerRepository, customerID uint64) (*domain.Customer, error) {
	customer, err := customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, common.ErrCustomerNotFound
	}
	if !customer.RegistrationStatus.CanMutate() {
		return nil, common.ErrStatusRestricted
	}

	return customer, nil
}
