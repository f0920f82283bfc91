package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/model"
)

type customerRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewCustomerRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// Create implements CustomerRepository.
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "repository.CreateCustomer")
	defer span.End()

	done := r.metrics.begin(ctx, "insert", "customers")

	data := model.CustomerFromEntity(customer)
	if err := r.db.WithContext(ctx).Create(&data).Error; err != nil {
		span.SetStatus(codes.Error, "Error creating customer")
		span.RecordError(err)

		r.log.Error("Error creating customer",
			zap.String("email", customer.Email),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")

	r.log.Info("Customer created",
		zap.Uint64("customer_id", data.ID),
		zap.String("email", data.Email),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Customer created")
	span.SetAttributes(attribute.Int64("customer.id", int64(data.ID)))

	return model.CustomerToEntity(data), nil
}

// Delete implements CustomerRepository. Used to unwind a partner-created
// identity row whose mirror never materialized; regular flows never delete
// customers.
func (r *customerRepository) Delete(ctx context.Context, id uint64) error {
	ctx, span := r.tracer.Start(ctx, "repository.DeleteCustomer")
	defer span.End()

	done := r.metrics.begin(ctx, "delete", "customers")

	span.SetAttributes(attribute.Int64("customer.id", int64(id)))

	if err := r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error; err != nil {
		span.SetStatus(codes.Error, "Error deleting customer")
		span.RecordError(err)

		r.log.Error("Error deleting customer",
			zap.Uint64("id", id),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return err
	}

	done("success")
	span.SetStatus(codes.Ok, "Customer deleted")

	return nil
}

// FindByID implements CustomerRepository.
func (r *customerRepository) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindCustomerByID")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "customers")

	span.SetAttributes(attribute.Int64("customer.id", int64(id)))

	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Customer not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding customer by ID")
		span.RecordError(err)

		r.log.Error("Error finding customer by ID",
			zap.Uint64("id", id),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Customer found")

	return model.CustomerToEntity(customer), nil
}

// FindByEmail implements CustomerRepository.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindCustomerByEmail")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "customers")

	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Customer not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding customer by email")
		span.RecordError(err)

		r.log.Error("Error finding customer by email",
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Customer found")

	return model.CustomerToEntity(customer), nil
}

// FindPaginated implements CustomerRepository.
func (r *customerRepository) FindPaginated(ctx context.Context, params domain.Params) ([]domain.Customer, int64, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindCustomersPaginated")
	defer span.End()

	done := r.metrics.begin(ctx, "select_paginated", "customers")

	span.SetAttributes(
		attribute.Int("pagination.page", params.Page),
		attribute.Int("pagination.limit", params.Limit),
		attribute.String("filter.status", params.Status),
	)

	var customers []model.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Customer{})
	if params.Status != "" {
		query = query.Where("registration_status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		span.SetStatus(codes.Error, "Error counting customers")
		span.RecordError(err)
		done("error")
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	if err := query.Limit(params.Limit).Offset(offset).Order("created_at DESC").Find(&customers).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding customers paginated")
		span.RecordError(err)

		r.log.Error("Error finding customers paginated",
			zap.Int("page", params.Page),
			zap.Int("limit", params.Limit),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, 0, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Customers found")
	span.SetAttributes(attribute.Int64("result.total", total))

	results := make([]domain.Customer, len(customers))
	for i, c := range customers {
		results[i] = *model.CustomerToEntity(c)
	}

	return results, total, nil
}
