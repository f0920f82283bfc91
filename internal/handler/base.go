package handler

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/middleware"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

// serviceTimeout bounds every service call made from a handler.
const serviceTimeout = 15 * time.Second

type base struct {
	validate        *validator.Validate
	tracer          trace.Tracer
	log             *zap.Logger
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	errorCount      metric.Int64Counter
	responseSize    metric.Int64Histogram
}

func newBase(meter metric.Meter, tracer trace.Tracer, log *zap.Logger) base {
	requestCount, err := meter.Int64Counter(
		"api.request.count",
		metric.WithDescription("Number of API requests received"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		zap.L().Fatal("Failed to create request count metric", zap.Error(err))
	}

	requestDuration, err := meter.Float64Histogram(
		"api.request.duration",
		metric.WithDescription("Duration of API requests"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		zap.L().Fatal("Failed to create request duration metric", zap.Error(err))
	}

	errorCount, err := meter.Int64Counter(
		"api.error.count",
		metric.WithDescription("Number of API errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		zap.L().Fatal("Failed to create error count metric", zap.Error(err))
	}

	responseSize, err := meter.Int64Histogram(
		"api.response.size",
		metric.WithDescription("Size of API responses in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		zap.L().Fatal("Failed to create response size metric", zap.Error(err))
	}

	return base{
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		tracer:          tracer,
		log:             log,
		requestCount:    requestCount,
		requestDuration: requestDuration,
		errorCount:      errorCount,
		responseSize:    responseSize,
	}
}

// begin opens the handler span and records the request counter.
func (b *base) begin(c *fiber.Ctx, name string) (context.Context, trace.Span, time.Time) {
	ctx := c.UserContext()
	ctx, span := b.tracer.Start(ctx, name)

	span.SetAttributes(
		attribute.String("http.method", c.Method()),
		attribute.String("http.route", c.Path()),
		attribute.String("http.client_ip", c.IP()),
	)

	b.requestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", c.Path()),
		attribute.String("method", c.Method()),
	))

	return ctx, span, time.Now()
}

// recordError records errors with observability and renders the envelope.
func (b *base) recordError(
	ctx context.Context, span trace.Span, c *fiber.Ctx,
	start time.Time, err error, statusCode int, errorType, message string, fields ...zap.Field) error {
	b.errorCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", c.Path()),
		attribute.String("method", c.Method()),
		attribute.String("error_type", errorType),
		attribute.Int("status_code", statusCode),
	))

	duration := float64(time.Since(start).Nanoseconds()) / 1e6
	b.requestDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("endpoint", c.Path()),
		attribute.String("method", c.Method()),
		attribute.Int("status_code", statusCode),
	))

	span.SetAttributes(
		attribute.String("error.type", errorType),
		attribute.String("error.message", err.Error()),
		attribute.Int("http.status_code", statusCode),
	)
	span.RecordError(err)

	logFields := append([]zap.Field{
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.Int("status_code", statusCode),
		zap.String("error_type", errorType),
		zap.Float64("duration_ms", duration),
	}, fields...)

	b.log.Error(message, logFields...)

	return common.ErrorResponse(c, statusCode, message)
}

// recordSuccess records the success path and renders the envelope.
func (b *base) recordSuccess(
	ctx context.Context, span trace.Span, c *fiber.Ctx,
	start time.Time, statusCode int, responseData any, fields ...zap.Field) error {
	duration := float64(time.Since(start).Nanoseconds()) / 1e6
	b.requestDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("endpoint", c.Path()),
		attribute.String("method", c.Method()),
		attribute.Int("status_code", statusCode),
	))

	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.Float64("request.duration_ms", duration),
	)

	logFields := append([]zap.Field{
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.Int("status_code", statusCode),
		zap.Float64("duration_ms", duration),
	}, fields...)

	b.log.Info("Request completed successfully", logFields...)

	err := common.SuccessResponse(c, statusCode, responseData)

	b.responseSize.Record(ctx, int64(len(c.Response().Body())), metric.WithAttributes(
		attribute.String("endpoint", c.Path()),
		attribute.String("method", c.Method()),
	))

	return err
}

// serviceError maps a service failure onto the error taxonomy: field-level
// violations and business conflicts answer 400, resources that do not belong
// to the caller answer 404 and everything unexpected answers 500. Messages
// are rendered in the request locale.
func (b *base) serviceError(
	ctx context.Context, span trace.Span, c *fiber.Ctx,
	start time.Time, err error, fields ...zap.Field) error {
	locale := middleware.LocaleFrom(c)

	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "validation_error", fieldErr.Message(locale), fields...)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		field := "request"
		if len(validationErrs) > 0 {
			field = validationErrs[0].Field()
		}
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "validation_error",
			i18n.T(locale, i18n.CodeFieldInvalid, field), fields...)
	}

	switch {
	case errors.Is(err, common.ErrCustomerNotFound),
		errors.Is(err, common.ErrRecordNotOwned):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusNotFound, "not_found", i18n.T(locale, i18n.CodeRecordNotFound), fields...)
	case errors.Is(err, common.ErrStatusRestricted),
		errors.Is(err, common.ErrInvalidTransition):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "status_restricted", i18n.T(locale, i18n.CodeStatusRestricted), fields...)
	case errors.Is(err, common.ErrAlreadyPending):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "already_pending", i18n.T(locale, i18n.CodeAlreadyPending), fields...)
	case errors.Is(err, common.ErrEmailNotVerified):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "email_not_verified", i18n.T(locale, i18n.CodeEmailNotVerified), fields...)
	case errors.Is(err, common.ErrNPWPExists):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "npwp_exists", i18n.T(locale, i18n.CodeNPWPExists), fields...)
	case errors.Is(err, common.ErrInvalidCredentials):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "invalid_credentials", i18n.T(locale, i18n.CodeInvalidCredentials), fields...)
	case errors.Is(err, common.ErrAccountBlocked):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "account_blocked", i18n.T(locale, i18n.CodeAccountBlocked), fields...)
	case errors.Is(err, common.ErrSyncFailed),
		errors.Is(err, common.ErrLockNotAcquired):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "sync_failed", i18n.T(locale, i18n.CodeSyncFailed), fields...)
	case errors.Is(err, common.ErrAlreadyInProgress):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "registration_conflict", i18n.T(locale, i18n.CodeRegistrationConflict), fields...)
	case errors.Is(err, common.ErrDocumentTypeUnknown):
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "validation_error",
			i18n.T(locale, i18n.CodeFieldInvalid, "documentTypeId"), fields...)
	default:
		return b.recordError(ctx, span, c, start, err,
			fiber.StatusInternalServerError, "service_error", i18n.T(locale, i18n.CodeInternal), fields...)
	}
}

// customerFromLocals reads the authenticated customer id set by the JWT
// middleware.
func customerFromLocals(c *fiber.Ctx) (uint64, error) {
	claims, err := middleware.GetClaimsFromLocals(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
