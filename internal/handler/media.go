package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/service"
)

type MediaHandler struct {
	base
	mediaService service.Media
}

func NewMediaHandler(
	mediaService service.Media,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *MediaHandler {
	return &MediaHandler{
		base:         newBase(meter, tracer, log),
		mediaService: mediaService,
	}
}

// Upload stores a document file and returns the URL the save endpoints
// accept in their file fields.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.MediaUpload")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Missing file field", zap.Error(err))
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	url, err := h.mediaService.Upload(serviceCtx, file, "borrower-documents")
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID),
			zap.String("filename", file.Filename))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK,
		dto.UploadResponse{FileURL: url},
		zap.Uint64("customer_id", customerID),
	)
}
