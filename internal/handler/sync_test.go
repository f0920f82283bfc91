package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	noop_metric "go.opentelemetry.io/otel/metric/noop"
	noop_trace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/handler"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/middleware"
)

// The repository is never reached when the loopback filter is absent or
// malformed, so a nil repository is enough for these cases.
func newSyncApp() *fiber.App {
	syncHandler := handler.NewSyncHandler(
		nil,
		noop_metric.NewMeterProvider().Meter("test-sync-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-sync-handler-tracer"),
		zap.NewNop(),
	)

	app := fiber.New()
	app.Use(middleware.NewLocaleMiddleware(i18n.LocaleID))
	app.Get("/sync/bpd", syncHandler.Borrowers)
	app.Get("/sync/bs", syncHandler.BalanceSheets)
	return app
}

func TestSyncMissingFilterAnswers400(t *testing.T) {
	app := newSyncApp()

	req := httptest.NewRequest(http.MethodGet, "/sync/bpd", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSyncNonNumericFilterAnswers400(t *testing.T) {
	app := newSyncApp()

	req := httptest.NewRequest(http.MethodGet,
		"/sync/bs?filter[where][bs_migration_id]=abc", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSyncFilterKeyIsTableScoped(t *testing.T) {
	app := newSyncApp()

	// A bpd filter on the balance-sheet route does not count.
	req := httptest.NewRequest(http.MethodGet,
		"/sync/bs?filter[where][bpd_migration_id]=7", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
