package router

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/config"
	mysqldb "github.com/danakita/borrower-onboarding/infra/mysql"
	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/middleware"
	ratelimiter "github.com/danakita/borrower-onboarding/pkg/rate-limiter"
	"github.com/danakita/borrower-onboarding/pkg/telemetry"
	"github.com/danakita/borrower-onboarding/presenter"
)

func NewRouter(
	presenter presenter.Presenter,
	newCore *gorm.DB,
	legacyDB *gorm.DB,
	tel *telemetry.OpenTelemetry,
	cfg *config.Config,
	limiter *ratelimiter.RateLimiter,
) *fiber.App {

	jwtAuth := middleware.NewJWTAuthMiddleware(cfg.JWT_SECRET_KEY)
	requireCustomer := middleware.RequireRole(domain.CustomerRole, domain.BackofficeRole)
	requireBackoffice := middleware.RequireRole(domain.BackofficeRole)
	partnerKey := middleware.NewAPIKeyMiddleware(cfg.PARTNER_API_KEY)
	syncKey := middleware.NewAPIKeyMiddleware(cfg.SYNC_SERVICE_KEY)

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorCustomHandler(tel.Log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, X-Investree-Token, X-Investree-Key",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${ip} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(otelfiber.Middleware(
		otelfiber.WithTracerProvider(tel.TracerProvider),
		otelfiber.WithPropagators(otel.GetTextMapPropagator()),
	))

	if cfg.REQUESTS_METRIC {
		zap.L().Info("Enabling HTTP request metrics middleware")
		app.Use(middleware.NewOtelMiddleware().Handle())
	} else {
		zap.L().Info("HTTP request metrics middleware is disabled")
	}

	app.Use(middleware.NewLocaleMiddleware(i18n.Locale(cfg.DEFAULT_LOCALE)))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := mysqldb.Ping(newCore, c.Context()); err != nil {
			zap.L().Error("Health check failed: new-core ping error", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
		}
		if err := mysqldb.Ping(legacyDB, c.Context()); err != nil {
			zap.L().Error("Health check failed: legacy ping error", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "legacy database connection failed",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":      "healthy",
			"service":     cfg.SERVICE_NAME,
			"version":     cfg.SERVICE_VERSION,
			"environment": cfg.ENVIRONMENT,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	validate := app.Group("/validate")
	validate.Use(limiter.RateLimitMiddleware())

	usersAPI := validate.Group("/users")
	{
		usersAPI.Post("/auth/login", presenter.AuthPresenter.Login)
	}
	app.Post("/auth/login/frontoffice", presenter.AuthPresenter.Login)

	customerAPI := validate.Group("/customer", jwtAuth, requireCustomer)
	{
		customerAPI.Put("/bank-information/save-all", presenter.BankPresenter.SaveAll)
		customerAPI.Put("/business-profile/save-all", presenter.BusinessPresenter.SaveAll)
		customerAPI.Put("/legal-information/save-all", presenter.BusinessPresenter.SaveLegal)
		customerAPI.Put("/customer-information/product-preference/borrower/:customerId", presenter.PersonalPresenter.UpdateProductPreference)

		// The institutional route must be registered before the wildcard
		// financial-information update route.
		customerAPI.Put("/financial-information/institutional/save", requireBackoffice, presenter.FinancialPresenter.SaveInstitutional)
		customerAPI.Post("/financial-information", presenter.FinancialPresenter.Add)
		customerAPI.Put("/financial-information/:id", presenter.FinancialPresenter.Update)

		customerAPI.Put("/personal-profile/personal-data/borrower", presenter.PersonalPresenter.Save)
		customerAPI.Put("/request-verification-data", presenter.VerificationPresenter.RequestVerification)
		customerAPI.Get("/completing-data", presenter.VerificationPresenter.GetCompletingData)
	}

	mediaAPI := validate.Group("/media", jwtAuth, requireCustomer)
	{
		mediaAPI.Post("/upload", presenter.MediaPresenter.Upload)
	}

	backofficeAPI := validate.Group("/backoffice", jwtAuth, requireBackoffice)
	{
		backofficeAPI.Put("/customer/:customerId/activate", presenter.VerificationPresenter.Activate)
		backofficeAPI.Put("/customer/:customerId/deactivate", presenter.VerificationPresenter.Deactivate)
		backofficeAPI.Put("/customer/:customerId/reject", presenter.VerificationPresenter.Reject)
		backofficeAPI.Put("/customer/:customerId/reopen", presenter.VerificationPresenter.Reopen)
	}

	partnersAPI := app.Group("/partners", partnerKey)
	{
		partnersAPI.Post("/v1/:partnerName/registration", presenter.PartnerPresenter.Register)
		partnersAPI.Post("/v1/:partnerName/registration/completing", presenter.PartnerPresenter.CompleteRegistration)
		partnersAPI.Post("/v1.1/:partnerName/registration", presenter.PartnerPresenter.Register)
		partnersAPI.Post("/v1.1/:partnerName/registration/completing", presenter.PartnerPresenter.CompleteRegistration)
	}

	syncAPI := app.Group("/sync", syncKey)
	{
		syncAPI.Get("/bpd", presenter.SyncPresenter.Borrowers)
		syncAPI.Get("/bs", presenter.SyncPresenter.BalanceSheets)
		syncAPI.Get("/fr", presenter.SyncPresenter.FinancialRatios)
		syncAPI.Get("/ft", presenter.SyncPresenter.FinancialTrends)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "Resource not found",
			"path":    c.Path(),
		})
	})

	return app
}

func ErrorCustomHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		log.Error("Request error occured",
			zap.Error(err),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Int("status_code", code),
		)

		return c.Status(code).JSON(fiber.Map{
			"meta": fiber.Map{
				"code":    code,
				"message": message,
			},
		})
	}
}
