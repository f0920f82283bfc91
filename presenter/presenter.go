package presenter

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/config"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/handler"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/service"
	"github.com/danakita/borrower-onboarding/pkg/telemetry"
)

type Presenter struct {
	BankPresenter         *handler.BankHandler
	BusinessPresenter     *handler.BusinessHandler
	FinancialPresenter    *handler.FinancialHandler
	PersonalPresenter     *handler.PersonalHandler
	VerificationPresenter *handler.VerificationHandler
	AuthPresenter         *handler.AuthHandler
	PartnerPresenter      *handler.PartnerHandler
	SyncPresenter         *handler.SyncHandler
	MediaPresenter        *handler.MediaHandler
}

func NewPresenter(
	newCore *gorm.DB,
	legacyDB *gorm.DB,
	rdb *redis.Client,
	cld *cloudinary.Cloudinary,
	cfg *config.Config,
	tel *telemetry.OpenTelemetry,
) Presenter {
	// Repository
	customerRepositoryMeter := tel.MeterProvider.Meter("customer-repository-meter")
	customerRepositoryTracer := tel.TracerProvider.Tracer("customer-repository-tracer")
	customerRepository := repository.NewCustomerRepository(
		newCore,
		customerRepositoryMeter,
		customerRepositoryTracer,
		tel.Log,
	)

	bankRepositoryMeter := tel.MeterProvider.Meter("bank-repository-meter")
	bankRepositoryTracer := tel.TracerProvider.Tracer("bank-repository-tracer")
	bankRepository := repository.NewBankRepository(
		newCore,
		bankRepositoryMeter,
		bankRepositoryTracer,
		tel.Log,
	)

	legalRepositoryMeter := tel.MeterProvider.Meter("legal-repository-meter")
	legalRepositoryTracer := tel.TracerProvider.Tracer("legal-repository-tracer")
	legalRepository := repository.NewLegalRepository(
		newCore,
		legalRepositoryMeter,
		legalRepositoryTracer,
		tel.Log,
	)

	financialRepositoryMeter := tel.MeterProvider.Meter("financial-repository-meter")
	financialRepositoryTracer := tel.TracerProvider.Tracer("financial-repository-tracer")
	financialRepository := repository.NewFinancialRepository(
		newCore,
		financialRepositoryMeter,
		financialRepositoryTracer,
		tel.Log,
	)

	profileRepositoryMeter := tel.MeterProvider.Meter("profile-repository-meter")
	profileRepositoryTracer := tel.TracerProvider.Tracer("profile-repository-tracer")
	profileRepository := repository.NewProfileRepository(
		newCore,
		profileRepositoryMeter,
		profileRepositoryTracer,
		tel.Log,
	)

	geographyRepositoryMeter := tel.MeterProvider.Meter("geography-repository-meter")
	geographyRepositoryTracer := tel.TracerProvider.Tracer("geography-repository-tracer")
	geographyRepository := repository.NewGeographyRepository(
		newCore,
		geographyRepositoryMeter,
		geographyRepositoryTracer,
		tel.Log,
	)

	syncRepositoryMeter := tel.MeterProvider.Meter("sync-repository-meter")
	syncRepositoryTracer := tel.TracerProvider.Tracer("sync-repository-tracer")
	syncRepository := legacy.NewSyncRepository(
		legacyDB,
		syncRepositoryMeter,
		syncRepositoryTracer,
		tel.Log,
	)

	coordinatorMeter := tel.MeterProvider.Meter("dualwrite-coordinator-meter")
	coordinatorTracer := tel.TracerProvider.Tracer("dualwrite-coordinator-tracer")
	coordinator := dualwrite.NewCoordinator(
		newCore,
		syncRepository,
		rdb,
		cfg.COMMIT_LOCK_TTL,
		coordinatorMeter,
		coordinatorTracer,
		tel.Log,
	)

	// Service
	bankServiceMeter := tel.MeterProvider.Meter("bank-service-meter")
	bankServiceTracer := tel.TracerProvider.Tracer("bank-service-tracer")
	bankService := service.NewBankService(
		customerRepository,
		bankRepository,
		coordinator,
		syncRepository,
		bankServiceMeter,
		bankServiceTracer,
		tel.Log,
	)

	businessServiceMeter := tel.MeterProvider.Meter("business-service-meter")
	businessServiceTracer := tel.TracerProvider.Tracer("business-service-tracer")
	businessService := service.NewBusinessService(
		customerRepository,
		geographyRepository,
		coordinator,
		syncRepository,
		businessServiceMeter,
		businessServiceTracer,
		tel.Log,
	)

	legalServiceMeter := tel.MeterProvider.Meter("legal-service-meter")
	legalServiceTracer := tel.TracerProvider.Tracer("legal-service-tracer")
	legalService := service.NewLegalService(
		customerRepository,
		legalRepository,
		coordinator,
		syncRepository,
		legalServiceMeter,
		legalServiceTracer,
		tel.Log,
	)

	financialServiceMeter := tel.MeterProvider.Meter("financial-service-meter")
	financialServiceTracer := tel.TracerProvider.Tracer("financial-service-tracer")
	financialService := service.NewFinancialService(
		customerRepository,
		financialRepository,
		coordinator,
		syncRepository,
		cfg.STATEMENT_WINDOW_YEARS,
		financialServiceMeter,
		financialServiceTracer,
		tel.Log,
	)

	personalServiceMeter := tel.MeterProvider.Meter("personal-service-meter")
	personalServiceTracer := tel.TracerProvider.Tracer("personal-service-tracer")
	personalService := service.NewPersonalService(
		customerRepository,
		geographyRepository,
		coordinator,
		syncRepository,
		newCore,
		personalServiceMeter,
		personalServiceTracer,
		tel.Log,
	)

	verificationServiceMeter := tel.MeterProvider.Meter("verification-service-meter")
	verificationServiceTracer := tel.TracerProvider.Tracer("verification-service-tracer")
	verificationService := service.NewVerificationService(
		customerRepository,
		bankRepository,
		legalRepository,
		financialRepository,
		profileRepository,
		coordinator,
		syncRepository,
		verificationServiceMeter,
		verificationServiceTracer,
		tel.Log,
	)

	completingServiceMeter := tel.MeterProvider.Meter("completing-service-meter")
	completingServiceTracer := tel.TracerProvider.Tracer("completing-service-tracer")
	completingService := service.NewCompletingService(
		customerRepository,
		bankRepository,
		legalRepository,
		financialRepository,
		profileRepository,
		completingServiceMeter,
		completingServiceTracer,
		tel.Log,
	)

	authServiceMeter := tel.MeterProvider.Meter("auth-service-meter")
	authServiceTracer := tel.TracerProvider.Tracer("auth-service-tracer")
	authService := service.NewAuthService(
		customerRepository,
		syncRepository,
		rdb,
		cfg.JWT_SECRET_KEY,
		authServiceMeter,
		authServiceTracer,
		tel.Log,
	)

	partnerServiceMeter := tel.MeterProvider.Meter("partner-service-meter")
	partnerServiceTracer := tel.TracerProvider.Tracer("partner-service-tracer")
	partnerService := service.NewPartnerService(
		customerRepository,
		personalService,
		bankService,
		coordinator,
		syncRepository,
		partnerServiceMeter,
		partnerServiceTracer,
		tel.Log,
	)

	mediaService := service.NewMediaService(cld)

	// Handler
	bankHandlerMeter := tel.MeterProvider.Meter("bank-handler-meter")
	bankHandlerTracer := tel.TracerProvider.Tracer("bank-handler-tracer")
	bankHandler := handler.NewBankHandler(
		bankService,
		bankHandlerMeter,
		bankHandlerTracer,
		tel.Log,
	)

	businessHandlerMeter := tel.MeterProvider.Meter("business-handler-meter")
	businessHandlerTracer := tel.TracerProvider.Tracer("business-handler-tracer")
	businessHandler := handler.NewBusinessHandler(
		businessService,
		legalService,
		businessHandlerMeter,
		businessHandlerTracer,
		tel.Log,
	)

	financialHandlerMeter := tel.MeterProvider.Meter("financial-handler-meter")
	financialHandlerTracer := tel.TracerProvider.Tracer("financial-handler-tracer")
	financialHandler := handler.NewFinancialHandler(
		financialService,
		financialHandlerMeter,
		financialHandlerTracer,
		tel.Log,
	)

	personalHandlerMeter := tel.MeterProvider.Meter("personal-handler-meter")
	personalHandlerTracer := tel.TracerProvider.Tracer("personal-handler-tracer")
	personalHandler := handler.NewPersonalHandler(
		personalService,
		personalHandlerMeter,
		personalHandlerTracer,
		tel.Log,
	)

	verificationHandlerMeter := tel.MeterProvider.Meter("verification-handler-meter")
	verificationHandlerTracer := tel.TracerProvider.Tracer("verification-handler-tracer")
	verificationHandler := handler.NewVerificationHandler(
		verificationService,
		completingService,
		verificationHandlerMeter,
		verificationHandlerTracer,
		tel.Log,
	)

	authHandlerMeter := tel.MeterProvider.Meter("auth-handler-meter")
	authHandlerTracer := tel.TracerProvider.Tracer("auth-handler-tracer")
	authHandler := handler.NewAuthHandler(
		authService,
		authHandlerMeter,
		authHandlerTracer,
		tel.Log,
	)

	partnerHandlerMeter := tel.MeterProvider.Meter("partner-handler-meter")
	partnerHandlerTracer := tel.TracerProvider.Tracer("partner-handler-tracer")
	partnerHandler := handler.NewPartnerHandler(
		partnerService,
		partnerHandlerMeter,
		partnerHandlerTracer,
		tel.Log,
	)

	syncHandlerMeter := tel.MeterProvider.Meter("sync-handler-meter")
	syncHandlerTracer := tel.TracerProvider.Tracer("sync-handler-tracer")
	syncHandler := handler.NewSyncHandler(
		syncRepository,
		syncHandlerMeter,
		syncHandlerTracer,
		tel.Log,
	)

	mediaHandlerMeter := tel.MeterProvider.Meter("media-handler-meter")
	mediaHandlerTracer := tel.TracerProvider.Tracer("media-handler-tracer")
	mediaHandler := handler.NewMediaHandler(
		mediaService,
		mediaHandlerMeter,
		mediaHandlerTracer,
		tel.Log,
	)

	return Presenter{
		BankPresenter:         bankHandler,
		BusinessPresenter:     businessHandler,
		FinancialPresenter:    financialHandler,
		PersonalPresenter:     personalHandler,
		VerificationPresenter: verificationHandler,
		AuthPresenter:         authHandler,
		PartnerPresenter:      partnerHandler,
		SyncPresenter:         syncHandler,
		MediaPresenter:        mediaHandler,
	}
}
