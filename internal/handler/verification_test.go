package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	noop_metric "go.opentelemetry.io/otel/metric/noop"
	noop_trace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/handler"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/middleware"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type VerificationHandlerTestSuite struct {
	suite.Suite
	app                     *fiber.App
	mockVerificationService *MockVerificationService
	mockFinancialService    *MockFinancialService
}

func (suite *VerificationHandlerTestSuite) setupApp(role domain.Role) {
	suite.mockVerificationService = &MockVerificationService{}
	suite.mockFinancialService = &MockFinancialService{}

	verificationHandler := handler.NewVerificationHandler(
		suite.mockVerificationService,
		&MockCompletingService{},
		noop_metric.NewMeterProvider().Meter("test-verification-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-verification-handler-tracer"),
		zap.NewNop(),
	)
	financialHandler := handler.NewFinancialHandler(
		suite.mockFinancialService,
		noop_metric.NewMeterProvider().Meter("test-financial-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-financial-handler-tracer"),
		zap.NewNop(),
	)

	requireBackoffice := middleware.RequireRole(domain.BackofficeRole)

	app := fiber.New()
	app.Use(middleware.NewLocaleMiddleware(i18n.LocaleID))
	app.Put("/validate/customer/request-verification-data",
		fakeAuth(2, role), verificationHandler.RequestVerification)
	app.Put("/validate/customer/financial-information/institutional/save",
		fakeAuth(2, role), requireBackoffice, financialHandler.SaveInstitutional)
	app.Put("/validate/backoffice/customer/:customerId/reject",
		fakeAuth(9, role), requireBackoffice, verificationHandler.Reject)

	suite.app = app
}

func (suite *VerificationHandlerTestSuite) SetupTest() {
	suite.setupApp(domain.CustomerRole)
}

func (suite *VerificationHandlerTestSuite) TestRequestVerification_Success() {
	req := httptest.NewRequest(http.MethodPut, "/validate/customer/request-verification-data", nil)

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), []uint64{2}, suite.mockVerificationService.Requested)
}

func (suite *VerificationHandlerTestSuite) TestRequestVerification_IncompleteSection() {
	suite.mockVerificationService.MockError = &validation.FieldError{
		Field: "BankInformation",
		Code:  i18n.CodeSectionEmpty,
		Args:  []any{"BankInformation"},
	}

	req := httptest.NewRequest(http.MethodPut, "/validate/customer/request-verification-data", nil)
	req.Header.Set("Accept-Language", "en_US")

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), "BankInformation is Empty", env.Meta.Message)
}

func (suite *VerificationHandlerTestSuite) TestRequestVerification_AlreadyPending() {
	suite.mockVerificationService.MockError = common.ErrAlreadyPending

	req := httptest.NewRequest(http.MethodPut, "/validate/customer/request-verification-data", nil)

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *VerificationHandlerTestSuite) TestInstitutionalSave_CustomerTokenAnswers401() {
	body := `{"financialStatement": [], "balanceSheet": []}`
	req := httptest.NewRequest(http.MethodPut,
		"/validate/customer/financial-information/institutional/save?customerId=2",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusUnauthorized, env.Meta.Code)
}

func (suite *VerificationHandlerTestSuite) TestInstitutionalSave_BackofficeTokenPasses() {
	suite.setupApp(domain.BackofficeRole)

	body := `{
		"financialStatement": [
			{"yearTo": 1, "fiscalYear": "2025", "fiscalMonths": 12},
			{"yearTo": 2, "fiscalYear": "2024", "fiscalMonths": 12}
		],
		"balanceSheet": [
			{"yearTo": 1},
			{"yearTo": 2}
		]
	}`
	req := httptest.NewRequest(http.MethodPut,
		"/validate/customer/financial-information/institutional/save?customerId=2",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *VerificationHandlerTestSuite) TestReject_BackofficeOnly() {
	req := httptest.NewRequest(http.MethodPut, "/validate/backoffice/customer/5/reject", nil)

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(suite.T(), suite.mockVerificationService.Rejected)
}

func (suite *VerificationHandlerTestSuite) TestReject_Backoffice() {
	suite.setupApp(domain.BackofficeRole)

	req := httptest.NewRequest(http.MethodPut, "/validate/backoffice/customer/5/reject", nil)

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), []uint64{5}, suite.mockVerificationService.Rejected)
}

func TestVerificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(VerificationHandlerTestSuite))
}
