package handler_test

import (
	"encoding/json"
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

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/handler"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/middleware"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

const testPartnerKey = "partner-secret"

type PartnerHandlerTestSuite struct {
	suite.Suite
	app                *fiber.App
	mockPartnerService *MockPartnerService
}

func (suite *PartnerHandlerTestSuite) SetupTest() {
	suite.mockPartnerService = &MockPartnerService{}

	partnerHandler := handler.NewPartnerHandler(
		suite.mockPartnerService,
		noop_metric.NewMeterProvider().Meter("test-partner-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-partner-handler-tracer"),
		zap.NewNop(),
	)

	app := fiber.New()
	app.Use(middleware.NewLocaleMiddleware(i18n.LocaleID))

	partnerKey := middleware.NewAPIKeyMiddleware(testPartnerKey)
	app.Post("/partners/v1/:partnerName/registration", partnerKey, partnerHandler.Register)
	app.Post("/partners/v1/:partnerName/registration/completing", partnerKey, partnerHandler.CompleteRegistration)

	suite.app = app
}

func (suite *PartnerHandlerTestSuite) post(path, body, key string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Investree-Key", key)
	}

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	return resp
}

const validRegistrationBody = `{
	"username": "pt-maju-jaya",
	"email": "ops@majujaya.co.id",
	"phoneNumber": "0218880123",
	"userType": "INSTITUTIONAL"
}`

func (suite *PartnerHandlerTestSuite) TestRegister_Success() {
	suite.mockPartnerService.MockResponse = &dto.PartnerRegistrationResponse{
		PartnerName: "modalku",
		CustomerID:  31,
		Email:       "ops@majujaya.co.id",
		Status:      "EDITABLE",
	}

	resp := suite.post("/partners/v1/modalku/registration", validRegistrationBody, testPartnerKey)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "modalku", suite.mockPartnerService.LastPartnerName)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusOK, env.Meta.Code)

	var payload map[string]any
	assert.NoError(suite.T(), json.Unmarshal(env.Data, &payload))
	assert.Equal(suite.T(), "modalku", payload["partner_name"])
}

func (suite *PartnerHandlerTestSuite) TestRegister_MissingKeyAnswers401() {
	resp := suite.post("/partners/v1/modalku/registration", validRegistrationBody, "")
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(suite.T(), suite.mockPartnerService.LastPartnerName)
}

func (suite *PartnerHandlerTestSuite) TestRegister_WrongKeyAnswers401() {
	resp := suite.post("/partners/v1/modalku/registration", validRegistrationBody, "not-the-key")
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *PartnerHandlerTestSuite) TestRegister_StillInProgressConflict() {
	suite.mockPartnerService.MockError = common.ErrAlreadyInProgress

	resp := suite.post("/partners/v1/modalku/registration", validRegistrationBody, testPartnerKey)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), "Pendaftaran untuk peminjam ini masih dalam proses", env.Meta.Message)
}

func (suite *PartnerHandlerTestSuite) TestRegister_InvalidUserType() {
	body := `{
		"username": "pt-maju-jaya",
		"email": "ops@majujaya.co.id",
		"phoneNumber": "0218880123",
		"userType": "SOMETHING"
	}`

	resp := suite.post("/partners/v1/modalku/registration", body, testPartnerKey)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *PartnerHandlerTestSuite) TestCompleteRegistration_Success() {
	suite.mockPartnerService.MockResponse = &dto.PartnerRegistrationResponse{
		PartnerName: "modalku",
		CustomerID:  31,
		Status:      "EDITABLE",
	}

	body := `{"email": "ops@majujaya.co.id"}`
	resp := suite.post("/partners/v1/modalku/registration/completing", body, testPartnerKey)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func TestPartnerHandlerSuite(t *testing.T) {
	suite.Run(t, new(PartnerHandlerTestSuite))
}
