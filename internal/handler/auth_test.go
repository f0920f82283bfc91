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

type AuthHandlerTestSuite struct {
	suite.Suite
	app             *fiber.App
	mockAuthService *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.mockAuthService = &MockAuthService{}

	authHandler := handler.NewAuthHandler(
		suite.mockAuthService,
		noop_metric.NewMeterProvider().Meter("test-auth-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-auth-handler-tracer"),
		zap.NewNop(),
	)

	app := fiber.New()
	app.Use(middleware.NewLocaleMiddleware(i18n.LocaleID))
	app.Post("/validate/users/auth/login", authHandler.Login)
	app.Post("/auth/login/frontoffice", authHandler.Login)

	suite.app = app
}

func (suite *AuthHandlerTestSuite) login(path, body string, headers map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	return resp
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.mockAuthService.MockResponse = &dto.LoginResponse{
		AccessToken: "signed-token",
		SessionID:   "abc123",
		LegacyAuthUser: dto.LegacyAuthUser{
			LegacyID: 42,
			Username: "pt-maju",
			Email:    "ops@majujaya.co.id",
		},
	}

	resp := suite.login("/validate/users/auth/login", `{"email":"ops@majujaya.co.id","password":"secret"}`, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusOK, env.Meta.Code)

	var payload dto.LoginResponse
	assert.NoError(suite.T(), json.Unmarshal(env.Data, &payload))
	assert.Equal(suite.T(), "signed-token", payload.AccessToken)
	assert.Equal(suite.T(), "abc123", payload.SessionID)
	assert.Equal(suite.T(), uint64(42), payload.LegacyAuthUser.LegacyID)
}

func (suite *AuthHandlerTestSuite) TestLogin_FrontofficeRouteSharesHandler() {
	suite.mockAuthService.MockResponse = &dto.LoginResponse{AccessToken: "t", SessionID: "s"}

	resp := suite.login("/auth/login/frontoffice", `{"email":"a@b.co","password":"x"}`, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuthService.MockError = common.ErrInvalidCredentials

	resp := suite.login("/validate/users/auth/login", `{"email":"a@b.co","password":"wrong"}`,
		map[string]string{"Accept-Language": "en_US"})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), "Invalid email or password", env.Meta.Message)
}

func (suite *AuthHandlerTestSuite) TestLogin_BlockedAccount() {
	suite.mockAuthService.MockError = common.ErrAccountBlocked

	resp := suite.login("/validate/users/auth/login", `{"email":"a@b.co","password":"wrong"}`, nil)
	defer resp.Body.Close()

	// A blocked account is still a 400, not a 401, so callers cannot probe.
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingEmail() {
	resp := suite.login("/validate/users/auth/login", `{"password":"secret"}`, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
