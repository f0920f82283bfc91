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

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/handler"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/middleware"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type envelope struct {
	Meta struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// fakeAuth injects claims the way the JWT middleware does.
func fakeAuth(customerID uint64, role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &domain.JwtCustomClaims{UserID: customerID, Role: role})
		return c.Next()
	}
}

type BankHandlerTestSuite struct {
	suite.Suite
	app             *fiber.App
	mockBankService *MockBankService
}

func (suite *BankHandlerTestSuite) SetupTest() {
	suite.mockBankService = &MockBankService{}

	bankHandler := handler.NewBankHandler(
		suite.mockBankService,
		noop_metric.NewMeterProvider().Meter("test-bank-handler-meter"),
		noop_trace.NewTracerProvider().Tracer("test-bank-handler-tracer"),
		zap.NewNop(),
	)

	app := fiber.New()
	app.Use(middleware.NewLocaleMiddleware(i18n.LocaleID))
	app.Put("/validate/customer/bank-information/save-all",
		fakeAuth(2, domain.CustomerRole), bankHandler.SaveAll)

	suite.app = app
}

const validBankBody = `{
	"bankInformation": [
		{
			"masterBankId": 4,
			"bankAccountNumber": "1234567890",
			"bankAccountHolderName": "PT Maju Jaya",
			"bankAccountCoverFile": "https://cdn.example.com/cover.jpg",
			"useAsDisbursement": true
		}
	]
}`

func (suite *BankHandlerTestSuite) request(body string, headers map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodPut, "/validate/customer/bank-information/save-all", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := suite.app.Test(req)
	assert.NoError(suite.T(), err)
	return resp
}

func (suite *BankHandlerTestSuite) TestSaveAll_Success() {
	suite.mockBankService.MockSaveAllResult = []domain.BankInformation{
		{ID: 11, CustomerID: 2, MasterBankID: 4, AccountNumber: "1234567890", UseAsDisbursement: true},
	}

	resp := suite.request(validBankBody, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusOK, env.Meta.Code)
	assert.Equal(suite.T(), "success", env.Meta.Message)

	var rows []map[string]any
	assert.NoError(suite.T(), json.Unmarshal(env.Data, &rows))
	assert.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), float64(11), rows[0]["bankInformationId"])

	assert.Equal(suite.T(), uint64(2), suite.mockBankService.LastCustomerID)
}

func (suite *BankHandlerTestSuite) TestSaveAll_MissingDisbursementFlag() {
	body := `{
		"bankInformation": [
			{
				"masterBankId": 4,
				"bankAccountNumber": "1234567890",
				"bankAccountHolderName": "PT Maju Jaya",
				"bankAccountCoverFile": "https://cdn.example.com/cover.jpg"
			}
		]
	}`

	resp := suite.request(body, nil)
	defer resp.Body.Close()

	// An absent boolean is a shape violation, not a silent false.
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *BankHandlerTestSuite) TestSaveAll_FieldErrorLocalizedEnglish() {
	suite.mockBankService.MockError = &validation.FieldError{
		Field: "useAsDisbursement",
		Code:  i18n.CodeDisbursementCount,
	}

	resp := suite.request(validBankBody, map[string]string{"Accept-Language": "en_US"})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusBadRequest, env.Meta.Code)
	assert.Equal(suite.T(), "Please select exactly one disbursement bank account", env.Meta.Message)
}

func (suite *BankHandlerTestSuite) TestSaveAll_FieldErrorDefaultsToIndonesian() {
	suite.mockBankService.MockError = common.ErrStatusRestricted

	resp := suite.request(validBankBody, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), "Status Anda tidak diizinkan untuk mengubah/menambah data", env.Meta.Message)
}

func (suite *BankHandlerTestSuite) TestSaveAll_ForeignRecordAnswers404() {
	suite.mockBankService.MockError = common.ErrRecordNotOwned

	resp := suite.request(validBankBody, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), http.StatusNotFound, env.Meta.Code)
}

func (suite *BankHandlerTestSuite) TestSaveAll_SyncFailureAnswers400() {
	suite.mockBankService.MockError = common.ErrSyncFailed

	resp := suite.request(validBankBody, map[string]string{"Accept-Language": "en_US"})
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(suite.T(), resp)
	assert.Equal(suite.T(), "Failed to save data, please try again", env.Meta.Message)
}

func (suite *BankHandlerTestSuite) TestSaveAll_EmptyListRejected() {
	resp := suite.request(`{"bankInformation": []}`, nil)
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func TestBankHandlerSuite(t *testing.T) {
	suite.Run(t, new(BankHandlerTestSuite))
}
