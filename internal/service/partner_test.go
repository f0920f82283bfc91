package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	noop_metric "go.opentelemetry.io/otel/metric/noop"
	noop_trace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/service"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

// The customers DDL is declared by hand because the production gorm tags use
// MySQL enum column types, which sqlite cannot parse. Column names and
// constraints match internal/model exactly.
const customersDDL = `CREATE TABLE customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	email_verified BOOLEAN NOT NULL DEFAULT 0,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'customer',
	user_type TEXT NOT NULL,
	registration_status TEXT NOT NULL DEFAULT 'EDITABLE',
	cr_fill_finish_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
)`

type PartnerServiceTestSuite struct {
	suite.Suite
	newCore  *gorm.DB
	legacyDB *gorm.DB
	redisSrv *miniredis.Miniredis

	partnerServices  service.PartnerServices
	businessServices service.BusinessServices
}

func (suite *PartnerServiceTestSuite) openDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	assert.NoError(suite.T(), err)
	return db
}

func (suite *PartnerServiceTestSuite) SetupTest() {
	suite.newCore = suite.openDB("newcore")
	suite.legacyDB = suite.openDB("legacy")

	assert.NoError(suite.T(), suite.newCore.Exec(customersDDL).Error)
	assert.NoError(suite.T(), model.LegacyAutoMigrate(suite.legacyDB))

	var err error
	suite.redisSrv, err = miniredis.Run()
	assert.NoError(suite.T(), err)
	rdb := redis.NewClient(&redis.Options{Addr: suite.redisSrv.Addr()})

	meter := noop_metric.NewMeterProvider().Meter("test-service-meter")
	tracer := noop_trace.NewTracerProvider().Tracer("test-service-tracer")
	log := zap.NewNop()

	customerRepository := repository.NewCustomerRepository(suite.newCore, meter, tracer, log)
	geographyRepository := repository.NewGeographyRepository(suite.newCore, meter, tracer, log)
	syncRepository := legacy.NewSyncRepository(suite.legacyDB, meter, tracer, log)
	coordinator := dualwrite.NewCoordinator(suite.newCore, syncRepository, rdb, 5*time.Second, meter, tracer, log)

	suite.partnerServices = service.NewPartnerService(
		customerRepository, nil, nil, coordinator, syncRepository, meter, tracer, log)
	suite.businessServices = service.NewBusinessService(
		customerRepository, geographyRepository, coordinator, syncRepository, meter, tracer, log)
}

func (suite *PartnerServiceTestSuite) TearDownTest() {
	suite.redisSrv.Close()
}

func registrationRequest(email string) dto.PartnerRegistration {
	return dto.PartnerRegistration{
		Username: "pt-maju-jaya",
		Email:    email,
		Phone:    "0218880123",
		UserType: string(domain.UserInstitutional),
	}
}

func (suite *PartnerServiceTestSuite) TestRegister_WritesBothStores() {
	res, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), res.CustomerID)

	var customers int64
	suite.newCore.Model(&model.Customer{}).Where("email = ?", "ops@majujaya.co.id").Count(&customers)
	assert.Equal(suite.T(), int64(1), customers)

	var mirror model.LegacyBorrower
	assert.NoError(suite.T(), suite.legacyDB.Where("bpd_migration_id = ?", res.CustomerID).First(&mirror).Error)
	assert.Equal(suite.T(), "ops@majujaya.co.id", mirror.Email)
}

func (suite *PartnerServiceTestSuite) TestRegister_MirrorFailureLeavesNeitherStore() {
	// Take the mirror store down so the legacy leg cannot land.
	assert.NoError(suite.T(), suite.legacyDB.Migrator().DropTable(&model.LegacyBorrower{}))

	_, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.Error(suite.T(), err)

	var customers int64
	suite.newCore.Model(&model.Customer{}).Where("email = ?", "ops@majujaya.co.id").Count(&customers)
	assert.Zero(suite.T(), customers, "new-core customer row must not survive a failed mirror write")
}

func (suite *PartnerServiceTestSuite) TestRegister_RetrySucceedsAfterMirrorRecovers() {
	assert.NoError(suite.T(), suite.legacyDB.Migrator().DropTable(&model.LegacyBorrower{}))

	_, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.Error(suite.T(), err)

	assert.NoError(suite.T(), suite.legacyDB.AutoMigrate(&model.LegacyBorrower{}))

	res, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.NoError(suite.T(), err)

	var mirrors int64
	suite.legacyDB.Model(&model.LegacyBorrower{}).Where("bpd_migration_id = ?", res.CustomerID).Count(&mirrors)
	assert.Equal(suite.T(), int64(1), mirrors)
}

func (suite *PartnerServiceTestSuite) TestRegister_DuplicateEmailConflicts() {
	_, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.NoError(suite.T(), err)

	_, err = suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.ErrorIs(suite.T(), err, common.ErrAlreadyInProgress)
}

func (suite *PartnerServiceTestSuite) TestBusinessSave_MalformedEstablishmentDate() {
	res, err := suite.partnerServices.Register(context.Background(), "modalku", registrationRequest("ops@majujaya.co.id"))
	assert.NoError(suite.T(), err)

	saveErr := suite.businessServices.Save(context.Background(), res.CustomerID, dto.SaveBusinessProfile{
		CompanyName:     "PT Maju Jaya",
		Address:         "Jl. Sudirman 1",
		PostalCode:      "12190",
		PhoneNumber:     "0218880123",
		EmployeeCount:   25,
		DateEstablished: "31-12-2010",
	})

	var fieldErr *validation.FieldError
	assert.ErrorAs(suite.T(), saveErr, &fieldErr)
	assert.Equal(suite.T(), i18n.CodeFieldInvalid, fieldErr.Code)
	assert.Equal(suite.T(), "dateOfEstablishment", fieldErr.Field)
}

func TestPartnerServiceSuite(t *testing.T) {
	suite.Run(t, new(PartnerServiceTestSuite))
}
