package legacy_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	noop_metric "go.opentelemetry.io/otel/metric/noop"
	noop_trace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

func newSyncRepository(t *testing.T) (*legacy.SyncRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:legacy_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.LegacyBorrower{}))

	repo := legacy.NewSyncRepository(db,
		noop_metric.NewMeterProvider().Meter("test-legacy-meter"),
		noop_trace.NewTracerProvider().Tracer("test-legacy-tracer"),
		zap.NewNop(),
	)

	return repo, db
}

func TestUpdateRegistrationStatusWithoutMirrorIsSyncFailure(t *testing.T) {
	repo, db := newSyncRepository(t)

	tx := db.Begin()
	defer tx.Rollback()

	err := repo.UpdateRegistrationStatus(tx, 99, "ACTIVE", nil)
	assert.ErrorIs(t, err, common.ErrSyncFailed)
}

func TestUpdateBorrowerProfileWithoutMirrorIsSyncFailure(t *testing.T) {
	repo, db := newSyncRepository(t)

	tx := db.Begin()
	defer tx.Rollback()

	err := repo.UpdateBorrowerProfile(tx, 99, map[string]any{"bpd_company_name": "PT Maju Jaya"})
	assert.ErrorIs(t, err, common.ErrSyncFailed)
}

func TestUpdateRegistrationStatusAfterUpsert(t *testing.T) {
	repo, db := newSyncRepository(t)

	tx := db.Begin()
	assert.NoError(t, repo.UpsertBorrower(tx, &model.LegacyBorrower{
		MigrationID: 7,
		Username:    "pt-maju",
		Email:       "ops@majujaya.co.id",
		RegStatus:   "EDITABLE",
	}))

	now := time.Now()
	assert.NoError(t, repo.UpdateRegistrationStatus(tx, 7, "PENDING_VERIFICATION", &now))
	assert.NoError(t, tx.Commit().Error)

	var mirror model.LegacyBorrower
	assert.NoError(t, db.Where("bpd_migration_id = ?", 7).First(&mirror).Error)
	assert.Equal(t, "PENDING_VERIFICATION", mirror.RegStatus)
	assert.NotNil(t, mirror.FillFinishDate)
}
