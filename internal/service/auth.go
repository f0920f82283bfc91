package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/pkg/common"
	"github.com/danakita/borrower-onboarding/pkg/password"
)

const (
	maxLoginFailures = 10
	failureWindow    = 24 * time.Hour
	tokenLifetime    = 24 * time.Hour
)

type authService struct {
	customerRepository repository.CustomerRepository
	syncRepository     *legacy.SyncRepository
	rdb                *redis.Client
	jwtSecret          []byte

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewAuthService(
	customerRepository repository.CustomerRepository,
	syncRepository *legacy.SyncRepository,
	rdb *redis.Client,
	jwtSecret string,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) AuthServices {
	return &authService{
		customerRepository: customerRepository,
		syncRepository:     syncRepository,
		rdb:                rdb,
		jwtSecret:          []byte(jwtSecret),
		tracer:             tracer,
		log:                log,
		metrics:            newSvcMetrics(meter),
	}
}

func failureKey(email string) string {
	return fmt.Sprintf("auth:failures:%s", email)
}

func newSessionID() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Login implements AuthServices. Bad credentials and blocked accounts both
// come back as authentication errors; the handler surfaces every variant as a
// 400 so a caller cannot probe which case applied.
func (s *authService) Login(ctx context.Context, req dto.Login) (*dto.LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.Login")
	defer span.End()

	done := s.metrics.begin(ctx, "login")
	var err error
	defer func() { done(err) }()

	failures, err := s.rdb.Get(ctx, failureKey(req.Email)).Int()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	err = nil
	if failures >= maxLoginFailures {
		span.SetStatus(codes.Error, "Account blocked")
		err = common.ErrAccountBlocked
		return nil, err
	}

	customer, err := s.customerRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if customer == nil || !password.CheckPasswordHash(req.Password, customer.Password) {
		count, incrErr := s.rdb.Incr(ctx, failureKey(req.Email)).Result()
		if incrErr == nil && count == 1 {
			s.rdb.Expire(ctx, failureKey(req.Email), failureWindow)
		}

		span.SetStatus(codes.Error, "Invalid credentials")

		s.log.Warn("Login failed",
			zap.Int64("failures", count),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
		)

		if count >= maxLoginFailures {
			err = common.ErrAccountBlocked
			return nil, err
		}
		err = common.ErrInvalidCredentials
		return nil, err
	}

	s.rdb.Del(ctx, failureKey(req.Email))

	claims := domain.JwtCustomClaims{
		UserID: customer.ID,
		Role:   customer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to sign token")
		span.RecordError(err)
		return nil, err
	}

	response := &dto.LoginResponse{
		AccessToken: signed,
		SessionID:   newSessionID(),
	}

	// The legacy session payload rides along so the old backoffice keeps
	// working during the migration window.
	mirror, err := s.syncRepository.FindBorrowerByMigrationID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if mirror != nil {
		response.LegacyAuthUser = dto.LegacyAuthUser{
			LegacyID: mirror.ID,
			Username: mirror.Username,
			Email:    mirror.Email,
		}
	}

	s.log.Info("Login succeeded",
		zap.Uint64("customer_id", customer.ID),
		zap.String("role", string(customer.Role)),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Login succeeded")

	return response, nil
}
