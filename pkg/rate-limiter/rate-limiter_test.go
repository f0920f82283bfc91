package ratelimiter_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	ratelimiter "github.com/danakita/borrower-onboarding/pkg/rate-limiter"
)

func TestRateLimitMiddlewareAnswersEnvelope(t *testing.T) {
	redisSrv, err := miniredis.Run()
	assert.NoError(t, err)
	defer redisSrv.Close()

	client := redis.NewClient(&redis.Options{Addr: redisSrv.Addr()})
	limiter := ratelimiter.NewRateLimiter(client, 0.01, 1, time.Minute)

	app := fiber.New()
	app.Use(limiter.RateLimitMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	// Burst is one token, so the immediate follow-up exceeds the limit.
	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)

	var env struct {
		Meta struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"meta"`
	}
	assert.NoError(t, json.NewDecoder(second.Body).Decode(&env))
	assert.Equal(t, http.StatusTooManyRequests, env.Meta.Code)
	assert.Equal(t, "Too many requests, please try again later", env.Meta.Message)
}
