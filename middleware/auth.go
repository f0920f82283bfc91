package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

// HeaderToken carries the borrower's access token on every authenticated call.
const HeaderToken = "X-Investree-Token"

// HeaderKey carries the shared secret for partner and sync-service calls.
const HeaderKey = "X-Investree-Key"

func NewJWTAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get(HeaderToken)
		if tokenStr == "" {
			return common.ErrorResponse(c, fiber.StatusUnauthorized,
				i18n.T(LocaleFrom(c), i18n.CodeUnauthorized))
		}

		claims := &domain.JwtCustomClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return common.ErrorResponse(c, fiber.StatusUnauthorized,
				i18n.T(LocaleFrom(c), i18n.CodeUnauthorized))
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireRole guards role-restricted routes. The backoffice surface answers
// 401 rather than 403 so callers cannot tell a missing grant from a missing
// account.
func RequireRole(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userClaims, ok := c.Locals("user").(*domain.JwtCustomClaims)
		if !ok {
			return common.ErrorResponse(c, fiber.StatusUnauthorized,
				i18n.T(LocaleFrom(c), i18n.CodeUnauthorized))
		}

		for _, role := range allowedRoles {
			if userClaims.Role == role {
				return c.Next()
			}
		}

		return common.ErrorResponse(c, fiber.StatusUnauthorized,
			i18n.T(LocaleFrom(c), i18n.CodeUnauthorized))
	}
}

// NewAPIKeyMiddleware gates the partner and sync surfaces on a static shared
// key carried in the key header.
func NewAPIKeyMiddleware(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expected == "" || c.Get(HeaderKey) != expected {
			return common.ErrorResponse(c, fiber.StatusUnauthorized,
				i18n.T(LocaleFrom(c), i18n.CodeUnauthorized))
		}
		return c.Next()
	}
}

func GetClaimsFromLocals(c *fiber.Ctx) (*domain.JwtCustomClaims, error) {
	claims, ok := c.Locals("user").(*domain.JwtCustomClaims)
	if !ok {
		return nil, errors.New("user claims not found in context")
	}
	return claims, nil
}
