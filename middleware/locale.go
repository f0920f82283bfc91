package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danakita/borrower-onboarding/internal/i18n"
)

// NewLocaleMiddleware resolves the response language once per request.
// Everything downstream reads it via LocaleFrom.
func NewLocaleMiddleware(fallback i18n.Locale) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAcceptLanguage)
		if header == "" {
			c.Locals("locale", fallback)
		} else {
			c.Locals("locale", i18n.ParseAcceptLanguage(header))
		}
		return c.Next()
	}
}

func LocaleFrom(c *fiber.Ctx) i18n.Locale {
	if locale, ok := c.Locals("locale").(i18n.Locale); ok {
		return locale
	}
	return i18n.LocaleID
}
