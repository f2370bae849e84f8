package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// HeaderAPIKey carries the client credential.
const HeaderAPIKey = "X-API-Key"

// Auth creates an authentication middleware checking the static API key.
func Auth(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(HeaderAPIKey)
		if provided == "" {
			return domain.ErrUnauthorized
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return domain.ErrUnauthorized
		}

		return c.Next()
	}
}
