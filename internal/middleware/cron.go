package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/hearthstack/household-backend/internal/config"
	"github.com/hearthstack/household-backend/internal/dto"
)

// CronSecretRequired guards the nightly billing trigger. External
// schedulers authenticate with a shared secret header; an unset secret
// disables the endpoint entirely.
func CronSecretRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.CronSecret == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Billing trigger is disabled",
			})
		}
		provided := c.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.CronSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}
