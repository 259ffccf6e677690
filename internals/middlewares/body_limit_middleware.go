package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tuttiud_backend/internals/configs"
	helper "tuttiud_backend/internals/helpers"
)

// BodyLimit enforces a soft per-route byte limit before the body is
// parsed. Mode comes from BODY_LIMIT_MODE: "enforce" rejects with 413,
// anything else only observes (logs) oversized payloads.
func BodyLimit(maxBytes int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size := len(c.Body())
		if size <= maxBytes {
			return c.Next()
		}
		if configs.GetEnv("BODY_LIMIT_MODE", "observe") == "enforce" {
			return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "payload_too_large")
		}
		log.Printf("[WARN] oversized body observed: %s %s size=%d limit=%d",
			c.Method(), c.Path(), size, maxBytes)
		return c.Next()
	}
}
