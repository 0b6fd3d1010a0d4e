package api

import (
	"github.com/cyra-app/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusUnauthorized, services.FaultUnauthorized, "unauthorized")
}

func apiError(c *fiber.Ctx, status int, kind services.FaultKind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"kind":    string(kind),
			"message": message,
		},
	})
}

// faultError maps a service error onto the wire: stable kind, readable
// message, matching status code.
func faultError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	return apiError(c, faultStatus(kind), kind, services.MessageOf(err))
}

func faultStatus(kind services.FaultKind) int {
	switch kind {
	case services.FaultUnauthorized:
		return fiber.StatusUnauthorized
	case services.FaultValidation:
		return fiber.StatusBadRequest
	case services.FaultNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}
