package handlers

import (
	"errors"
	"log"

	"pena/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError translates a service error into a REST status.
// Unexpected errors get a generic message; the detail stays in the log.
func respondDomainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidReference):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrAccountDisabled),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Printf("%s: %v", fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
		})
	}
}

// userID reads the authenticated user's ID placed in locals by the auth
// middleware.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// userRole reads the authenticated user's role claim.
func userRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
